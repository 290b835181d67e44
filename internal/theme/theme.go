// Package theme resolves the active theme's named color tokens.
//
// Renderers never cache colors: every render call asks the Resolver again so a
// theme switch between two renders is always visible.
package theme

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Role is a semantic color slot a chart can ask for.
type Role string

const (
	RoleText      Role = "text"
	RoleChartText Role = "chart-text"
	RoleAccent    Role = "accent"
	RoleBorder    Role = "border"
	RoleKPIBorder Role = "kpi-border"
)

// Roles lists every role a complete theme must define.
var Roles = []Role{RoleText, RoleChartText, RoleAccent, RoleBorder, RoleKPIBorder}

const (
	Light = "light"
	Dark  = "dark"
)

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// ErrUnknownTheme is returned when activating a theme the store does not hold.
var ErrUnknownTheme = errors.New("unknown theme")

// Tokens maps each role to a hex color.
type Tokens map[Role]string

func defaultThemes() map[string]Tokens {
	return map[string]Tokens{
		Light: {
			RoleText:      "#2c3e50",
			RoleChartText: "#555555",
			RoleAccent:    "#3498db",
			RoleBorder:    "#e0e0e0",
			RoleKPIBorder: "#dddddd",
		},
		Dark: {
			RoleText:      "#ecf0f1",
			RoleChartText: "#bdc3c7",
			RoleAccent:    "#1abc9c",
			RoleBorder:    "#3d4a5c",
			RoleKPIBorder: "#4a5568",
		},
	}
}

// Store holds the known themes and which one is active.
type Store struct {
	mu     sync.RWMutex
	active string
	themes map[string]Tokens
}

// NewStore returns a store with the built-in light and dark themes.
func NewStore(active string) (*Store, error) {
	s := &Store{themes: defaultThemes()}
	if err := s.SetActive(active); err != nil {
		return nil, err
	}
	return s, nil
}

// Active returns the active theme name.
func (s *Store) Active() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// SetActive switches to the named theme.
func (s *Store) SetActive(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.themes[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	s.active = name
	return nil
}

// Toggle flips between light and dark and returns the new theme name.
func (s *Store) Toggle() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == Light {
		s.active = Dark
	} else {
		s.active = Light
	}
	return s.active
}

// Names lists the themes in the store.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.themes))
	for name := range s.themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Store) token(role Role) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.themes[s.active][role]
}

// Put registers or replaces a theme. Missing roles are inherited from the
// built-in theme of the same name, or from light.
func (s *Store) Put(name string, tokens Tokens) error {
	base, ok := defaultThemes()[name]
	if !ok {
		base = defaultThemes()[Light]
	}
	merged := make(Tokens, len(Roles))
	for _, role := range Roles {
		merged[role] = base[role]
	}
	for role, value := range tokens {
		if !hexColor.MatchString(value) {
			return fmt.Errorf("theme %q role %q: %q is not a hex color", name, role, value)
		}
		merged[role] = strings.ToLower(value)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.themes[name] = merged
	return nil
}

type themeFile struct {
	Themes map[string]map[string]string `yaml:"themes"`
}

// LoadFile reads theme overrides from a YAML document of the form
//
//	themes:
//	  dark:
//	    accent: "#ff8800"
func (s *Store) LoadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read theme file %s: %w", path, err)
	}
	var doc themeFile
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("failed to parse theme file %s: %w", path, err)
	}
	for name, values := range doc.Themes {
		tokens := make(Tokens, len(values))
		for role, value := range values {
			tokens[Role(role)] = value
		}
		if err := s.Put(name, tokens); err != nil {
			return err
		}
	}
	return nil
}
