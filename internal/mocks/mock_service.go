package mocks

import (
	"embed"
	"fmt"
	"net/http"
	"path"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"

	"salesdash/internal/logger"
	"salesdash/internal/models"
)

//go:embed data/*.json
var fixtures embed.FS

// MockService serves canned metric resources the way the sales backend
// does, for mockup mode and tests.
type MockService struct {
	token string
	log   *logger.Logger
}

// NewMockService creates a mock backend. A non-empty token makes every
// request without "Authorization: Bearer <token>" fail with 401.
func NewMockService(token string, log *logger.Logger) *MockService {
	if log == nil {
		log = logger.NewNop()
	}
	return &MockService{token: token, log: log.WithComponent("mock-backend")}
}

// Resources lists the resource names with a fixture, sorted.
func (m *MockService) Resources() []string {
	entries, err := fixtures.ReadDir("data")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names
}

// LoadRaw returns the fixture body for a resource.
func (m *MockService) LoadRaw(name string) ([]byte, error) {
	body, err := fixtures.ReadFile(path.Join("data", name+".json"))
	if err != nil {
		return nil, fmt.Errorf("failed to read mock resource %s: %w", name, err)
	}
	return body, nil
}

// LoadDataset decodes the fixture for a resource.
func (m *MockService) LoadDataset(name string) (models.Dataset, error) {
	body, err := m.LoadRaw(name)
	if err != nil {
		return nil, err
	}
	return models.DecodeDataset(body)
}

// Handler returns the mock backend's routes: GET /api/{resource}.
func (m *MockService) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/api/{resource}", m.serveResource)
	return r
}

func (m *MockService) serveResource(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "resource")
	if m.token != "" && r.Header.Get("Authorization") != "Bearer "+m.token {
		m.log.Warn("Rejected unauthenticated request", map[string]interface{}{"resource": name})
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	body, err := m.LoadRaw(name)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}
