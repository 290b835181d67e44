package theme

// Resolver reads the current theme's colors. It is the only way the
// renderers see theme state.
type Resolver struct {
	store *Store
}

// NewResolver binds a resolver to a store.
func NewResolver(store *Store) *Resolver {
	return &Resolver{store: store}
}

// ColorFor returns the active theme's color for role.
func (r *Resolver) ColorFor(role Role) string {
	return r.store.token(role)
}

// Theme returns the active theme name.
func (r *Resolver) Theme() string {
	return r.store.Active()
}

// ColorSet is the set of role colors resolved for a single render call.
type ColorSet struct {
	Theme     string
	Text      string
	ChartText string
	Accent    string
	Border    string
	KPIBorder string
}

// Colors resolves every role now. Call it once per render, never keep it.
func (r *Resolver) Colors() ColorSet {
	return ColorSet{
		Theme:     r.store.Active(),
		Text:      r.ColorFor(RoleText),
		ChartText: r.ColorFor(RoleChartText),
		Accent:    r.ColorFor(RoleAccent),
		Border:    r.ColorFor(RoleBorder),
		KPIBorder: r.ColorFor(RoleKPIBorder),
	}
}
