package reports

import (
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html templates/*.css
var templateFS embed.FS

// TemplateLoader handles loading HTML templates and CSS styles
type TemplateLoader struct{}

// NewTemplateLoader creates a new template loader
func NewTemplateLoader() *TemplateLoader {
	return &TemplateLoader{}
}

// LoadHTMLTemplate parses the named HTML template.
func (t *TemplateLoader) LoadHTMLTemplate(name string) (*template.Template, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/"+name)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	return tmpl, nil
}

// LoadCSSStyles loads the shared stylesheet.
func (t *TemplateLoader) LoadCSSStyles() (string, error) {
	content, err := templateFS.ReadFile("templates/styles.css")
	if err != nil {
		return "", err
	}
	return string(content), nil
}
