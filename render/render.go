// Package render turns report rows into monthly HTML documents. A
// default template is embedded; a template file from the configuration
// overrides it.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/chaiwat/okfolio/report"
)

//go:embed templates/report.html.tmpl
var templates embed.FS

// Data is the template input for one monthly report.
type Data struct {
	MonthName    string
	Year         string
	CoinLabel    string
	AccountLabel string
	Rows         []report.Row
}

type Renderer struct {
	tmpl *template.Template
}

// New parses the report template. An empty templatePath selects the
// embedded default.
func New(templatePath string) (*Renderer, error) {
	if templatePath == "" {
		tmpl, err := template.ParseFS(templates, "templates/report.html.tmpl")
		if err != nil {
			return nil, fmt.Errorf("parse embedded template: %w", err)
		}
		return &Renderer{tmpl: tmpl}, nil
	}

	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", templatePath, err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render executes the template for one month's data.
func (r *Renderer) Render(d Data) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, d); err != nil {
		return nil, fmt.Errorf("execute template: %w", err)
	}
	return buf.Bytes(), nil
}
