package letter

import (
	"bytes"
	"fmt"
	"text/template"
)

// Renderer produces the final email body from a decoded letter. The
// template text comes from configuration; text/template performs no
// escaping, matching the plain-text emails this service sends.
type Renderer struct {
	tmpl *template.Template
}

func NewRenderer(templateText string) (*Renderer, error) {
	tmpl, err := template.New("email").Parse(templateText)
	if err != nil {
		return nil, fmt.Errorf("failed to parse email template: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

func (r *Renderer) Render(l *Letter) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, l); err != nil {
		return "", fmt.Errorf("failed to render email body: %w", err)
	}
	return buf.String(), nil
}
