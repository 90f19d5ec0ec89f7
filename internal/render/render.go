package render

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var files embed.FS

// Renderer implements echo.Renderer over the embedded page templates.
// Sanitized post HTML is the only value templates mark as safe; everything
// else goes through html/template's contextual escaping.
type Renderer struct {
	templates *template.Template
}

// New parses the embedded templates
func New() (*Renderer, error) {
	t, err := template.New("").Funcs(template.FuncMap{
		// safe injects sanitizer-derived HTML without re-escaping. Only the
		// SanitizedHTML field may pass through here.
		"safe": func(s string) template.HTML { return template.HTML(s) },
	}).ParseFS(files, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{templates: t}, nil
}

// Render executes the named page template
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
