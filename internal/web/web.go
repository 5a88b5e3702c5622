// Package web embeds the HTML templates and static assets.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Templates parses all page templates. Pages reference each other by file name.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"date": func(layout string, t time.Time) string {
			return t.Format(layout)
		},
	}).ParseFS(templateFS, "templates/*.html")
}

// Static returns the asset tree rooted at static/.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err) // embedded path is fixed at compile time
	}
	return sub
}
