// Package web embeds the HTML served at the site root.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates holds every embedded page, keyed by file name
var Templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))
