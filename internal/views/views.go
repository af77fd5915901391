package views

import (
	"embed"
	"html/template"

	"hrms/internal/utils"
)

//go:embed templates/*.html
var files embed.FS

// Load parses every page template; gin renders them by file name.
func Load() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"date": utils.FormatDate,
	}).ParseFS(files, "templates/*.html")
}
