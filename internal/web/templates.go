package web

import (
	"embed"
	"html/template"
	"time"

	"event-notifier/internal/model"
)

//go:embed templates/*.html
var templateFiles embed.FS

func parseTemplates() (*template.Template, error) {
	funcs := template.FuncMap{
		"date": func(t time.Time) string { return t.Format(model.DateLayout) },
	}
	return template.New("").Funcs(funcs).ParseFS(templateFiles, "templates/*.html")
}
