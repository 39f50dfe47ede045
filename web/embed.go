// Package web holds the storefront's HTML templates and static assets.
package web

import (
	"embed"
	"io/fs"
	"net/http"
	"strings"
	"time"

	html "github.com/gofiber/template/html/v2"

	"mulemobile/internal/store"
)

//go:embed templates
var templates embed.FS

//go:embed static
var static embed.FS

// Static serves the embedded assets, rooted so "site.css" maps to
// static/site.css.
func Static() http.FileSystem {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

// NewEngine returns the template engine over the embedded templates, with the
// pricing helpers registered.
func NewEngine() *html.Engine {
	sub, err := fs.Sub(templates, "templates")
	if err != nil {
		panic(err)
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFunc("etb", store.FormatETB)
	engine.AddFunc("vat", store.VATOf)
	engine.AddFunc("withVAT", store.WithVAT)
	engine.AddFunc("discount", store.DiscountPercent)
	engine.AddFunc("deref", func(f *float64) float64 {
		if f == nil {
			return 0
		}
		return *f
	})
	engine.AddFunc("join", strings.Join)
	engine.AddFunc("date", func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return t.Format("Jan 2, 2006")
	})
	return engine
}
