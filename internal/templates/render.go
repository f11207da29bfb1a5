// Package templates wraps html/template with the helper functions the
// views use. The server runs without a template directory at all, in
// which case handlers fall back to JSON responses; a nil *Renderer is
// the signal for that mode.
package templates

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"

	"github.com/yabelyaev/N3xFin/internal/charts"
	"github.com/yabelyaev/N3xFin/internal/format"
	"github.com/yabelyaev/N3xFin/internal/models"
	"github.com/yabelyaev/N3xFin/internal/timerange"
)

// Renderer holds the parsed template set.
type Renderer struct {
	templates *template.Template
}

// FuncMap exposes the formatting and chart helpers to templates.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"formatMoney":    format.Currency,
		"formatPercent":  format.Percent,
		"monthLabel":     format.MonthLabel,
		"dateLabel":      format.DateLabel,
		"trendGlyph":     format.TrendGlyph,
		"trendColor":     format.TrendColor,
		"trendMagnitude": format.TrendMagnitude,
		"colorForIndex":  charts.ColorForIndex,
		"rangeLabel":     func(r timerange.Range) string { return r.Label() },
		"isIncreasing": func(d models.TrendDirection) bool {
			return d == models.TrendIncreasing
		},
		"svgPath": func(p string) template.HTMLAttr {
			return template.HTMLAttr(fmt.Sprintf("d=%q", p))
		},
	}
}

// New parses every .html file under dir. A missing or empty directory
// returns nil with no error, putting the server in JSON-only mode.
func New(dir string) (*Renderer, error) {
	if dir == "" {
		return nil, nil
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}

	pattern := filepath.Join(dir, "*.html")
	matches, err := filepath.Glob(pattern)
	if err != nil || len(matches) == 0 {
		return nil, nil
	}

	tmpl, err := template.New("").Funcs(FuncMap()).ParseGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("parsing templates in %s: %w", dir, err)
	}
	return &Renderer{templates: tmpl}, nil
}

// RenderPage renders a full page template.
func (r *Renderer) RenderPage(w io.Writer, name string, data interface{}) error {
	if err := r.templates.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("rendering %s: %w", name, err)
	}
	return nil
}

// RenderPartial renders a fragment for in-place swaps.
func (r *Renderer) RenderPartial(w io.Writer, name string, data interface{}) error {
	return r.RenderPage(w, name, data)
}
