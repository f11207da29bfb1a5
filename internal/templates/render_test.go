package templates

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yabelyaev/N3xFin/internal/models"
)

func TestNewWithoutTemplates(t *testing.T) {
	r, err := New("")
	if err != nil || r != nil {
		t.Errorf("empty dir should mean JSON-only mode, got %v / %v", r, err)
	}
	r, err = New(filepath.Join(t.TempDir(), "missing"))
	if err != nil || r != nil {
		t.Errorf("missing dir should mean JSON-only mode, got %v / %v", r, err)
	}
}

func TestRenderPartialWithFuncs(t *testing.T) {
	dir := t.TempDir()
	tmpl := `{{define "trend"}}<span class="{{trendColor .Direction}}">{{trendGlyph .Direction}} {{trendMagnitude .PercentageChange}}</span>{{end}}`
	if err := os.WriteFile(filepath.Join(dir, "trend.html"), []byte(tmpl), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if r == nil {
		t.Fatal("expected a renderer")
	}

	var buf strings.Builder
	err = r.RenderPartial(&buf, "trend", models.Trend{
		Direction:        models.TrendDecreasing,
		PercentageChange: -12.34,
	})
	if err != nil {
		t.Fatalf("RenderPartial: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"green", "↓", "12.3%"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %s", want, out)
		}
	}
	if strings.Contains(out, "-12") {
		t.Error("magnitude must not carry a minus sign")
	}
}
