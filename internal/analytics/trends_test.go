package analytics

import (
	"math"
	"testing"

	"github.com/yabelyaev/N3xFin/internal/models"
)

func TestClassifyTrend(t *testing.T) {
	tests := []struct {
		name       string
		current    float64
		previous   float64
		wantDir    models.TrendDirection
		wantChange float64
	}{
		{"clear increase", 150, 100, models.TrendIncreasing, 50},
		{"clear decrease", 50, 100, models.TrendDecreasing, -50},
		{"inside stable band up", 104, 100, models.TrendStable, 4},
		{"inside stable band down", 96, 100, models.TrendStable, -4},
		{"exactly at band is not stable", 105, 100, models.TrendIncreasing, 5},
		{"new category", 80, 0, models.TrendIncreasing, 100},
		{"both zero", 0, 0, models.TrendStable, 0},
		{"category went to zero", 0, 100, models.TrendDecreasing, -100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, change := ClassifyTrend(tt.current, tt.previous)
			if dir != tt.wantDir {
				t.Errorf("direction = %s, want %s", dir, tt.wantDir)
			}
			if math.Abs(change-tt.wantChange) > 1e-9 {
				t.Errorf("change = %v, want %v", change, tt.wantChange)
			}
		})
	}
}

func TestCategoryTrendsCoversBothWindows(t *testing.T) {
	current := map[string]float64{"Dining": 200, "Groceries": 400}
	previous := map[string]float64{"Groceries": 400, "Transport": 100}

	trends := CategoryTrends(current, previous, 30)
	if len(trends) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(trends))
	}
	if trends["Dining"].Direction != models.TrendIncreasing {
		t.Errorf("new category should be increasing, got %s", trends["Dining"].Direction)
	}
	if trends["Groceries"].Direction != models.TrendStable {
		t.Errorf("unchanged category should be stable, got %s", trends["Groceries"].Direction)
	}
	if trends["Transport"].Direction != models.TrendDecreasing {
		t.Errorf("vanished category should be decreasing, got %s", trends["Transport"].Direction)
	}
	if trends["Dining"].ComparisonPeriod != "30d" {
		t.Errorf("comparison period = %q, want 30d", trends["Dining"].ComparisonPeriod)
	}
}
