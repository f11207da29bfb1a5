package analytics

import (
	"fmt"
	"math"

	"github.com/yabelyaev/N3xFin/internal/models"
)

// stableBand is the percentage-change magnitude under which a category
// is reported stable rather than moving.
const stableBand = 5.0

// ClassifyTrend compares spending in the current window against the
// previous one. Changes within the stable band are stable. A category
// that had no previous spending reports increasing at 100% unless both
// windows are zero.
func ClassifyTrend(current, previous float64) (models.TrendDirection, float64) {
	if previous == 0 {
		if current == 0 {
			return models.TrendStable, 0
		}
		return models.TrendIncreasing, 100
	}

	change := (current - previous) / previous * 100
	if math.Abs(change) < stableBand {
		return models.TrendStable, change
	}
	if change > 0 {
		return models.TrendIncreasing, change
	}
	return models.TrendDecreasing, change
}

// CategoryTrends classifies every category seen in either window.
// The comparison period label describes the window length in days.
func CategoryTrends(current, previous map[string]float64, windowDays int) map[string]models.Trend {
	trends := make(map[string]models.Trend)
	period := fmt.Sprintf("%dd", windowDays)

	for category := range current {
		dir, change := ClassifyTrend(current[category], previous[category])
		trends[category] = models.Trend{
			Direction:        dir,
			PercentageChange: change,
			ComparisonPeriod: period,
		}
	}
	for category := range previous {
		if _, ok := trends[category]; ok {
			continue
		}
		dir, change := ClassifyTrend(0, previous[category])
		trends[category] = models.Trend{
			Direction:        dir,
			PercentageChange: change,
			ComparisonPeriod: period,
		}
	}
	return trends
}
