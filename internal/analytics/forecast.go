package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/yabelyaev/N3xFin/internal/models"
)

const (
	// Forecast horizon and the amount of history it draws on.
	forecastHorizonDays = 30
	historyWindowDays   = 90

	warningRatio  = 1.3
	criticalRatio = 1.5
)

// Forecast projects spending per category over the next 30 days from a
// moving average of the last 90. Confidence is 1 minus the coefficient
// of variation, clamped to [0,1]; a category with one flat monthly bill
// forecasts near 1.0, an erratic one near 0.
func Forecast(txns []models.Transaction, now time.Time) []models.SpendingForecast {
	cutoff := now.AddDate(0, 0, -historyWindowDays)

	byCategory := make(map[string][]float64)
	for _, t := range txns {
		if !t.IsExpense() || t.Date.Before(cutoff) || t.Date.After(now) {
			continue
		}
		byCategory[t.Category] = append(byCategory[t.Category], t.AbsAmount())
	}

	var forecasts []models.SpendingForecast
	for category, amounts := range byCategory {
		if len(amounts) < 2 {
			continue
		}

		mean, stdev := meanStdev(amounts)
		var total float64
		for _, a := range amounts {
			total += a
		}
		dailyRate := total / historyWindowDays
		predicted := dailyRate * forecastHorizonDays

		confidence := 0.0
		if mean > 0 {
			confidence = math.Max(0, math.Min(1, 1-stdev/mean))
		}

		forecasts = append(forecasts, models.SpendingForecast{
			Category:          category,
			PredictedAmount:   math.Round(predicted*100) / 100,
			Confidence:        math.Round(confidence*100) / 100,
			HorizonDays:       forecastHorizonDays,
			HistoricalAverage: math.Round(predicted/3*100) / 100, // per 30 of the 90-day window
			DataPoints:        len(amounts),
		})
	}

	sort.SliceStable(forecasts, func(i, j int) bool {
		return forecasts[i].PredictedAmount > forecasts[j].PredictedAmount
	})
	return forecasts
}

// GenerateAlerts turns forecasts into user-facing alerts wherever a
// category's 30-day projection exceeds its historical monthly average.
// Severity follows the predicted-to-average ratio: warning from 1.3x,
// critical from 1.5x, info below. Ordered by severity then amount.
func GenerateAlerts(forecasts []models.SpendingForecast, historicalMonthly map[string]float64, now time.Time) []models.SpendingAlert {
	var alerts []models.SpendingAlert
	for _, f := range forecasts {
		avg, ok := historicalMonthly[f.Category]
		if !ok {
			avg = f.HistoricalAverage
		}
		if avg <= 0 || f.PredictedAmount <= avg {
			continue
		}

		ratio := f.PredictedAmount / avg
		severity := "info"
		switch {
		case ratio >= criticalRatio:
			severity = "critical"
		case ratio >= warningRatio:
			severity = "warning"
		}

		alerts = append(alerts, models.SpendingAlert{
			ID:       uuid.New().String(),
			Category: f.Category,
			Message: fmt.Sprintf("Projected %s spending of %.2f is %.0f%% above your monthly average of %.2f",
				f.Category, f.PredictedAmount, (ratio-1)*100, avg),
			PredictedAmount:   f.PredictedAmount,
			HistoricalAverage: avg,
			Severity:          severity,
			Recommendations:   alertRecommendations(f.Category, severity),
			Confidence:        f.Confidence,
			CreatedAt:         now,
		})
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		ri, rj := severityRank(alerts[i].Severity), severityRank(alerts[j].Severity)
		if ri != rj {
			return ri > rj
		}
		return alerts[i].PredictedAmount > alerts[j].PredictedAmount
	})
	return alerts
}

func alertRecommendations(category, severity string) []string {
	recs := []string{
		fmt.Sprintf("Review your recent %s transactions for one-off purchases", category),
		fmt.Sprintf("Set a monthly budget for %s to track against", category),
	}
	if severity == "critical" {
		recs = append(recs, fmt.Sprintf("Consider pausing non-essential %s spending until next month", category))
	}
	return recs
}
