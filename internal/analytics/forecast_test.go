package analytics

import (
	"testing"
	"time"

	"github.com/yabelyaev/N3xFin/internal/models"
)

func TestForecastStableCategory(t *testing.T) {
	now := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	var txns []models.Transaction
	// 90 days of a daily 10.00 habit.
	for i := 0; i < 90; i++ {
		txns = append(txns, models.Transaction{
			Date:     now.AddDate(0, 0, -i),
			Amount:   -10,
			Category: "Coffee",
		})
	}

	forecasts := Forecast(txns, now)
	if len(forecasts) != 1 {
		t.Fatalf("expected 1 forecast, got %d", len(forecasts))
	}
	f := forecasts[0]
	if f.PredictedAmount != 300 {
		t.Errorf("predicted = %v, want 300 (10/day over 30 days)", f.PredictedAmount)
	}
	if f.Confidence != 1 {
		t.Errorf("flat history should give confidence 1, got %v", f.Confidence)
	}
	if f.HorizonDays != 30 {
		t.Errorf("horizon = %d, want 30", f.HorizonDays)
	}
}

func TestForecastSkipsSparseAndOldData(t *testing.T) {
	now := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	txns := []models.Transaction{
		{Date: now.AddDate(0, 0, -5), Amount: -100, Category: "OneOff"},
		{Date: now.AddDate(0, -6, 0), Amount: -100, Category: "Ancient"},
		{Date: now.AddDate(0, -6, -1), Amount: -100, Category: "Ancient"},
	}
	forecasts := Forecast(txns, now)
	if len(forecasts) != 0 {
		t.Errorf("single-sample and out-of-window categories should be skipped, got %v", forecasts)
	}
}

func TestGenerateAlertsSeverityBands(t *testing.T) {
	now := time.Now()
	forecasts := []models.SpendingForecast{
		{Category: "Dining", PredictedAmount: 120, Confidence: 0.8},
		{Category: "Transport", PredictedAmount: 140, Confidence: 0.8},
		{Category: "Shopping", PredictedAmount: 160, Confidence: 0.8},
		{Category: "Groceries", PredictedAmount: 90, Confidence: 0.8},
	}
	historical := map[string]float64{
		"Dining":    100, // 1.2x -> info
		"Transport": 100, // 1.4x -> warning
		"Shopping":  100, // 1.6x -> critical
		"Groceries": 100, // under average, no alert
	}

	alerts := GenerateAlerts(forecasts, historical, now)
	if len(alerts) != 3 {
		t.Fatalf("expected 3 alerts, got %d", len(alerts))
	}
	// Ordered by severity: critical, warning, info.
	wantOrder := []struct {
		category string
		severity string
	}{
		{"Shopping", "critical"},
		{"Transport", "warning"},
		{"Dining", "info"},
	}
	for i, want := range wantOrder {
		if alerts[i].Category != want.category || alerts[i].Severity != want.severity {
			t.Errorf("alert %d = %s/%s, want %s/%s",
				i, alerts[i].Category, alerts[i].Severity, want.category, want.severity)
		}
	}
	if alerts[0].ID == "" {
		t.Error("alerts should carry generated ids")
	}
	if len(alerts[0].Recommendations) != 3 {
		t.Errorf("critical alert should carry 3 recommendations, got %d", len(alerts[0].Recommendations))
	}
	if len(alerts[2].Recommendations) != 2 {
		t.Errorf("info alert should carry 2 recommendations, got %d", len(alerts[2].Recommendations))
	}
}
