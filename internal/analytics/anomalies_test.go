package analytics

import (
	"testing"

	"github.com/yabelyaev/N3xFin/internal/models"
)

func TestDetectAnomaliesFlagsOutlier(t *testing.T) {
	var txns []models.Transaction
	for i := 1; i <= 10; i++ {
		txns = append(txns, txn(i, -50, "Dining"))
	}
	txns = append(txns, txn(11, -500, "Dining")) // outlier
	anomalies := DetectAnomalies(txns)
	if len(anomalies) != 1 {
		t.Fatalf("expected 1 anomaly, got %d", len(anomalies))
	}
	a := anomalies[0]
	if a.Transaction.AbsAmount() != 500 {
		t.Errorf("flagged transaction amount = %v, want 500", a.Transaction.AbsAmount())
	}
	if a.ZScore <= anomalyThreshold {
		t.Errorf("z-score = %v, want > %v", a.ZScore, anomalyThreshold)
	}
	if a.ExpectedRange.Min < 0 {
		t.Errorf("expected range min = %v, should be floored at 0", a.ExpectedRange.Min)
	}
}

func TestDetectAnomaliesSkipsSmallCategories(t *testing.T) {
	txns := []models.Transaction{
		txn(1, -10, "Misc"),
		txn(2, -10, "Misc"),
		txn(3, -10000, "Misc"), // would be an outlier with enough samples
	}
	if anomalies := DetectAnomalies(txns); len(anomalies) != 0 {
		t.Errorf("categories under %d samples should be skipped, got %v", minSamples, anomalies)
	}
}

func TestDetectAnomaliesSkipsZeroSpread(t *testing.T) {
	var txns []models.Transaction
	for i := 1; i <= 6; i++ {
		txns = append(txns, txn(i, -20, "Subscriptions"))
	}
	if anomalies := DetectAnomalies(txns); len(anomalies) != 0 {
		t.Errorf("zero-spread category should produce no anomalies, got %v", anomalies)
	}
}

func TestDetectAnomaliesIgnoresIncome(t *testing.T) {
	var txns []models.Transaction
	for i := 1; i <= 5; i++ {
		txns = append(txns, txn(i, 100, "Salary"))
	}
	txns = append(txns, txn(6, 100000, "Salary"))
	if anomalies := DetectAnomalies(txns); len(anomalies) != 0 {
		t.Errorf("income should not be scanned, got %v", anomalies)
	}
}

func TestAnomalySeverityBands(t *testing.T) {
	tests := []struct {
		absZ float64
		want string
	}{
		{2.6, "low"},
		{3.0, "low"},
		{3.1, "medium"},
		{3.5, "medium"},
		{3.6, "high"},
	}
	for _, tt := range tests {
		if got := anomalySeverity(tt.absZ); got != tt.want {
			t.Errorf("anomalySeverity(%v) = %q, want %q", tt.absZ, got, tt.want)
		}
	}
}
