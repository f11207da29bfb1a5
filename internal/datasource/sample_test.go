package datasource

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"
)

var sampleNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func TestSampleSourceDeterministic(t *testing.T) {
	a := NewSampleSource(sampleNow)
	b := NewSampleSource(sampleNow)
	if len(a.txns) == 0 {
		t.Fatal("sample source generated no transactions")
	}
	if len(a.txns) != len(b.txns) {
		t.Fatalf("two sources differ: %d vs %d transactions", len(a.txns), len(b.txns))
	}
	for i := range a.txns {
		if a.txns[i] != b.txns[i] {
			t.Fatalf("transaction %d differs between identically seeded sources", i)
		}
	}
}

func TestSampleSourceCategoryAggregates(t *testing.T) {
	src := NewSampleSource(sampleNow)
	start := sampleNow.AddDate(0, 0, -30)

	breakdown, err := src.CategoryAggregates(context.Background(), start, sampleNow)
	if err != nil {
		t.Fatalf("CategoryAggregates: %v", err)
	}
	if len(breakdown.Data) == 0 {
		t.Fatal("expected aggregates over a 30 day window")
	}
	for i := 1; i < len(breakdown.Data); i++ {
		if breakdown.Data[i].TotalAmount > breakdown.Data[i-1].TotalAmount {
			t.Error("aggregates should arrive sorted by total descending")
			break
		}
	}
	var pct float64
	for _, a := range breakdown.Data {
		pct += a.PercentageOfTotal
	}
	if math.Abs(pct-100) > 0.1 {
		t.Errorf("percentages sum to %v", pct)
	}
	if len(breakdown.Trends) == 0 {
		t.Error("expected trends alongside aggregates")
	}
}

func TestSampleSourceTimeSeries(t *testing.T) {
	src := NewSampleSource(sampleNow)
	start := sampleNow.AddDate(0, 0, -30)

	daily, err := src.TimeSeries(context.Background(), start, sampleNow, "daily")
	if err != nil {
		t.Fatalf("TimeSeries: %v", err)
	}
	if len(daily) != 31 {
		t.Errorf("expected 31 daily points, got %d", len(daily))
	}
	for i := 1; i < len(daily); i++ {
		if daily[i].Timestamp.Before(daily[i-1].Timestamp) {
			t.Fatal("series must be chronological")
		}
	}

	weekly, err := src.TimeSeries(context.Background(), start, sampleNow, "weekly")
	if err != nil {
		t.Fatalf("TimeSeries weekly: %v", err)
	}
	if len(weekly) != 5 {
		t.Errorf("expected 5 weekly buckets from 31 days, got %d", len(weekly))
	}

	var dailySum, weeklySum float64
	for _, p := range daily {
		dailySum += p.Amount
	}
	for _, p := range weekly {
		weeklySum += p.Amount
	}
	if math.Abs(dailySum-weeklySum) > 0.01 {
		t.Errorf("weekly buckets lost spending: %v vs %v", weeklySum, dailySum)
	}
}

func TestSampleSourceReportLifecycle(t *testing.T) {
	src := NewSampleSource(sampleNow)
	ctx := context.Background()

	if _, err := src.Report(ctx, "user-1-2024-02"); !errors.Is(err, ErrNotFound) {
		t.Errorf("ungenerated report should be ErrNotFound, got %v", err)
	}

	report, err := src.GenerateReport(ctx, "user-1", "2024-02")
	if err != nil {
		t.Fatalf("GenerateReport: %v", err)
	}
	if report.ReportID != "user-1-2024-02" {
		t.Errorf("report id = %q", report.ReportID)
	}
	if report.TransactionCount == 0 {
		t.Error("february sample data should have transactions")
	}

	fetched, err := src.Report(ctx, report.ReportID)
	if err != nil {
		t.Fatalf("Report after generate: %v", err)
	}
	if fetched.ReportID != report.ReportID {
		t.Errorf("fetched a different report: %q", fetched.ReportID)
	}
}

func TestSampleSourceAnomaliesAndAlerts(t *testing.T) {
	src := NewSampleSource(sampleNow)
	ctx := context.Background()

	anomalies, err := src.Anomalies(ctx, sampleNow.AddDate(-1, 0, 0), sampleNow)
	if err != nil {
		t.Fatalf("Anomalies: %v", err)
	}
	for i := 1; i < len(anomalies); i++ {
		// Severity ordering is part of the contract.
		rank := map[string]int{"high": 3, "medium": 2, "low": 1}
		if rank[anomalies[i].Severity] > rank[anomalies[i-1].Severity] {
			t.Error("anomalies should be ordered most severe first")
			break
		}
	}

	if _, err := src.Alerts(ctx); err != nil {
		t.Fatalf("Alerts: %v", err)
	}
}

func TestSampleSourceRecommendations(t *testing.T) {
	src := NewSampleSource(sampleNow)

	recs, err := src.Recommendations(context.Background())
	if err != nil {
		t.Fatalf("Recommendations: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected suggestions for the top 2 categories, got %d", len(recs))
	}
	if recs[0].PotentialSavings < recs[1].PotentialSavings {
		t.Error("recommendations should be ranked by potential savings")
	}
	for _, rec := range recs {
		if rec.Title == "" || rec.Description == "" || len(rec.ActionItems) != 3 {
			t.Errorf("incomplete recommendation: %+v", rec)
		}
	}
}
