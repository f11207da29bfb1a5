package datasource

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/yabelyaev/N3xFin/internal/analytics"
	"github.com/yabelyaev/N3xFin/internal/models"
)

// sampleSeed keeps the demo data identical across restarts.
const sampleSeed = 20240301

// sampleCategories is the demo spending taxonomy with a rough daily
// spend profile per category.
var sampleCategories = []struct {
	name      string
	dailyMean float64
	frequency float64 // chance of a transaction on a given day
}{
	{"Groceries", 45, 0.6},
	{"Dining", 32, 0.45},
	{"Transport", 18, 0.5},
	{"Entertainment", 25, 0.2},
	{"Utilities", 80, 0.08},
	{"Shopping", 60, 0.15},
	{"Healthcare", 95, 0.05},
}

// SampleSource serves deterministic demo data generated from a fixed
// seed, so the dashboard is fully explorable with no API configured.
type SampleSource struct {
	mu      sync.RWMutex
	now     time.Time
	txns    []models.Transaction
	reports map[string]*models.Report
}

// NewSampleSource generates a year of demo transactions ending at now.
func NewSampleSource(now time.Time) *SampleSource {
	rng := rand.New(rand.NewSource(sampleSeed))
	start := now.AddDate(-1, 0, 0)

	var txns []models.Transaction
	id := 0
	for d := start; !d.After(now); d = d.AddDate(0, 0, 1) {
		for _, c := range sampleCategories {
			if rng.Float64() > c.frequency {
				continue
			}
			id++
			amount := c.dailyMean * (0.5 + rng.Float64())
			// An occasional outlier so the anomaly view has content.
			if rng.Float64() < 0.01 {
				amount *= 5
			}
			txns = append(txns, models.Transaction{
				ID:          sampleID(id),
				Date:        d,
				Amount:      -float64(int(amount*100)) / 100,
				Description: c.name + " purchase",
				Category:    c.name,
			})
		}
		// Salary on the 1st.
		if d.Day() == 1 {
			id++
			txns = append(txns, models.Transaction{
				ID:          sampleID(id),
				Date:        d,
				Amount:      4200,
				Description: "Monthly salary",
				Category:    "Salary",
			})
		}
	}

	return &SampleSource{
		now:     now,
		txns:    txns,
		reports: make(map[string]*models.Report),
	}
}

func sampleID(n int) string {
	return fmt.Sprintf("txn-%06d", n)
}

func (s *SampleSource) window(start, end time.Time) []models.Transaction {
	return models.NewTransactionSet(s.txns).FilterByDateRange(start, end).Transactions
}

func (s *SampleSource) CategoryAggregates(ctx context.Context, start, end time.Time) (*models.CategoryBreakdown, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	current := s.window(start, end)
	aggs := analytics.AggregateByCategory(current)

	// Previous window of the same length, for trends.
	windowDays := int(end.Sub(start).Hours() / 24)
	prevStart, prevEnd := start.AddDate(0, 0, -windowDays), start
	previous := analytics.AggregateByCategory(s.window(prevStart, prevEnd))

	currentTotals := make(map[string]float64, len(aggs))
	for _, a := range aggs {
		currentTotals[a.Category] = a.TotalAmount
	}
	previousTotals := make(map[string]float64, len(previous))
	for _, a := range previous {
		previousTotals[a.Category] = a.TotalAmount
	}

	return &models.CategoryBreakdown{
		Data:          aggs,
		TotalSpending: analytics.TotalSpending(current),
		Trends:        analytics.CategoryTrends(currentTotals, previousTotals, windowDays),
	}, nil
}

func (s *SampleSource) TimeSeries(ctx context.Context, start, end time.Time, granularity string) ([]models.TimeSeriesPoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	points := analytics.SpendingOverTime(s.window(start, end), start, end)
	if granularity == "weekly" {
		points = weeklyBuckets(points)
	}
	return points, nil
}

// weeklyBuckets folds daily points into 7-day sums anchored on the
// first point.
func weeklyBuckets(daily []models.TimeSeriesPoint) []models.TimeSeriesPoint {
	var weekly []models.TimeSeriesPoint
	for i, p := range daily {
		if i%7 == 0 {
			weekly = append(weekly, models.TimeSeriesPoint{Timestamp: p.Timestamp})
		}
		weekly[len(weekly)-1].Amount += p.Amount
	}
	return weekly
}

func (s *SampleSource) Report(ctx context.Context, reportID string) (*models.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reports[reportID]
	if !ok {
		return nil, ErrNotFound
	}
	return r, nil
}

func (s *SampleSource) GenerateReport(ctx context.Context, userID, month string) (*models.Report, error) {
	monthStart, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, err
	}
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Nanosecond)
	prevStart := monthStart.AddDate(0, -1, 0)

	s.mu.Lock()
	defer s.mu.Unlock()

	previousTotals := make(map[string]float64)
	for _, a := range analytics.AggregateByCategory(s.window(prevStart, monthStart.Add(-time.Nanosecond))) {
		previousTotals[a.Category] = a.TotalAmount
	}

	report := analytics.BuildReport(userID, month, s.window(monthStart, monthEnd), previousTotals, s.now)
	s.reports[report.ReportID] = &report
	return &report, nil
}

func (s *SampleSource) Anomalies(ctx context.Context, start, end time.Time) ([]models.Anomaly, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return analytics.DetectAnomalies(s.window(start, end)), nil
}

func (s *SampleSource) Alerts(ctx context.Context) ([]models.SpendingAlert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now
	forecasts := analytics.Forecast(s.txns, now)

	// Historical monthly averages from the six months before the
	// forecast window.
	historyStart := now.AddDate(0, -7, 0)
	historyEnd := now.AddDate(0, -1, 0)
	historical := make(map[string]float64)
	for _, a := range analytics.AggregateByCategory(s.window(historyStart, historyEnd)) {
		historical[a.Category] = a.TotalAmount / 6
	}

	return analytics.GenerateAlerts(forecasts, historical, now), nil
}

func (s *SampleSource) Recommendations(ctx context.Context) ([]models.Recommendation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	aggs := analytics.AggregateByCategory(s.window(s.now.AddDate(0, 0, -30), s.now))
	return analytics.RankRecommendations(analytics.BuildRecommendations(aggs)), nil
}
