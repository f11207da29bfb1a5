package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yabelyaev/N3xFin/internal/models"
)

// AggregateByCategory sums expense transactions into per-category
// buckets with share-of-total percentages. Totals accumulate as exact
// decimals so percentages are computed against a drift-free sum; the
// result is ordered by total descending.
func AggregateByCategory(txns []models.Transaction) []models.CategoryAggregate {
	totals := make(map[string]decimal.Decimal)
	counts := make(map[string]int)
	grand := decimal.Zero

	for _, t := range txns {
		if !t.IsExpense() {
			continue
		}
		amt := decimal.NewFromFloat(t.AbsAmount())
		totals[t.Category] = totals[t.Category].Add(amt)
		counts[t.Category]++
		grand = grand.Add(amt)
	}

	if len(totals) == 0 {
		return nil
	}

	aggs := make([]models.CategoryAggregate, 0, len(totals))
	hundred := decimal.NewFromInt(100)
	for category, total := range totals {
		pct := 0.0
		if grand.IsPositive() {
			pct, _ = total.Div(grand).Mul(hundred).Round(2).Float64()
		}
		amount, _ := total.Round(2).Float64()
		aggs = append(aggs, models.CategoryAggregate{
			Category:          category,
			TotalAmount:       amount,
			TransactionCount:  counts[category],
			PercentageOfTotal: pct,
		})
	}

	sort.SliceStable(aggs, func(i, j int) bool {
		if aggs[i].TotalAmount != aggs[j].TotalAmount {
			return aggs[i].TotalAmount > aggs[j].TotalAmount
		}
		return aggs[i].Category < aggs[j].Category
	})
	return aggs
}

// SpendingOverTime buckets expense transactions into daily totals over
// [start, end], emitting one point per day in chronological order. Days
// with no spending produce zero points so the series has a continuous
// x axis.
func SpendingOverTime(txns []models.Transaction, start, end time.Time) []models.TimeSeriesPoint {
	if end.Before(start) {
		return nil
	}

	day := func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}

	totals := make(map[time.Time]decimal.Decimal)
	for _, t := range txns {
		if !t.IsExpense() {
			continue
		}
		d := day(t.Date)
		totals[d] = totals[d].Add(decimal.NewFromFloat(t.AbsAmount()))
	}

	var points []models.TimeSeriesPoint
	for d := day(start); !d.After(day(end)); d = d.AddDate(0, 0, 1) {
		amount, _ := totals[d].Round(2).Float64()
		points = append(points, models.TimeSeriesPoint{Timestamp: d, Amount: amount})
	}
	return points
}

// TotalSpending sums expense magnitudes with exact decimal accumulation.
func TotalSpending(txns []models.Transaction) float64 {
	total := decimal.Zero
	for _, t := range txns {
		if t.IsExpense() {
			total = total.Add(decimal.NewFromFloat(t.AbsAmount()))
		}
	}
	f, _ := total.Round(2).Float64()
	return f
}

// TotalIncome sums income amounts with exact decimal accumulation.
func TotalIncome(txns []models.Transaction) float64 {
	total := decimal.Zero
	for _, t := range txns {
		if t.Amount > 0 {
			total = total.Add(decimal.NewFromFloat(t.Amount))
		}
	}
	f, _ := total.Round(2).Float64()
	return f
}
