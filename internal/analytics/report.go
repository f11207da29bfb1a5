package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/yabelyaev/N3xFin/internal/models"
)

// recommendationShare is the fraction of a category's spending suggested
// as an achievable cut.
const recommendationShare = 0.15

// ReportID builds the canonical id for a user's monthly report, so
// regenerating a month overwrites the previous report.
func ReportID(userID, month string) string {
	return fmt.Sprintf("%s-%s", userID, month)
}

// BuildReport assembles the monthly report for the given "YYYY-MM"
// month from that month's transactions and the previous month's
// category totals. An empty month still yields a complete report with
// an explanatory insight so the view has something to render.
func BuildReport(userID, month string, txns []models.Transaction, previousTotals map[string]float64, now time.Time) models.Report {
	report := models.Report{
		ReportID:    ReportID(userID, month),
		UserID:      userID,
		Month:       month,
		GeneratedAt: now,
	}

	if len(txns) == 0 {
		report.Insights = []string{"No transactions found for this month"}
		return report
	}

	breakdown := AggregateByCategory(txns)
	spending := TotalSpending(txns)
	income := TotalIncome(txns)
	savings := income - spending

	savingsRate := 0.0
	if income > 0 {
		savingsRate = math.Round(savings/income*1000) / 10
	}

	currentTotals := make(map[string]float64, len(breakdown))
	for _, a := range breakdown {
		currentTotals[a.Category] = a.TotalAmount
	}

	report.TotalSpending = spending
	report.TotalIncome = income
	report.NetSavings = math.Round(savings*100) / 100
	report.SavingsRate = savingsRate
	report.TransactionCount = len(txns)
	report.CategoryBreakdown = breakdown
	report.Trends = reportTrends(breakdown, currentTotals, previousTotals)
	report.Insights = buildInsights(report, breakdown)
	report.Recommendations = BuildRecommendations(breakdown)
	return report
}

// reportTrends classifies every category seen in either window into the
// report's ordered trend sequence: breakdown order (largest spending
// first) for current categories, then vanished categories by name.
func reportTrends(breakdown []models.CategoryAggregate, current, previous map[string]float64) []models.ReportTrend {
	trends := make([]models.ReportTrend, 0, len(breakdown))
	for _, a := range breakdown {
		dir, change := ClassifyTrend(current[a.Category], previous[a.Category])
		trends = append(trends, models.ReportTrend{
			Category:         a.Category,
			Direction:        dir,
			PercentageChange: change,
		})
	}

	var vanished []string
	for category := range previous {
		if _, ok := current[category]; !ok {
			vanished = append(vanished, category)
		}
	}
	sort.Strings(vanished)
	for _, category := range vanished {
		dir, change := ClassifyTrend(0, previous[category])
		trends = append(trends, models.ReportTrend{
			Category:         category,
			Direction:        dir,
			PercentageChange: change,
		})
	}
	return trends
}

// buildInsights produces the fallback insight list: savings-rate tier,
// top category, and activity volume.
func buildInsights(r models.Report, breakdown []models.CategoryAggregate) []string {
	var insights []string

	switch {
	case r.SavingsRate > 20:
		insights = append(insights, fmt.Sprintf("Excellent work! You saved %.1f%% of your income this month", r.SavingsRate))
	case r.SavingsRate > 10:
		insights = append(insights, fmt.Sprintf("Good progress: you saved %.1f%% of your income this month", r.SavingsRate))
	case r.SavingsRate > 0:
		insights = append(insights, fmt.Sprintf("You saved %.1f%% of your income; small consistent savings add up", r.SavingsRate))
	default:
		insights = append(insights, "You spent more than you earned this month; reviewing your top categories could help")
	}

	if len(breakdown) > 0 {
		top := breakdown[0]
		insights = append(insights, fmt.Sprintf("%s was your largest spending category at %.1f%% of total spending",
			top.Category, top.PercentageOfTotal))
	}

	insights = append(insights, fmt.Sprintf("You made %d transactions this month", r.TransactionCount))
	return insights
}

// BuildRecommendations suggests cutting 15% from the two largest
// categories, each with three concrete action items. The larger
// category gets the higher priority.
func BuildRecommendations(breakdown []models.CategoryAggregate) []models.Recommendation {
	var recs []models.Recommendation
	for i, a := range breakdown {
		if i >= 2 {
			break
		}
		savings := math.Round(a.TotalAmount*recommendationShare*100) / 100
		recs = append(recs, models.Recommendation{
			ID:       uuid.New().String(),
			Category: a.Category,
			Title:    fmt.Sprintf("Reduce %s spending", a.Category),
			Description: fmt.Sprintf("Cutting %s spending by 15%% would save you %.2f per month",
				a.Category, savings),
			PotentialSavings: savings,
			ActionItems: []string{
				fmt.Sprintf("Review your %d %s transactions for recurring charges you no longer use", a.TransactionCount, a.Category),
				fmt.Sprintf("Set a %s budget of %.2f for next month", a.Category, a.TotalAmount*(1-recommendationShare)),
				"Track this category weekly instead of at month end",
			},
			Priority: 2 - i,
		})
	}
	return recs
}

// Summarize trims a report to its listing entry.
func Summarize(r models.Report) models.ReportSummary {
	return models.ReportSummary{
		ReportID:      r.ReportID,
		Month:         r.Month,
		GeneratedAt:   r.GeneratedAt,
		TotalSpending: r.TotalSpending,
		NetSavings:    r.NetSavings,
	}
}
