package analytics

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/yabelyaev/N3xFin/internal/format"
	"github.com/yabelyaev/N3xFin/internal/models"
)

// BuildReportCSV renders a report as the sectioned CSV download. Layout:
// a summary block, the category breakdown sorted by total descending,
// trends, insights, then recommendations, with blank rows between
// sections.
func BuildReportCSV(r models.Report) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	rows := [][]string{
		{"Monthly Report", format.MonthLabel(r.Month)},
		{"Generated", r.GeneratedAt.Format("2006-01-02 15:04")},
		{},
		{"Summary"},
		{"Total Income", fmt.Sprintf("%.2f", r.TotalIncome)},
		{"Total Spending", fmt.Sprintf("%.2f", r.TotalSpending)},
		{"Net Savings", fmt.Sprintf("%.2f", r.NetSavings)},
		{"Savings Rate", fmt.Sprintf("%.1f%%", r.SavingsRate)},
		{"Transactions", fmt.Sprintf("%d", r.TransactionCount)},
		{},
		{"Category Breakdown"},
		{"Category", "Total", "Transactions", "Share"},
	}

	breakdown := SortAggregates(r.CategoryBreakdown, SortByAmount, OrderDesc)
	for _, a := range breakdown {
		rows = append(rows, []string{
			a.Category,
			fmt.Sprintf("%.2f", a.TotalAmount),
			fmt.Sprintf("%d", a.TransactionCount),
			fmt.Sprintf("%.1f%%", a.PercentageOfTotal),
		})
	}

	if len(r.Trends) > 0 {
		rows = append(rows, []string{}, []string{"Trends"}, []string{"Category", "Direction", "Change"})
		for _, tr := range r.Trends {
			rows = append(rows, []string{
				tr.Category,
				string(tr.Direction),
				fmt.Sprintf("%.1f%%", tr.PercentageChange),
			})
		}
	}

	if len(r.Insights) > 0 {
		rows = append(rows, []string{}, []string{"Insights"})
		for _, ins := range r.Insights {
			rows = append(rows, []string{ins})
		}
	}

	if len(r.Recommendations) > 0 {
		rows = append(rows, []string{}, []string{"Recommendations"}, []string{"Category", "Potential Savings", "Title", "Description"})
		for _, rec := range SortRecommendationsByPriority(r.Recommendations) {
			rows = append(rows, []string{
				rec.Category,
				fmt.Sprintf("%.2f", rec.PotentialSavings),
				rec.Title,
				rec.Description,
			})
		}
	}

	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("writing report csv: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing report csv: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportFilename names the CSV download for a report.
func ExportFilename(reportID string) string {
	return fmt.Sprintf("report-%s.csv", reportID)
}
