package models

import "time"

// Report is a generated monthly financial report. IDs follow
// "{userId}-{YYYY}-{MM}" so a month regenerates in place.
type Report struct {
	ReportID          string              `json:"reportId"`
	UserID            string              `json:"userId"`
	Month             string              `json:"month"` // YYYY-MM
	GeneratedAt       time.Time           `json:"generatedAt"`
	TotalSpending     float64             `json:"totalSpending"`
	TotalIncome       float64             `json:"totalIncome"`
	NetSavings        float64             `json:"netSavings"`
	SavingsRate       float64             `json:"savingsRate"`
	TransactionCount  int                 `json:"transactionCount"`
	CategoryBreakdown []CategoryAggregate `json:"categoryBreakdown"`
	Trends            []ReportTrend       `json:"trends"`
	Insights          []string            `json:"insights"`
	Recommendations   []Recommendation    `json:"recommendations"`
}

// ReportTrend is one entry of a report's trend sequence. Unlike the
// dashboard's per-category trend map, report trends travel as an
// ordered array and the producer's order is preserved end to end.
type ReportTrend struct {
	Category         string         `json:"category"`
	Direction        TrendDirection `json:"direction"`
	PercentageChange float64        `json:"percentageChange"`
}

// Recommendation is an actionable savings suggestion. Higher Priority
// is presented first; equal priorities keep the producer's order.
type Recommendation struct {
	ID               string   `json:"id"`
	Category         string   `json:"category"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	PotentialSavings float64  `json:"potentialSavings"`
	ActionItems      []string `json:"actionItems"`
	Priority         int      `json:"priority,omitempty"`
}

// ReportSummary is the lightweight listing entry for past reports.
type ReportSummary struct {
	ReportID      string    `json:"reportId"`
	Month         string    `json:"month"`
	GeneratedAt   time.Time `json:"generatedAt"`
	TotalSpending float64   `json:"totalSpending"`
	NetSavings    float64   `json:"netSavings"`
}
