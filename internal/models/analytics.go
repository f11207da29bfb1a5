package models

import "time"

// TrendDirection classifies how spending moved between two periods.
type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
)

// CategoryAggregate is a pre-summed spending bucket for one category over a
// time window. Instances are immutable once received; a range change replaces
// the whole slice rather than mutating entries.
type CategoryAggregate struct {
	Category          string  `json:"category"`
	TotalAmount       float64 `json:"totalAmount"`
	TransactionCount  int     `json:"transactionCount"`
	PercentageOfTotal float64 `json:"percentageOfTotal"`
}

// TimeSeriesPoint is a single bucketed spending observation. Duplicate
// timestamps are legal and render as distinct points.
type TimeSeriesPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Amount    float64   `json:"amount"`
	Category  string    `json:"category,omitempty"`
}

// Trend describes period-over-period movement for one category. The renderer
// trusts Direction as tagged by the producer: "stable" may carry a small
// non-zero PercentageChange.
type Trend struct {
	Direction        TrendDirection `json:"direction"`
	PercentageChange float64        `json:"percentageChange"`
	ComparisonPeriod string         `json:"comparisonPeriod"`
}

// CategoryBreakdown is the payload returned by a category-aggregate fetch.
type CategoryBreakdown struct {
	Data          []CategoryAggregate `json:"data"`
	TotalSpending float64             `json:"totalSpending"`
	Trends        map[string]Trend    `json:"trends"`
}

// AmountRange is the expected band for a category used in anomaly reporting.
type AmountRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Anomaly is a statistically unusual transaction flagged for review.
type Anomaly struct {
	Transaction   Transaction `json:"transaction"`
	Reason        string      `json:"reason"`
	Severity      string      `json:"severity"` // low, medium, high
	ExpectedRange AmountRange `json:"expectedRange"`
	ZScore        float64     `json:"zScore"`
}

// AnomalyFeedback records a user's verdict on a flagged transaction.
type AnomalyFeedback struct {
	TransactionID string    `json:"transactionId"`
	IsLegitimate  bool      `json:"isLegitimate"`
	Notes         string    `json:"notes,omitempty"`
	SubmittedAt   time.Time `json:"submittedAt"`
}

// SpendingForecast projects category spending over a horizon from recent
// history. Confidence is 1 minus the coefficient of variation, clamped to
// [0,1], so erratic categories forecast with low confidence.
type SpendingForecast struct {
	Category          string  `json:"category"`
	PredictedAmount   float64 `json:"predictedAmount"`
	Confidence        float64 `json:"confidence"`
	HorizonDays       int     `json:"horizon"`
	HistoricalAverage float64 `json:"historicalAverage"`
	DataPoints        int     `json:"dataPoints"`
}

// SpendingAlert warns that forecast spending for a category exceeds its
// historical norm.
type SpendingAlert struct {
	ID                string    `json:"id"`
	Category          string    `json:"category"`
	Message           string    `json:"message"`
	PredictedAmount   float64   `json:"predictedAmount"`
	HistoricalAverage float64   `json:"historicalAverage"`
	Severity          string    `json:"severity"` // info, warning, critical
	Recommendations   []string  `json:"recommendations"`
	Confidence        float64   `json:"confidence"`
	CreatedAt         time.Time `json:"createdAt"`
}
