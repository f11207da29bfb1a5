// Package datasource abstracts where analytics payloads come from: the
// hosted N3xFin API in production, or a deterministic built-in sample
// when no API is configured. The strategy is chosen once at startup;
// handlers never know which one they talk to.
package datasource

import (
	"context"
	"errors"
	"time"

	"github.com/yabelyaev/N3xFin/internal/models"
)

// Sentinel errors handlers branch on.
var (
	// ErrNotFound means the requested report does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnavailable means the upstream could not be reached or
	// answered with a server error. The message shown to the user
	// comes from wrapping context, with a generic fallback.
	ErrUnavailable = errors.New("data source unavailable")
)

// DataSource serves every payload the dashboard and report views need.
// All methods honor context cancellation; date parameters are truncated
// to whole days on the wire.
type DataSource interface {
	// CategoryAggregates returns per-category spending in [start, end]
	// together with period-over-period trends.
	CategoryAggregates(ctx context.Context, start, end time.Time) (*models.CategoryBreakdown, error)

	// TimeSeries returns spending bucketed by the granularity
	// ("daily" or "weekly") over [start, end], chronological.
	TimeSeries(ctx context.Context, start, end time.Time, granularity string) ([]models.TimeSeriesPoint, error)

	// Report fetches a generated report by id.
	Report(ctx context.Context, reportID string) (*models.Report, error)

	// GenerateReport builds (or rebuilds) the report for a
	// "YYYY-MM" month.
	GenerateReport(ctx context.Context, userID, month string) (*models.Report, error)

	// Anomalies returns flagged transactions in [start, end], most
	// severe first.
	Anomalies(ctx context.Context, start, end time.Time) ([]models.Anomaly, error)

	// Alerts returns the current predictive spending alerts, most
	// severe first.
	Alerts(ctx context.Context) ([]models.SpendingAlert, error)

	// Recommendations returns the standalone savings suggestions,
	// ranked by potential savings then priority.
	Recommendations(ctx context.Context) ([]models.Recommendation, error)
}

// wireDate is the date format used in query strings.
const wireDate = "2006-01-02"
