// Package dashboard serves the analytics dashboard: the category
// breakdown with its bar/pie toggle, the spending-over-time chart, the
// anomaly list and the predictive alerts. All four views share one
// time-range selector; changing it refetches the category and series
// views, and a stale response is dropped before it can repaint anything.
package dashboard

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/yabelyaev/N3xFin/internal/analytics"
	"github.com/yabelyaev/N3xFin/internal/charts"
	"github.com/yabelyaev/N3xFin/internal/datasource"
	"github.com/yabelyaev/N3xFin/internal/httputil"
	"github.com/yabelyaev/N3xFin/internal/models"
	"github.com/yabelyaev/N3xFin/internal/templates"
	"github.com/yabelyaev/N3xFin/internal/timerange"
	"github.com/yabelyaev/N3xFin/internal/viewstate"
)

var (
	source   datasource.DataSource
	renderer *templates.Renderer
	logger   *logrus.Logger

	// One tracker per coordinated view.
	categoriesView      *viewstate.Tracker
	seriesView          *viewstate.Tracker
	anomaliesView       *viewstate.Tracker
	alertsView          *viewstate.Tracker
	recommendationsView *viewstate.Tracker
)

// Initialize wires the package dependencies before routes are
// registered.
func Initialize(src datasource.DataSource, r *templates.Renderer, log *logrus.Logger) {
	source = src
	renderer = r
	logger = log
	categoriesView = viewstate.NewTracker()
	seriesView = viewstate.NewTracker()
	anomaliesView = viewstate.NewTracker()
	alertsView = viewstate.NewTracker()
	recommendationsView = viewstate.NewTracker()
}

// RegisterRoutes mounts the dashboard endpoints.
func RegisterRoutes(r chi.Router) {
	r.Get("/dashboard", handleDashboard)
	r.Get("/dashboard/categories", handleCategories)
	r.Get("/dashboard/series", handleSeries)
	r.Get("/dashboard/anomalies", handleAnomalies)
	r.Get("/dashboard/alerts", handleAlerts)
	r.Get("/dashboard/recommendations", handleRecommendations)
	r.Post("/dashboard/anomalies/feedback", handleAnomalyFeedback)
}

// parseRange resolves the range query parameter, falling back to the
// default window for missing or unknown tokens.
func parseRange(r *http.Request) timerange.Range {
	tok := r.URL.Query().Get("range")
	if tok == "" {
		return timerange.Default
	}
	rng, err := timerange.Parse(tok)
	if err != nil {
		logger.WithField("range", tok).Debug("unknown range token, using default")
		return timerange.Default
	}
	return rng
}

// pageData is the full dashboard page payload.
type pageData struct {
	Range    timerange.Range   `json:"range"`
	Ranges   []timerange.Range `json:"ranges"`
	Selected string            `json:"selected"`
}

func handleDashboard(w http.ResponseWriter, r *http.Request) {
	rng := parseRange(r)
	data := pageData{
		Range:    rng,
		Ranges:   timerange.Ranges,
		Selected: string(rng),
	}
	if renderer != nil {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := renderer.RenderPage(w, "dashboard", data); err != nil {
			logger.WithError(err).Error("rendering dashboard page")
		}
		return
	}
	httputil.JSON(w, http.StatusOK, data)
}

// categoriesData feeds the breakdown partial: the sorted aggregates,
// their bar or pie geometry, and the trend map keyed by category.
type categoriesData struct {
	Range      timerange.Range            `json:"range"`
	Chart      string                     `json:"chart"`
	Aggregates []models.CategoryAggregate `json:"aggregates"`
	Bars       []charts.Bar               `json:"bars,omitempty"`
	Slices     []charts.Slice             `json:"slices,omitempty"`
	Trends     map[string]models.Trend    `json:"trends"`
	Total      float64                    `json:"total"`
	Empty      bool                       `json:"empty"`
}

func handleCategories(w http.ResponseWriter, r *http.Request) {
	rng := parseRange(r)
	sortKey := analytics.ParseSortKey(r.URL.Query().Get("sort"))
	order := analytics.ParseSortOrder(r.URL.Query().Get("order"))
	chart := r.URL.Query().Get("chart")
	if chart != "pie" {
		chart = "bar"
	}

	token := categoriesView.Begin()
	start, end := rng.Bounds(time.Now())

	breakdown, err := source.CategoryAggregates(r.Context(), start, end)
	if err != nil {
		failView(w, r, categoriesView, token, err)
		return
	}
	if !categoriesView.Complete(token) {
		staleResponse(w)
		return
	}

	sorted := analytics.SortAggregates(breakdown.Data, sortKey, order)
	data := categoriesData{
		Range:      rng,
		Chart:      chart,
		Aggregates: sorted,
		Trends:     breakdown.Trends,
		Total:      breakdown.TotalSpending,
		Empty:      len(sorted) == 0,
	}
	if chart == "pie" {
		data.Slices = charts.BuildPie(sorted, 150, 150, 120)
	} else {
		data.Bars = charts.BuildBars(sorted)
	}

	httputil.Respond(w, renderer, logger, "categories", data)
}

// seriesData feeds the line chart partial.
type seriesData struct {
	Range       timerange.Range          `json:"range"`
	Granularity string                   `json:"granularity"`
	Layout      *charts.Layout           `json:"layout"`
	Points      []models.TimeSeriesPoint `json:"points"`
	Empty       bool                     `json:"empty"`
}

func handleSeries(w http.ResponseWriter, r *http.Request) {
	rng := parseRange(r)
	granularity := r.URL.Query().Get("granularity")
	if granularity != "weekly" {
		granularity = "daily"
	}

	token := seriesView.Begin()
	start, end := rng.Bounds(time.Now())

	points, err := source.TimeSeries(r.Context(), start, end, granularity)
	if err != nil {
		failView(w, r, seriesView, token, err)
		return
	}
	if !seriesView.Complete(token) {
		staleResponse(w)
		return
	}

	httputil.Respond(w, renderer, logger, "series", seriesData{
		Range:       rng,
		Granularity: granularity,
		Layout:      charts.LayoutSeries(points, charts.DefaultViewport),
		Points:      points,
		Empty:       len(points) == 0,
	})
}

type anomaliesData struct {
	Range     timerange.Range  `json:"range"`
	Anomalies []models.Anomaly `json:"anomalies"`
	Empty     bool             `json:"empty"`
}

func handleAnomalies(w http.ResponseWriter, r *http.Request) {
	rng := parseRange(r)
	token := anomaliesView.Begin()
	start, end := rng.Bounds(time.Now())

	anomalies, err := source.Anomalies(r.Context(), start, end)
	if err != nil {
		failView(w, r, anomaliesView, token, err)
		return
	}
	if !anomaliesView.Complete(token) {
		staleResponse(w)
		return
	}

	httputil.Respond(w, renderer, logger, "anomalies", anomaliesData{
		Range:     rng,
		Anomalies: anomalies,
		Empty:     len(anomalies) == 0,
	})
}

type alertsData struct {
	Alerts []models.SpendingAlert `json:"alerts"`
	Empty  bool                   `json:"empty"`
}

func handleAlerts(w http.ResponseWriter, r *http.Request) {
	token := alertsView.Begin()

	alerts, err := source.Alerts(r.Context())
	if err != nil {
		failView(w, r, alertsView, token, err)
		return
	}
	if !alertsView.Complete(token) {
		staleResponse(w)
		return
	}

	httputil.Respond(w, renderer, logger, "alerts", alertsData{
		Alerts: alerts,
		Empty:  len(alerts) == 0,
	})
}

type recommendationsData struct {
	Recommendations []models.Recommendation `json:"recommendations"`
	Empty           bool                    `json:"empty"`
}

func handleRecommendations(w http.ResponseWriter, r *http.Request) {
	token := recommendationsView.Begin()

	recs, err := source.Recommendations(r.Context())
	if err != nil {
		failView(w, r, recommendationsView, token, err)
		return
	}
	if !recommendationsView.Complete(token) {
		staleResponse(w)
		return
	}

	httputil.Respond(w, renderer, logger, "recommendations", recommendationsData{
		Recommendations: analytics.RankRecommendations(recs),
		Empty:           len(recs) == 0,
	})
}

func handleAnomalyFeedback(w http.ResponseWriter, r *http.Request) {
	var feedback models.AnomalyFeedback
	if err := json.NewDecoder(r.Body).Decode(&feedback); err != nil {
		httputil.Error(w, renderer, logger, http.StatusBadRequest, "invalid feedback payload", "")
		return
	}
	if feedback.TransactionID == "" {
		httputil.Error(w, renderer, logger, http.StatusBadRequest, "transactionId is required", "")
		return
	}
	feedback.SubmittedAt = time.Now()

	logger.WithFields(logrus.Fields{
		"transactionId": feedback.TransactionID,
		"legitimate":    feedback.IsLegitimate,
	}).Info("anomaly feedback recorded")

	httputil.JSON(w, http.StatusOK, map[string]string{"status": "recorded"})
}

// failView marks the tracker failed (unless a newer request superseded
// this one) and emits the inline retryable error.
func failView(w http.ResponseWriter, r *http.Request, view *viewstate.Tracker, token uint64, err error) {
	msg := "Something went wrong loading this view"
	status := http.StatusBadGateway
	if errors.Is(err, datasource.ErrUnavailable) {
		msg = "The analytics service is unavailable right now"
	}
	if errors.Is(err, datasource.ErrNotFound) {
		msg = "The requested data was not found"
		status = http.StatusNotFound
	}

	if !view.Fail(token, msg) {
		staleResponse(w)
		return
	}
	logger.WithError(err).WithField("path", r.URL.Path).Warn("view fetch failed")
	httputil.Error(w, renderer, logger, status, msg, r.URL.RequestURI())
}

// staleResponse answers a superseded request. 204 tells the client to
// leave the view exactly as it is.
func staleResponse(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
