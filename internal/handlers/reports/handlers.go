// Package reports serves the monthly report views: the list of past
// reports, the detail view with summary cards and breakdown, report
// generation, and the CSV export download.
package reports

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/yabelyaev/N3xFin/internal/analytics"
	"github.com/yabelyaev/N3xFin/internal/datasource"
	"github.com/yabelyaev/N3xFin/internal/httputil"
	"github.com/yabelyaev/N3xFin/internal/models"
	"github.com/yabelyaev/N3xFin/internal/session"
	"github.com/yabelyaev/N3xFin/internal/snapshots"
	"github.com/yabelyaev/N3xFin/internal/templates"
	"github.com/yabelyaev/N3xFin/internal/viewstate"
)

// demoUser owns reports generated by anonymous sessions, which only
// happens with the sample data source.
const demoUser = "demo"

var (
	source   datasource.DataSource
	store    *snapshots.Store
	renderer *templates.Renderer
	logger   *logrus.Logger

	detailView *viewstate.Tracker
)

// Initialize wires the package dependencies before routes are
// registered.
func Initialize(src datasource.DataSource, st *snapshots.Store, r *templates.Renderer, log *logrus.Logger) {
	source = src
	store = st
	renderer = r
	logger = log
	detailView = viewstate.NewTracker()
}

// RegisterRoutes mounts the report endpoints.
func RegisterRoutes(r chi.Router) {
	r.Get("/reports", handleList)
	r.Post("/reports/generate", handleGenerate)
	r.Get("/reports/{reportID}", handleDetail)
	r.Get("/reports/{reportID}/export", handleExport)
}

type listData struct {
	Reports []models.ReportSummary `json:"reports"`
	Empty   bool                   `json:"empty"`
}

func handleList(w http.ResponseWriter, r *http.Request) {
	summaries, err := store.List()
	if err != nil {
		logger.WithError(err).Error("listing report snapshots")
		httputil.Error(w, renderer, logger, http.StatusInternalServerError,
			"Could not load past reports", "/reports")
		return
	}
	httputil.Respond(w, renderer, logger, "report-list", listData{
		Reports: summaries,
		Empty:   len(summaries) == 0,
	})
}

// detailData feeds the report detail view. Breakdown arrives sorted by
// total descending and recommendations by priority descending,
// regardless of how the report was stored.
type detailData struct {
	Report          *models.Report             `json:"report"`
	Breakdown       []models.CategoryAggregate `json:"breakdown"`
	Recommendations []models.Recommendation    `json:"recommendations"`
	ExportURL       string                     `json:"exportUrl"`
}

func handleDetail(w http.ResponseWriter, r *http.Request) {
	reportID := chi.URLParam(r, "reportID")
	token := detailView.Begin()

	report, err := loadReport(r, reportID)
	if err != nil {
		status := http.StatusBadGateway
		msg := "Something went wrong loading this report"
		if errors.Is(err, datasource.ErrNotFound) {
			status = http.StatusNotFound
			msg = fmt.Sprintf("Report %s does not exist", reportID)
		} else if errors.Is(err, datasource.ErrUnavailable) {
			msg = "The analytics service is unavailable right now"
		}
		if !detailView.Fail(token, msg) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		logger.WithError(err).WithField("reportId", reportID).Warn("report fetch failed")
		httputil.Error(w, renderer, logger, status, msg, r.URL.RequestURI())
		return
	}
	if !detailView.Complete(token) {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	httputil.Respond(w, renderer, logger, "report-detail", detailData{
		Report:          report,
		Breakdown:       analytics.SortAggregates(report.CategoryBreakdown, analytics.SortByAmount, analytics.OrderDesc),
		Recommendations: analytics.SortRecommendationsByPriority(report.Recommendations),
		ExportURL:       fmt.Sprintf("/reports/%s/export", report.ReportID),
	})
}

// loadReport prefers the local snapshot and falls back to the source,
// caching what it fetches.
func loadReport(r *http.Request, reportID string) (*models.Report, error) {
	if report, err := store.Load(reportID); err == nil {
		return report, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		logger.WithError(err).WithField("reportId", reportID).Warn("unreadable snapshot, refetching")
	}

	report, err := source.Report(r.Context(), reportID)
	if err != nil {
		return nil, err
	}
	if err := store.Save(report); err != nil {
		logger.WithError(err).Warn("caching report snapshot")
	}
	return report, nil
}

type generateRequest struct {
	Month string `json:"month"`
}

func handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, renderer, logger, http.StatusBadRequest, "invalid request body", "")
		return
	}
	if _, err := time.Parse("2006-01", req.Month); err != nil {
		httputil.Error(w, renderer, logger, http.StatusBadRequest,
			fmt.Sprintf("month %q is not in YYYY-MM form", req.Month), "")
		return
	}

	userID := demoUser
	if sess := session.FromContext(r.Context()); sess.Authenticated() {
		userID = sess.UserID
	}

	report, err := source.GenerateReport(r.Context(), userID, req.Month)
	if err != nil {
		msg := "Report generation failed"
		if errors.Is(err, datasource.ErrUnavailable) {
			msg = "The analytics service is unavailable right now"
		}
		logger.WithError(err).WithField("month", req.Month).Error("generating report")
		httputil.Error(w, renderer, logger, http.StatusBadGateway, msg, "/reports/generate")
		return
	}

	if err := store.Save(report); err != nil {
		logger.WithError(err).Error("saving report snapshot")
	}

	logger.WithFields(logrus.Fields{
		"reportId": report.ReportID,
		"month":    req.Month,
	}).Info("report generated")
	httputil.JSON(w, http.StatusCreated, report)
}

func handleExport(w http.ResponseWriter, r *http.Request) {
	reportID := chi.URLParam(r, "reportID")

	report, err := loadReport(r, reportID)
	if err != nil {
		if errors.Is(err, datasource.ErrNotFound) {
			httputil.Error(w, renderer, logger, http.StatusNotFound,
				fmt.Sprintf("Report %s does not exist", reportID), "")
			return
		}
		logger.WithError(err).WithField("reportId", reportID).Error("loading report for export")
		httputil.Error(w, renderer, logger, http.StatusBadGateway,
			"Could not load the report for export", r.URL.RequestURI())
		return
	}

	data, err := analytics.BuildReportCSV(*report)
	if err != nil {
		logger.WithError(err).Error("building report csv")
		httputil.Error(w, renderer, logger, http.StatusInternalServerError,
			"Could not build the CSV export", r.URL.RequestURI())
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", analytics.ExportFilename(report.ReportID)))
	w.Write(data)
}
