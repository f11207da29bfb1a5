package datasource

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yabelyaev/N3xFin/internal/models"
)

// LiveSource talks to the hosted N3xFin analytics API.
type LiveSource struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewLiveSource builds a source against the given API base URL.
func NewLiveSource(baseURL string, timeout time.Duration, logger *logrus.Logger) *LiveSource {
	return &LiveSource{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

func (s *LiveSource) CategoryAggregates(ctx context.Context, start, end time.Time) (*models.CategoryBreakdown, error) {
	q := url.Values{
		"startDate": {start.Format(wireDate)},
		"endDate":   {end.Format(wireDate)},
	}
	var breakdown models.CategoryBreakdown
	if err := s.get(ctx, "/analytics/categories", q, &breakdown); err != nil {
		return nil, err
	}
	return &breakdown, nil
}

func (s *LiveSource) TimeSeries(ctx context.Context, start, end time.Time, granularity string) ([]models.TimeSeriesPoint, error) {
	q := url.Values{
		"startDate":   {start.Format(wireDate)},
		"endDate":     {end.Format(wireDate)},
		"granularity": {granularity},
	}
	var payload struct {
		Data []models.TimeSeriesPoint `json:"data"`
	}
	if err := s.get(ctx, "/analytics/spending-over-time", q, &payload); err != nil {
		return nil, err
	}
	return payload.Data, nil
}

func (s *LiveSource) Report(ctx context.Context, reportID string) (*models.Report, error) {
	var report models.Report
	if err := s.get(ctx, "/reports/"+url.PathEscape(reportID), nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (s *LiveSource) GenerateReport(ctx context.Context, userID, month string) (*models.Report, error) {
	body := map[string]string{"userId": userID, "month": month}
	var report models.Report
	if err := s.post(ctx, "/reports/generate", body, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (s *LiveSource) Anomalies(ctx context.Context, start, end time.Time) ([]models.Anomaly, error) {
	q := url.Values{
		"startDate": {start.Format(wireDate)},
		"endDate":   {end.Format(wireDate)},
	}
	var payload struct {
		Data []models.Anomaly `json:"data"`
	}
	if err := s.get(ctx, "/analytics/anomalies", q, &payload); err != nil {
		return nil, err
	}
	return payload.Data, nil
}

func (s *LiveSource) Alerts(ctx context.Context) ([]models.SpendingAlert, error) {
	var payload struct {
		Data []models.SpendingAlert `json:"data"`
	}
	if err := s.get(ctx, "/analytics/alerts", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Data, nil
}

func (s *LiveSource) Recommendations(ctx context.Context) ([]models.Recommendation, error) {
	var payload struct {
		Data []models.Recommendation `json:"data"`
	}
	if err := s.get(ctx, "/recommendations", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Data, nil
}

func (s *LiveSource) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	u := s.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", path, err)
	}
	return s.do(req, path, out)
}

func (s *LiveSource) post(ctx context.Context, path string, body interface{}, out interface{}) error {
	buf, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request for %s: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(buf))
	if err != nil {
		return fmt.Errorf("building request for %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return s.do(req, path, out)
}

func (s *LiveSource) do(req *http.Request, path string, out interface{}) error {
	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.WithError(err).WithField("path", path).Warn("analytics api unreachable")
		return fmt.Errorf("calling %s: %w", path, ErrUnavailable)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s: %w", path, ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		msg := readErrorMessage(resp.Body)
		s.logger.WithFields(logrus.Fields{
			"path":   path,
			"status": resp.StatusCode,
		}).Warn("analytics api error")
		if msg != "" {
			return fmt.Errorf("%s: %w", msg, ErrUnavailable)
		}
		return fmt.Errorf("%s returned status %d: %w", path, resp.StatusCode, ErrUnavailable)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}

// readErrorMessage pulls the server's message field from an error body
// so the user sees the upstream explanation when one exists.
func readErrorMessage(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}
