package main

import (
	"io"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/yabelyaev/N3xFin/internal/config"
	"github.com/yabelyaev/N3xFin/internal/testutil"
)

func setupTestServer(t *testing.T) *testutil.TestServer {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	dir := t.TempDir()
	t.Setenv("N3XFIN_DATA_DIR", filepath.Join(dir, "data"))
	t.Setenv("N3XFIN_TEMPLATES_DIR", filepath.Join(dir, "no-templates"))

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}

	deps, err := SetupDependencies(cfg, logger)
	if err != nil {
		t.Fatalf("setting up dependencies: %v", err)
	}
	return testutil.NewTestServer(t, SetupRouter(deps))
}

func TestHealthEndpoint(t *testing.T) {
	srv := setupTestServer(t)
	srv.GET("/api/health").
		Status(http.StatusOK).
		ContentType("application/json").
		Contains(`"status":"ok"`)
}

func TestRootRedirectsToDashboard(t *testing.T) {
	srv := setupTestServer(t)
	// The default client follows the redirect into the dashboard.
	srv.GET("/").Status(http.StatusOK)
}

func TestDashboardEndpointsServeSampleData(t *testing.T) {
	srv := setupTestServer(t)

	srv.GET("/dashboard/categories").
		Status(http.StatusOK).
		ContentType("application/json").
		Contains("aggregates")

	srv.GET("/dashboard/series").
		Status(http.StatusOK).
		Contains("layout")

	srv.GET("/dashboard/alerts").Status(http.StatusOK)
	srv.GET("/dashboard/anomalies").Status(http.StatusOK)
	srv.GET("/dashboard/recommendations").
		Status(http.StatusOK).
		Contains("recommendations")
}

func TestReportFlowAgainstSampleData(t *testing.T) {
	srv := setupTestServer(t)

	srv.POST("/reports/generate", map[string]string{"month": "2024-01"}).
		Status(http.StatusCreated).
		Contains("demo-2024-01")

	srv.GET("/reports/demo-2024-01").Status(http.StatusOK)
	srv.GET("/reports/demo-2024-01/export").
		Status(http.StatusOK).
		ContentType("text/csv")
	srv.GET("/reports").
		Status(http.StatusOK).
		Contains("demo-2024-01")
}
