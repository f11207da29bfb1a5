// Command server runs the N3xFin analytics dashboard.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/yabelyaev/N3xFin/internal/config"
	"github.com/yabelyaev/N3xFin/internal/datasource"
	"github.com/yabelyaev/N3xFin/internal/handlers/dashboard"
	"github.com/yabelyaev/N3xFin/internal/handlers/reports"
	"github.com/yabelyaev/N3xFin/internal/session"
	"github.com/yabelyaev/N3xFin/internal/snapshots"
	"github.com/yabelyaev/N3xFin/internal/templates"
	"github.com/yabelyaev/N3xFin/internal/version"
)

// Dependencies holds everything the router needs, split out so tests
// can build a server without touching main.
type Dependencies struct {
	Config   *config.Config
	Logger   *logrus.Logger
	Source   datasource.DataSource
	Store    *snapshots.Store
	Renderer *templates.Renderer
}

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()
	if *showVersion {
		fmt.Println(version.Get().String())
		return
	}

	logger := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("loading configuration")
	}

	if cfg.Debug {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	deps, err := SetupDependencies(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("setting up dependencies")
	}

	router := SetupRouter(deps)

	scheduler := startReportSchedule(deps)
	if scheduler != nil {
		defer scheduler.Stop()
	}

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: router,
	}

	go func() {
		logger.WithFields(logrus.Fields{
			"addr":    cfg.ListenAddr,
			"version": version.Get().String(),
		}).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("graceful shutdown failed")
	}
}

// SetupDependencies builds the data source, snapshot store and
// renderer from configuration.
func SetupDependencies(cfg *config.Config, logger *logrus.Logger) (*Dependencies, error) {
	store, err := openSnapshotStore(cfg, logger)
	if err != nil {
		return nil, err
	}

	var source datasource.DataSource
	if cfg.APIBaseURL != "" {
		logger.WithField("baseUrl", cfg.APIBaseURL).Info("using live analytics api")
		source = datasource.NewLiveSource(cfg.APIBaseURL, cfg.APITimeout, logger)
	} else {
		logger.Info("no analytics api configured, using sample data")
		source = datasource.NewSampleSource(time.Now())
	}

	renderer, err := templates.New(cfg.TemplatesDir)
	if err != nil {
		return nil, err
	}
	if renderer == nil {
		logger.Warn("no templates found, serving JSON only")
	}

	return &Dependencies{
		Config:   cfg,
		Logger:   logger,
		Source:   source,
		Store:    store,
		Renderer: renderer,
	}, nil
}

// openSnapshotStore opens the report snapshot store, prompting for the
// password on the terminal when the directory is encrypted and no
// password came from the environment.
func openSnapshotStore(cfg *config.Config, logger *logrus.Logger) (*snapshots.Store, error) {
	dir := cfg.SnapshotsDir()
	password := os.Getenv("N3XFIN_SNAPSHOT_PASSWORD")

	if password == "" && snapshots.IsEncrypted(dir) {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, fmt.Errorf("snapshots in %s are encrypted; set N3XFIN_SNAPSHOT_PASSWORD", dir)
		}
		fmt.Fprint(os.Stderr, "Snapshot password: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return nil, fmt.Errorf("reading password: %w", err)
		}
		password = string(raw)
	}

	if password == "" {
		return snapshots.New(dir, logger), nil
	}
	return snapshots.NewEncrypted(dir, password, logger)
}

// SetupRouter wires middleware, handler packages and the health
// endpoint.
func SetupRouter(deps *Dependencies) chi.Router {
	dashboard.Initialize(deps.Source, deps.Renderer, deps.Logger)
	reports.Initialize(deps.Source, deps.Store, deps.Renderer, deps.Logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if deps.Config.JWTSecret != "" {
		r.Use(session.Middleware([]byte(deps.Config.JWTSecret), deps.Logger))
	}

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/dashboard", http.StatusFound)
	})
	r.Get("/api/health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"ok","version":%q}`, version.Get().String())
	})

	dashboard.RegisterRoutes(r)
	reports.RegisterRoutes(r)

	if deps.Config.StaticDir != "" {
		if _, err := os.Stat(deps.Config.StaticDir); err == nil {
			fs := http.StripPrefix("/static/", http.FileServer(http.Dir(deps.Config.StaticDir)))
			r.Handle("/static/*", fs)
		}
	}

	return r
}

// startReportSchedule arranges automatic generation of last month's
// report on the configured cron expression.
func startReportSchedule(deps *Dependencies) *cron.Cron {
	if deps.Config.ReportCron == "" {
		return nil
	}

	c := cron.New()
	_, err := c.AddFunc(deps.Config.ReportCron, func() {
		month := time.Now().AddDate(0, -1, 0).Format("2006-01")
		ctx, cancel := context.WithTimeout(context.Background(), deps.Config.APITimeout)
		defer cancel()

		report, err := deps.Source.GenerateReport(ctx, "demo", month)
		if err != nil {
			deps.Logger.WithError(err).WithField("month", month).Error("scheduled report generation failed")
			return
		}
		if err := deps.Store.Save(report); err != nil {
			deps.Logger.WithError(err).Error("saving scheduled report")
			return
		}
		deps.Logger.WithField("reportId", report.ReportID).Info("scheduled report generated")
	})
	if err != nil {
		deps.Logger.WithError(err).Warn("invalid report cron expression, schedule disabled")
		return nil
	}
	c.Start()
	return c
}
