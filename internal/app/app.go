package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/go-chi/chi/v5"

	"staffgap/internal/config"
	"staffgap/internal/dataprocessing"
	"staffgap/internal/errors"
	"staffgap/internal/exporter"
	"staffgap/internal/files"
	"staffgap/internal/infrastructure"
	customMiddleware "staffgap/internal/middleware"
	"staffgap/internal/services"
	handlers "staffgap/internal/transport/http"
	"staffgap/pkg/contracts"
)

// Application represents the main application container
type Application struct {
	Config        *config.Config
	Paths         *config.Paths
	Router        *chi.Mux
	Server        *http.Server
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	Metrics       *infrastructure.HeadcountMetrics
	Services      *ServiceContainer
}

// ServiceContainer holds all application services
type ServiceContainer struct {
	RosterStore *files.RosterStore
	Roster      *services.RosterService
	Headcount   *services.HeadcountService
	Health      *services.HealthService
	Exporter    *exporter.ReportExporter
}

// NewApplication loads configuration from the environment and config file
// and builds the application.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// relative log files live in the logs directory of the resolved tree
	if cfg.Logging.FilePath != "" && !filepath.IsAbs(cfg.Logging.FilePath) {
		if paths, err := config.ResolvePaths(cfg.Paths); err == nil {
			if err := paths.EnsureDirectories(); err == nil {
				cfg.Logging.FilePath = paths.GetLogPath(filepath.Base(cfg.Logging.FilePath))
			}
		}
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return New(cfg, logger)
}

// New builds the application from an explicit configuration and logger.
func New(cfg *config.Config, logger *slog.Logger) (*Application, error) {
	logger.Info("Application starting",
		slog.String("name", config.AppName),
		slog.String("version", config.AppVersion))

	paths, err := config.ResolvePaths(cfg.Paths)
	if err != nil {
		return nil, fmt.Errorf("failed to get paths: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}
	paths.LogPathResolution(logger)

	otelProviders, err := infrastructure.InitializeOTel(infrastructure.OTelConfigFrom(cfg.Telemetry), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	metrics, err := infrastructure.CreateHeadcountMetrics(otelProviders.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create headcount metrics: %w", err)
	}

	app := &Application{
		Config:        cfg,
		Paths:         paths,
		Logger:        logger,
		OTelProviders: otelProviders,
		Metrics:       metrics,
	}

	app.initializeServices()
	app.setupRouter()
	app.createServer()

	return app, nil
}

// initializeServices wires the pipeline: parsers feed the services, the
// roster store persists the definitions workbook.
func (a *Application) initializeServices() {
	rosterStore := files.NewRosterStore(a.Paths, dataprocessing.NewRosterLoader(a.Logger), a.Logger)

	a.Services = &ServiceContainer{
		RosterStore: rosterStore,
		Roster:      services.NewRosterService(rosterStore, a.Metrics, a.Logger),
		Headcount: services.NewHeadcountService(
			dataprocessing.NewExportParser(a.Logger),
			rosterStore,
			a.Config.Headcount.Windows,
			a.Metrics,
			a.Logger,
		),
		Health:   services.NewHealthService(config.AppVersion, contracts.BuildTime, a.Paths, rosterStore, a.Logger),
		Exporter: exporter.NewReportExporter(a.Paths, a.Logger),
	}
}

// setupRouter configures the HTTP router with all routes.
// Middleware order: RequestID → RealIP → OTel → request log → Recoverer →
// security headers → rate limit → Timeout.
func (a *Application) setupRouter() {
	r := chi.NewRouter()
	errorHandler := errors.NewErrorHandler(a.Logger, false)

	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)

	r.NotFound(errorHandler.NotFound)
	r.MethodNotAllowed(errorHandler.MethodNotAllowed)

	r.Group(func(r chi.Router) {
		r.Use(customMiddleware.NewOTelMiddleware(a.OTelProviders.Tracer, a.Metrics).Handler)
		r.Use(errors.NewErrorMiddleware(errorHandler, a.Logger).Handler)
		r.Use(errors.RecoveryMiddleware(errorHandler))
		r.Use(customMiddleware.SecurityHeaders)

		if a.Config.Security.RateLimit.Enabled {
			r.Use(customMiddleware.NewRateLimiter(
				a.Config.Security.RateLimit.RPS,
				a.Config.Security.RateLimit.Burst,
				a.Logger,
			).Handler)
		}

		r.Use(customMiddleware.Timeout(a.Config.Server.RequestTimeout))

		a.setupAPIRoutes(r, errorHandler)
	})

	if a.OTelProviders.PrometheusHTTP != nil {
		r.Handle(config.MetricsEndpoint, a.OTelProviders.PrometheusHTTP)
	}

	a.Router = r
}

// setupAPIRoutes configures API endpoints
func (a *Application) setupAPIRoutes(r chi.Router, errorHandler *errors.ErrorHandler) {
	validator := customMiddleware.NewValidator(a.Logger)
	uploads := customMiddleware.ContentTypeValidator(errorHandler, "multipart/form-data")
	maxUpload := a.Config.Headcount.MaxUploadBytes

	r.Route(config.APIBasePath, func(r chi.Router) {
		healthHandler := handlers.NewHealthHandler(a.Services.Health, a.Logger)
		r.Get("/health", healthHandler.HealthCheck)
		r.Get("/health/ready", healthHandler.ReadinessCheck)
		r.Get("/health/live", healthHandler.LivenessCheck)
		r.Get("/version", healthHandler.Version)

		rosterHandler := handlers.NewRosterHandler(a.Services.Roster, maxUpload, a.Logger, errorHandler)
		r.With(uploads).Mount("/roster", rosterHandler.Routes())

		headcountHandler := handlers.NewHeadcountHandler(
			a.Services.Headcount,
			a.Services.Exporter,
			validator,
			a.Metrics,
			maxUpload,
			a.Logger,
			errorHandler,
		)
		r.With(uploads).Mount("/headcount", headcountHandler.Routes())
	})
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}
}

// Start starts serving in the background. A listen failure cancels ctx
// through cancel.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	a.Logger.InfoContext(ctx, "Starting application",
		slog.String("name", config.AppName),
		slog.String("version", config.AppVersion),
		slog.Int("port", a.Config.Server.Port),
		slog.String("level", a.Config.Logging.Level))

	if !a.Services.RosterStore.Present() {
		a.Logger.WarnContext(ctx, "No definitions workbook uploaded",
			slog.String("path", a.Services.RosterStore.Path()),
			slog.String("action", "PUT /api/roster before running headcount reports"))
	}

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.Logger.ErrorContext(ctx, "Server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	a.Logger.InfoContext(ctx, "Application started successfully",
		slog.String("address", fmt.Sprintf("http://localhost:%d", a.Config.Server.Port)))
	return nil
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry", slog.String("error", err.Error()))
		}
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	return nil
}

// Run runs the application until interrupted
func (a *Application) Run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	<-ctx.Done()
	a.Logger.Info("Received shutdown signal")

	return a.Stop(context.Background())
}
