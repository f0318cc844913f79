package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"golang.org/x/sync/errgroup"

	"votecompare/internal/chart"
	"votecompare/internal/config"
	apierrors "votecompare/internal/errors"
	"votecompare/internal/infrastructure"
	customMiddleware "votecompare/internal/middleware"
	"votecompare/internal/pipeline"
	"votecompare/internal/services"
	handlers "votecompare/internal/transport/http"
)

// Application represents the main application container
type Application struct {
	Config        *config.Config
	Paths         *config.Paths
	Router        *chi.Mux
	Server        *http.Server
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	Metrics       *infrastructure.PipelineMetrics
	Datasets      *services.DatasetService
	Health        *services.HealthService
}

// Option customizes an Application
type Option func(*Application)

// WithLoader replaces the pipeline loader, mainly for tests
func WithLoader(load services.LoadFunc) Option {
	return func(a *Application) {
		a.Datasets = services.NewDatasetService(load, a.chartOptions(), a.Metrics, a.Logger)
	}
}

// NewApplication creates a new application instance with dependency injection
func NewApplication(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Application, error) {
	logger.Info("Application starting",
		slog.String("name", config.AppName),
		slog.String("version", config.AppVersion),
		slog.Int("sources", len(cfg.Sources)))

	paths, err := config.GetPaths(cfg.Paths)
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

	metrics, err := infrastructure.CreatePipelineMetrics(otelProviders.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline metrics: %w", err)
	}

	app := &Application{
		Config:        cfg,
		Paths:         paths,
		Logger:        logger,
		OTelProviders: otelProviders,
		Metrics:       metrics,
	}

	app.initializeServices()
	for _, opt := range opts {
		opt(app)
	}
	app.Health = services.NewHealthService(config.AppVersion, app.Datasets, logger)

	app.setupRouter()
	app.createServer()

	return app, nil
}

func (a *Application) chartOptions() chart.Options {
	return chart.Options{
		Title:       a.Config.Chart.Title,
		MarkerScale: a.Config.Chart.MarkerScale,
	}
}

// initializeServices initializes all application services
func (a *Application) initializeServices() {
	load := services.PipelineLoader(a.Config, a.Paths,
		pipeline.WithLogger(infrastructure.WithComponent(a.Logger, "pipeline")),
		pipeline.WithTracer(a.OTelProviders.Tracer),
		pipeline.WithMetrics(a.Metrics),
	)
	a.Datasets = services.NewDatasetService(load, a.chartOptions(), a.Metrics,
		infrastructure.WithComponent(a.Logger, "datasets"))
}

// setupRouter configures the HTTP router with all routes
func (a *Application) setupRouter() {
	r := chi.NewRouter()
	errorHandler := apierrors.NewErrorHandler(a.Logger, false)

	// RequestID → RealIP → OTel → Logger → Recoverer → SecurityHeaders → RateLimit
	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)

	r.Group(func(r chi.Router) {
		otelMiddleware, err := customMiddleware.NewOTelMiddleware(a.OTelProviders)
		if err != nil {
			a.Logger.Error("Failed to create OpenTelemetry middleware", slog.String("error", err.Error()))
		} else {
			r.Use(otelMiddleware.Handler)
		}

		r.Use(customMiddleware.StructuredLogger(a.Logger))
		r.Use(customMiddleware.Recoverer(a.Logger))
		r.Use(customMiddleware.SecurityHeaders)
		r.Use(customMiddleware.Compress(5))

		if a.Config.Security.RateLimit.Enabled {
			r.Use(customMiddleware.NewRateLimiter(
				a.Config.Security.RateLimit.RPS,
				a.Config.Security.RateLimit.Burst,
				a.Logger,
			).Handler)
		}

		page := handlers.NewPageHandler(a.Datasets, a.Config.Chart.Title, a.Logger, errorHandler)
		r.Get("/", page.ServeChart)

		health := handlers.NewHealthHandler(a.Health, a.Logger)
		r.With(render.SetContentType(render.ContentTypeJSON)).Get("/api/health", health.HealthCheck)

		r.Mount("/api", handlers.NewChartHandler(a.Datasets, a.Logger, errorHandler).Routes())
	})

	if a.OTelProviders.PrometheusHTTP != nil {
		r.Handle("/metrics", a.OTelProviders.PrometheusHTTP)
	}

	r.NotFound(errorHandler.NotFound)
	r.MethodNotAllowed(errorHandler.MethodNotAllowed)

	a.Router = r
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         net.JoinHostPort(a.Config.Server.Host, strconv.Itoa(a.Config.Server.Port)),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Run loads the first dataset and serves HTTP until ctx is cancelled or the
// process receives SIGINT/SIGTERM
func (a *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ds, err := a.Datasets.Reload(ctx)
	if err != nil {
		return fmt.Errorf("initial dataset load failed: %w", err)
	}
	a.Logger.InfoContext(ctx, "Initial dataset ready",
		slog.String("dataset_id", ds.ID.String()),
		slog.Int("neighborhoods", len(ds.Domain)))

	listener, err := net.Listen("tcp", a.Server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", a.Server.Addr, err)
	}

	a.Logger.InfoContext(ctx, "Application started",
		slog.String("address", "http://"+listener.Addr().String()))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := a.Server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		a.Logger.InfoContext(ctx, "Shutdown requested")
		return a.Stop(context.Background())
	})

	return g.Wait()
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
