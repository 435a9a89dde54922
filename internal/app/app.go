package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"olivepulse/internal/config"
	"olivepulse/internal/infrastructure"
	"olivepulse/internal/middleware"
	"olivepulse/internal/services"
	transport "olivepulse/internal/transport/http"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Application wires configuration, observability, services and the HTTP
// server together.
type Application struct {
	cfg       *config.Config
	logger    *slog.Logger
	providers *infrastructure.OTelProviders
	server    *http.Server
}

// NewApplication builds the application from configuration.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		return nil, err
	}

	providers, err := infrastructure.InitializeOTel(&infrastructure.OTelConfig{
		ServiceName:    infrastructure.ServiceName,
		ServiceVersion: Version,
		Environment:    cfg.Observability.Environment,
		TraceExporter:  cfg.Observability.TraceExporter,
		MetricExporter: cfg.Observability.MetricExporter,
		SampleRatio:    cfg.Observability.SampleRatio,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize observability: %w", err)
	}

	var pipelineMetrics *infrastructure.PipelineMetrics
	if providers.Meter != nil {
		pipelineMetrics, err = infrastructure.CreatePipelineMetrics(providers.Meter)
		if err != nil {
			return nil, fmt.Errorf("failed to create pipeline metrics: %w", err)
		}
	}

	forecastService := services.NewForecastService(cfg, pipelineMetrics, logger)
	healthService := services.NewHealthService(cfg, Version)

	router := setupRouter(cfg, logger, providers, pipelineMetrics, forecastService, healthService)

	app := &Application{
		cfg:       cfg,
		logger:    logger,
		providers: providers,
		server:    createServer(cfg, router),
	}

	return app, nil
}

// setupRouter builds the middleware chain and mounts the API routes.
func setupRouter(
	cfg *config.Config,
	logger *slog.Logger,
	providers *infrastructure.OTelProviders,
	pipelineMetrics *infrastructure.PipelineMetrics,
	forecastService *services.ForecastService,
	healthService *services.HealthService,
) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.NewOTelMiddleware(providers, pipelineMetrics, logger).Handler)
	r.Use(middleware.StructuredLogger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.SecurityHeaders)
	r.Use(chimiddleware.Compress(5))
	r.Use(middleware.Timeout(cfg.Server.WriteTimeout, logger))
	r.Use(render.SetContentType(render.ContentTypeJSON))

	if cfg.Security.EnableCORS {
		r.Use(middleware.CORS(middleware.CORSConfig{
			AllowedOrigins: cfg.Security.AllowedOrigins,
			Logger:         logger,
		}))
	}

	if cfg.Security.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.Security.RateLimit.RPS, cfg.Security.RateLimit.Burst, logger)
		r.Use(limiter.Handler)
	}

	r.Route("/api", func(api chi.Router) {
		api.Mount("/", transport.NewForecastHandler(forecastService, logger).Routes())
		api.Mount("/health", transport.NewHealthHandler(healthService, logger).Routes())
		api.Mount("/metrics", transport.NewMetricsHandler(providers).Routes())
	})

	return r
}

// createServer creates the HTTP server with timeouts from configuration.
func createServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
}

// Start begins serving HTTP traffic. Blocks until the server stops.
func (a *Application) Start() error {
	a.logger.Info("starting server",
		slog.String("addr", a.server.Addr),
		slog.String("version", Version),
		slog.String("dataset", a.cfg.DatasetPath()))

	if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the server and observability providers.
func (a *Application) Stop(ctx context.Context) error {
	a.logger.InfoContext(ctx, "shutting down server")

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if a.providers != nil {
		if err := a.providers.Shutdown(ctx); err != nil {
			a.logger.ErrorContext(ctx, "observability shutdown failed", slog.String("error", err.Error()))
		}
	}

	if err := infrastructure.CloseLogFile(); err != nil {
		return fmt.Errorf("log file close failed: %w", err)
	}

	return nil
}

// Run starts the application and blocks until SIGINT or SIGTERM, then shuts
// down gracefully within the configured timeout.
func (a *Application) Run() error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- a.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		a.logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	}

	timeout := a.cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	return a.Stop(ctx)
}
