// Package main is the entrypoint for the ad-click tracking API server.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pawshield/adtrack/internal/cache"
	"github.com/pawshield/adtrack/internal/config"
	"github.com/pawshield/adtrack/internal/content"
	"github.com/pawshield/adtrack/internal/handler"
	"github.com/pawshield/adtrack/internal/metrics"
	"github.com/pawshield/adtrack/internal/middleware"
	"github.com/pawshield/adtrack/internal/repository"
	"github.com/pawshield/adtrack/internal/server"
	"github.com/pawshield/adtrack/internal/tracker"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer repo.Close()
	logger.Info("connected to database")

	var cacheClient *cache.Cache
	if cfg.RedisURL != "" {
		cacheClient, err = cache.New(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error("failed to connect to Redis", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer cacheClient.Close()
		logger.Info("connected to Redis")
	} else {
		logger.Warn("REDIS_URL not set, content cache disabled")
	}

	var recorder metrics.Recorder = metrics.NewNoop()
	if cfg.MetricsNamespace != "" {
		recorder = metrics.NewPrometheus(cfg.MetricsNamespace)
	}

	trackerSvc := tracker.New(repo, logger, recorder)
	contentSvc := content.NewService(repo, cacheClient, cfg.ContentCacheTTL, logger, recorder)

	trackHandler := handler.NewTrackHandler(trackerSvc, contentSvc, logger)
	analyticsHandler := handler.NewAnalyticsHandler(trackerSvc, logger)
	healthHandler := newHealthHandler(repo, cacheClient)

	r := setupRouter(trackHandler, analyticsHandler, healthHandler, cfg, logger)

	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// newHealthHandler wires the health endpoints; the cache check is
// skipped when Redis is not configured.
func newHealthHandler(repo *repository.Repository, cacheClient *cache.Cache) *handler.HealthHandler {
	if cacheClient == nil {
		return handler.NewHealthHandler(repo, nil)
	}
	return handler.NewHealthHandler(repo, cacheClient)
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(
	track *handler.TrackHandler,
	analytics *handler.AnalyticsHandler,
	health *handler.HealthHandler,
	cfg *config.Config,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))

	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)

	if cfg.MetricsNamespace != "" {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Get("/", track.Landing)
	r.Post("/convert", track.Convert)
	r.Get("/sessions/{sessionID}", func(w http.ResponseWriter, req *http.Request) {
		track.Session(w, req, chi.URLParam(req, "sessionID"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.AdminKey(cfg.AnalyticsKeyHash, logger))
		r.Get("/analytics", analytics.Report)
	})

	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	return r
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
