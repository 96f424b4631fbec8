package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ch1tg/GameTrackr-web/internal/api"
	"github.com/ch1tg/GameTrackr-web/internal/apicache"
	"github.com/ch1tg/GameTrackr-web/internal/config"
	"github.com/ch1tg/GameTrackr-web/internal/web"
	"github.com/ch1tg/GameTrackr-web/pkg/health"
	"github.com/ch1tg/GameTrackr-web/pkg/tracing"
)

// App wires together all dependencies and runs the web frontend.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	httpServer     *http.Server
	registry       *web.Registry
	redisClient    *redis.Client
	tracerShutdown func(context.Context) error
}

// NewApp creates the application: tracing, the shared response cache, the
// per-browser session registry, and the HTTP router.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize OpenTelemetry tracing.
	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    "gametrackr-web",
		ServiceVersion: "0.1.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTELEndpoint,
		SampleRate:     cfg.OTELSampleRate,
		Enabled:        cfg.OTELEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	// Shared read-through cache for public API responses. Sessions carry
	// their own cookies, so only session-independent GETs go through it.
	var cache *apicache.Cache
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		cache = apicache.New(redisClient, cfg.CacheTTL, logger)
	}

	apiCfg := api.DefaultConfig(cfg.APIBaseURL)
	apiCfg.CSRFCookieName = cfg.CSRFCookieName
	apiCfg.CSRFHeader = cfg.CSRFHeaderName
	apiCfg.Timeout = cfg.APITimeout

	// Each browser session gets its own API client; its cookie jar holds
	// exactly that browser's upstream session.
	registry := web.NewRegistry(func(id string) (*web.AppSession, error) {
		client, err := api.New(apiCfg, cache, logger)
		if err != nil {
			return nil, fmt.Errorf("create API client for session %s: %w", id, err)
		}
		return web.NewAppSession(id, client, cfg.PreviewDelay, logger), nil
	}, cfg.SessionTTL, logger)

	// A dedicated client for readiness probes, outside any browser session.
	probe, err := api.New(apiCfg, nil, logger)
	if err != nil {
		return nil, fmt.Errorf("create probe API client: %w", err)
	}

	healthHandler := health.NewHandler("gametrackr-web")
	healthHandler.Register("upstream", func(ctx context.Context) error {
		return probe.Ping(ctx)
	})
	if redisClient != nil {
		healthHandler.Register("redis", func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}

	router, err := web.NewRouter(cfg, registry, healthHandler, logger)
	if err != nil {
		return nil, fmt.Errorf("build router: %w", err)
	}

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		httpServer:     httpServer,
		registry:       registry,
		redisClient:    redisClient,
		tracerShutdown: tracerShutdown,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown stops everything in dependency order: drain HTTP, stop the
// session janitor, close redis, then flush spans.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	httpCtx, httpCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer httpCancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	a.registry.Close()

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if a.tracerShutdown != nil {
		tracerCtx, tracerCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer tracerCancel()
		if err := a.tracerShutdown(tracerCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}
