package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/ignashub/ictperfect-tool2/internal/api"
	"github.com/ignashub/ictperfect-tool2/internal/database"
	"github.com/ignashub/ictperfect-tool2/internal/logger"
	"github.com/ignashub/ictperfect-tool2/internal/metrics"
	"github.com/ignashub/ictperfect-tool2/internal/middleware"
	"github.com/ignashub/ictperfect-tool2/internal/repository"
	"github.com/ignashub/ictperfect-tool2/internal/scoring"
	"github.com/ignashub/ictperfect-tool2/internal/services"
	"github.com/ignashub/ictperfect-tool2/pkg/config"
)

const (
	shutdownTimeout    = 15 * time.Second
	rateLimitSweepTick = 5 * time.Minute
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.New()
	appLog := logger.NewSimpleLogger("server", cfg.Debug || cfg.IsDevelopment())

	if err := run(cfg, appLog); err != nil {
		appLog.Fatal("Server stopped", err)
	}
}

func run(cfg *config.Config, appLog logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, store, closeStore, err := openStorage(cfg, appLog)
	if err != nil {
		return err
	}
	defer closeStore()

	monitor := repository.NewStorageMonitor()
	repo = repository.NewMonitoredRepository(repo, monitor)

	var rec *metrics.Recorder
	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		rec = metrics.New(reg)
	}

	var engineOpts []scoring.Option
	if cfg.RandomSeed != 0 {
		engineOpts = append(engineOpts, scoring.WithSeed(cfg.RandomSeed))
	}
	svc := services.NewServices(repo, scoring.NewScoringEngine(engineOpts...),
		services.WithLogger(logger.NewSimpleLogger("workspace", cfg.Debug)),
		services.WithMetrics(rec),
	)

	var limiter *middleware.RateLimiter
	if cfg.EnableRateLimit {
		limiter = middleware.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)
	}

	router, err := buildRouter(cfg, appLog, limiter, api.Dependencies{
		Services:    svc,
		Store:       store,
		Monitor:     monitor,
		StorageName: cfg.StorageBackend,
		Metrics:     rec,
		Logger:      appLog,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		appLog.Info("Server starting", "port", cfg.Port, "storage", cfg.StorageBackend, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		appLog.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if limiter != nil {
		g.Go(func() error {
			ticker := time.NewTicker(rateLimitSweepTick)
			defer ticker.Stop()
			for {
				select {
				case <-gctx.Done():
					return nil
				case <-ticker.C:
					limiter.Sweep()
				}
			}
		})
	}

	return g.Wait()
}

// openStorage returns the configured workspace repository. store is nil for
// the in-memory backend.
func openStorage(cfg *config.Config, appLog logger.Logger) (repository.WorkspaceRepository, api.HealthChecker, func(), error) {
	if !cfg.UsesPostgres() {
		appLog.Warn("Using in-memory storage; workspaces are lost on restart")
		return repository.NewMemoryRepository(), nil, func() {}, nil
	}
	if cfg.DatabaseURL == "" {
		return nil, nil, nil, errors.New("DATABASE_URL is required for postgres storage")
	}

	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, nil, nil, err
	}

	repo := repository.NewPostgresRepository(db.DB, logger.NewSimpleLogger("repository", cfg.Debug))
	return repo, db, func() { db.Close() }, nil
}

func buildRouter(cfg *config.Config, appLog logger.Logger, limiter *middleware.RateLimiter, deps api.Dependencies) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if err := r.SetTrustedProxies(cfg.GetTrustedProxies()); err != nil {
		return nil, err
	}

	r.Use(middleware.LoggingMiddleware(appLog, deps.Metrics))
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.CORSMiddleware(cfg))
	r.Use(middleware.InputValidationMiddleware(cfg.MaxRequestSize))
	if limiter != nil {
		r.Use(limiter.Middleware())
	}
	r.Use(gin.Recovery())

	api.SetupRoutes(r, deps)
	return r, nil
}
