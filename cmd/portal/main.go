package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/noah-isme/sees-portal/api/swagger"
	"github.com/noah-isme/sees-portal/internal/client"
	"github.com/noah-isme/sees-portal/internal/handler"
	"github.com/noah-isme/sees-portal/internal/repository"
	"github.com/noah-isme/sees-portal/internal/service"
	"github.com/noah-isme/sees-portal/pkg/cache"
	"github.com/noah-isme/sees-portal/pkg/config"
	"github.com/noah-isme/sees-portal/pkg/database"
	"github.com/noah-isme/sees-portal/pkg/export"
	"github.com/noah-isme/sees-portal/pkg/jobs"
	"github.com/noah-isme/sees-portal/pkg/logger"
	"github.com/noah-isme/sees-portal/pkg/palette"
)

// @title SEES Portal API
// @version 0.1.0
// @description Calendar, listing and dashboard views over the SEES event backend
// @BasePath /
// @schemes http

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var metrics *service.MetricsService
	if cfg.Metrics.Enabled {
		metrics = service.NewMetricsService()
	}

	colors := loadPalette(cfg, logr)
	if stopWatch, err := colors.Watch(); err != nil {
		logr.Warn("palette hot reload disabled", zap.Error(err))
	} else {
		defer stopWatch()
	}

	checks := map[string]handler.ReadinessCheck{}

	var cacheRepo service.CacheRepository
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("event cache disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
			cacheRepo = repository.NewCacheRepository(redisClient)
			checks["redis"] = redisCheck(redisClient)
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Cache.TTL, logr, cacheRepo != nil)

	eventParams := service.EventServiceParams{
		Fetcher:  client.NewSEESClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, nil, metrics, logr),
		Adapter:  service.NewEventAdapter(loadLocation(cfg.Upstream.Timezone, logr)),
		Cache:    cacheSvc,
		CacheTTL: cfg.Cache.TTL,
		Metrics:  metrics,
		Logger:   logr,
	}

	if cfg.Mirror.Enabled {
		db, queue, err := startMirror(ctx, cfg, metrics, logr)
		if err != nil {
			logr.Warn("event mirror disabled", zap.Error(err))
		} else {
			defer db.Close()
			defer queue.Stop()
			mirror := repository.NewEventMirrorRepository(db)
			eventParams.Mirror = mirror
			eventParams.MirrorQueue = queue
			checks["postgres"] = db.PingContext
		}
	}

	events := service.NewEventService(eventParams)
	listing := service.NewListingService(events, colors, logr)
	calendar := service.NewCalendarService(events, colors, logr)
	dashboards := service.NewDashboardService(events, listing, calendar, logr)
	exports := service.NewExportService(listing, export.NewCSVExporter(), export.NewPDFExporter(), logr)

	validate := validator.New()
	router := newRouter(cfg, logr, routerDeps{
		Sessions:  service.NewSessionService(cfg.Session.JWTSecret, logr),
		Metrics:   metrics,
		Calendar:  handler.NewCalendarHandler(calendar, validate),
		Events:    handler.NewEventHandler(listing, exports, events, validate),
		Dashboard: handler.NewDashboardHandler(dashboards),
		Health:    handler.NewMetricsHandler(metrics, checks),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "upstream", cfg.Upstream.BaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Warn("graceful shutdown failed", zap.Error(err))
	}
}

func loadPalette(cfg *config.Config, logr *zap.Logger) *palette.Palette {
	if cfg.Palette.File == "" {
		return palette.New(logr)
	}
	p, err := palette.Load(cfg.Palette.File, logr)
	if err != nil {
		logr.Warn("palette file unreadable, using built-in colors", zap.String("file", cfg.Palette.File), zap.Error(err))
		return palette.New(logr)
	}
	return p
}

func loadLocation(name string, logr *zap.Logger) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		logr.Warn("unknown timezone, using UTC", zap.String("timezone", name), zap.Error(err))
		return time.UTC
	}
	return loc
}

func startMirror(ctx context.Context, cfg *config.Config, metrics *service.MetricsService, logr *zap.Logger) (*sqlx.DB, *jobs.Queue, error) {
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := database.EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ensure schema: %w", err)
	}

	mirrorHandler := service.NewMirrorJobHandler(repository.NewEventMirrorRepository(db), metrics, logr)
	queue := jobs.NewQueue("event-mirror", mirrorHandler, jobs.QueueConfig{
		Workers:    cfg.Mirror.Workers,
		MaxRetries: cfg.Mirror.Retries,
		RetryDelay: time.Second,
		Logger:     logr,
	})
	queue.Start(ctx)
	return db, queue, nil
}

func redisCheck(client *redis.Client) handler.ReadinessCheck {
	return func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
}
