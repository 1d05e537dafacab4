package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yungbote/contractpay-backend/internal/data/db"
	apphttp "github.com/yungbote/contractpay-backend/internal/http"
	"github.com/yungbote/contractpay-backend/internal/observability"
	"github.com/yungbote/contractpay-backend/internal/platform/logger"
)

const (
	dbStatsInterval  = 15 * time.Second
	limiterSweepTick = time.Minute
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Server   *apphttp.Server
	Cfg      Config
	Repos    Repos
	Services Services
	Metrics  *observability.Metrics

	mw           Middleware
	otelShutdown func(context.Context) error
}

// NewLogger builds the process logger from LOG_MODE.
func NewLogger() (*logger.Logger, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return log, nil
}

// OpenStore connects to the configured database and migrates it when asked.
func OpenStore(log *logger.Logger, cfg Config) (*gorm.DB, error) {
	store, err := db.Open(cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("init store: %w", err)
	}
	if cfg.AutoMigrate {
		if err := store.AutoMigrateAll(); err != nil {
			return nil, fmt.Errorf("automigrate: %w", err)
		}
	}
	return store.DB(), nil
}

func New(ctx context.Context, log *logger.Logger, cfg Config) (*App, error) {
	theDB, err := OpenStore(log, cfg)
	if err != nil {
		return nil, err
	}

	otelShutdown := observability.InitOTel(ctx, log, cfg.Otel)
	metrics := observability.Init(log)

	reposet := wireRepos(theDB, log)
	serviceset := wireServices(theDB, log, cfg, reposet, metrics)
	handlerset := wireHandlers(theDB, log, serviceset)
	mw := wireMiddleware(log, cfg, serviceset)
	server := wireRouter(log, cfg, metrics, handlerset, mw)

	return &App{
		Log:          log,
		DB:           theDB,
		Server:       server,
		Cfg:          cfg,
		Repos:        reposet,
		Services:     serviceset,
		Metrics:      metrics,
		mw:           mw,
		otelShutdown: otelShutdown,
	}, nil
}

// Run serves HTTP (and the optional metrics listener) until ctx is cancelled
// or a listener fails.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	g, gctx := errgroup.WithContext(ctx)

	if a.mw.RateLimiter != nil {
		a.mw.RateLimiter.StartJanitor(gctx, limiterSweepTick)
	}
	a.Metrics.StartDBCollector(gctx, a.Log, a.DB, dbStatsInterval)

	g.Go(func() error {
		return a.Server.Run(gctx, a.Cfg.HTTPAddr)
	})
	if a.Metrics != nil && a.Cfg.MetricsAddr != "" {
		g.Go(func() error {
			return a.Metrics.Serve(gctx, a.Log, a.Cfg.MetricsAddr)
		})
	}
	return g.Wait()
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.Services.ReportCache != nil {
		if err := a.Services.ReportCache.Close(); err != nil {
			a.Log.Warn("report cache close failed", "error", err)
		}
	}
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := a.otelShutdown(ctx); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
		cancel()
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
