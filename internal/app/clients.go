package app

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/quantumatlas/atlas-backend/internal/data/db"
	"github.com/quantumatlas/atlas-backend/internal/observability"
	"github.com/quantumatlas/atlas-backend/internal/platform/analyzer"
	"github.com/quantumatlas/atlas-backend/internal/platform/logger"
	"github.com/quantumatlas/atlas-backend/internal/platform/rediscache"
	"github.com/quantumatlas/atlas-backend/internal/platform/secretbox"
)

// Clients are the collaborators that live outside the database.
type Clients struct {
	Redis      *goredis.Client
	ImageCache rediscache.ImageCache
	Analyzer   analyzer.Control
	Sealer     *secretbox.Sealer
	Metrics    *observability.Metrics
}

func wireClients(ctx context.Context, cfg Config, log *logger.Logger) (Clients, error) {
	log.Info("Wiring clients...")

	var metrics *observability.Metrics
	if cfg.MetricsEnabled {
		metrics = observability.NewMetrics()
	}

	sealer, err := secretbox.NewSealer(cfg.CredentialsKey)
	if err != nil {
		return Clients{}, fmt.Errorf("init credentials sealer: %w", err)
	}
	if sealer == nil {
		log.Warn("CREDENTIALS_KEY not set, provider keys are stored unsealed")
	}

	// Redis
	var rdb *goredis.Client
	if cfg.RedisAddr != "" {
		rdb, err = rediscache.Dial(ctx, cfg.RedisAddr)
		if err != nil {
			return Clients{}, fmt.Errorf("init redis: %w", err)
		}
	}
	cache := rediscache.NewImageCache(rdb, cfg.ImageCacheTTL.Duration, log)

	ctl := analyzer.NewClient(analyzer.Config{
		BaseURL: cfg.Analyzer.URL,
		Timeout: cfg.Analyzer.Timeout.Duration,
	}, log)

	return Clients{
		Redis:      rdb,
		ImageCache: instrumentImageCache(cache, metrics),
		Analyzer:   instrumentAnalyzer(ctl, metrics),
		Sealer:     sealer,
		Metrics:    metrics,
	}, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
}

func openDatabase(cfg DatabaseConfig, log *logger.Logger) (*gorm.DB, error) {
	var (
		conn *gorm.DB
		err  error
	)
	switch cfg.Driver {
	case "sqlite":
		conn, err = db.OpenSQLite(cfg.SQLitePath, log)
		if err == nil {
			if sqlDB, derr := conn.DB(); derr == nil {
				sqlDB.SetMaxOpenConns(1)
			}
		}
	default:
		var pg *db.PostgresService
		pg, err = db.NewPostgresService(cfg.Postgres, log)
		if err == nil {
			conn = pg.DB()
		}
	}
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrateAll(conn); err != nil {
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	return conn, nil
}
