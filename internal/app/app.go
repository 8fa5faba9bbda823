// Package app wires configuration into a ready entity store. Both binaries
// share it.
package app

import (
	"context"
	"fmt"
	"time"

	"alcyxob/workout-tracker/internal/config"
	"alcyxob/workout-tracker/internal/metrics"
	"alcyxob/workout-tracker/internal/repository"
	"alcyxob/workout-tracker/internal/repository/file"
	"alcyxob/workout-tracker/internal/repository/memory"
	"alcyxob/workout-tracker/internal/repository/mongo"
	redisstore "alcyxob/workout-tracker/internal/repository/redis"
	"alcyxob/workout-tracker/internal/repository/sqlite"
	"alcyxob/workout-tracker/internal/service"
	"alcyxob/workout-tracker/internal/stats"
	"alcyxob/workout-tracker/internal/storage"

	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

const metricsNamespace = "workouts"

// App holds the store and the resources behind it.
type App struct {
	Store   *service.Store
	Backups storage.BackupStorage // nil when s3 is not configured
	Metrics *metrics.Manager

	closers []func() error
}

// New opens the configured backend and loads the store from it. Close must be
// called to release the backend.
func New(ctx context.Context, cfg config.Config, reg prometheus.Registerer) (*App, error) {
	a := &App{
		Metrics: metrics.NewManager(metricsNamespace, "app", reg),
	}

	kv, err := a.openKV(ctx, cfg.Storage)
	if err != nil {
		return nil, multierr.Append(err, a.Close())
	}

	opts := []service.Option{service.WithMetrics(a.Metrics)}
	if cfg.Stats.CacheSizeMB > 0 {
		opts = append(opts, service.WithStatsCache(stats.NewCache(cfg.Stats.CacheSizeMB, a.Metrics)))
	}
	a.Store = service.NewStore(ctx, kv, opts...)

	if cfg.S3.Enabled() {
		backups, err := storage.NewS3Storage(ctx, cfg.S3)
		if err != nil {
			return nil, multierr.Append(fmt.Errorf("init s3 storage: %w", err), a.Close())
		}
		a.Backups = backups
	}

	return a, nil
}

func (a *App) openKV(ctx context.Context, cfg config.StorageConfig) (repository.KVStore, error) {
	log.Infof("using %s storage", cfg.Driver)

	switch cfg.Driver {
	case config.DriverMemory:
		return memory.NewStore(), nil

	case config.DriverFile:
		return file.NewStore(cfg.DataDir)

	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		return db, nil

	case config.DriverMongo:
		mdb, err := mongo.Open(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, fmt.Errorf("open mongo: %w", err)
		}
		a.closers = append(a.closers, mdb.Close)
		db := mdb.Database

		indexCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if err := mongo.EnsureKVIndexes(indexCtx, db.Collection(mongo.KVCollectionName)); err != nil {
			log.Warnf("ensure kv indexes: %s", err)
		}
		return mongo.NewMongoKVRepository(db), nil

	case config.DriverRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		a.closers = append(a.closers, rdb.Close)
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		return redisstore.NewStore(rdb, cfg.RedisPrefix), nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// Close releases the backend connections, reporting every failure.
func (a *App) Close() error {
	var errs error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = multierr.Append(errs, a.closers[i]())
	}
	a.closers = nil
	return errs
}
