package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"jobmate/jobboard/internal/config"
	"jobmate/jobboard/internal/storage"
)

// Resources are the live connections behind the service. Redis is set when
// either the storage backend or event publishing needs it.
type Resources struct {
	Medium storage.SwapMedium
	Redis  *redis.Client
	Pool   *pgxpool.Pool
}

// Open connects everything cfg asks for. On error, whatever was already
// opened is closed again.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (res *Resources, err error) {
	res = &Resources{}
	defer func() {
		if err != nil {
			res.Close()
			res = nil
		}
	}()

	if cfg.StorageBackend == config.BackendRedis || cfg.EventsEnabled {
		log.Info().Msg("connecting to Redis")
		if res.Redis, err = NewRedisClient(ctx, cfg.RedisURL); err != nil {
			return res, err
		}
		log.Info().Msg("Redis connected")
	}

	switch cfg.StorageBackend {
	case config.BackendMemory:
		res.Medium = storage.NewMemory()
	case config.BackendFile:
		fm, ferr := storage.NewFileMedium(cfg.DataDir)
		if ferr != nil {
			return res, ferr
		}
		res.Medium = fm
	case config.BackendRedis:
		res.Medium = storage.NewRedisMedium(res.Redis)
	case config.BackendPostgres:
		log.Info().Msg("connecting to PostgreSQL")
		if res.Pool, err = NewPostgresPool(ctx, cfg.DatabaseURL); err != nil {
			return res, err
		}
		pm := storage.NewPostgresMedium(res.Pool)
		if err = pm.EnsureSchema(ctx); err != nil {
			return res, err
		}
		res.Medium = pm
		log.Info().Msg("PostgreSQL connected")
	default:
		return res, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}

	log.Info().Str("backend", cfg.StorageBackend).Msg("storage ready")
	return res, nil
}

// Close releases every open connection. It is safe on a partial Resources.
func (r *Resources) Close() {
	if r == nil {
		return
	}
	if r.Redis != nil {
		_ = r.Redis.Close()
	}
	if r.Pool != nil {
		r.Pool.Close()
	}
}
