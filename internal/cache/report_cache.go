package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"hrms/internal/config"
	"hrms/internal/models"
)

const (
	reportGenerationKey = "hrms:report:gen"
	departmentReportKey = "hrms:report:departments"
)

// noGeneration is handed out when the generation could not be read; it never
// matches a stored counter, so the following store is skipped.
const noGeneration int64 = -1

func departmentReportKeyFor(gen int64) string {
	return departmentReportKey + ":" + strconv.FormatInt(gen, 10)
}

// RedisReportCache stores the department report as JSON under a key suffixed
// with the current generation. Invalidation bumps the generation, which
// orphans older entries until their TTL runs out.
type RedisReportCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *slog.Logger
}

func NewRedisReportCache(rdb *redis.Client, ttl time.Duration, lg *slog.Logger) *RedisReportCache {
	return &RedisReportCache{rdb: rdb, ttl: ttl, log: lg}
}

// Connect returns nil when no address is configured or the server does not
// answer a ping; callers then run without a report cache.
func Connect(ctx context.Context, cfg config.RedisConfig, lg *slog.Logger) *RedisReportCache {
	if cfg.Addr == "" {
		lg.Warn("REDIS_ADDR not set, department report cache disabled")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		lg.Error("redis unreachable, department report cache disabled", "addr", cfg.Addr, "error", err)
		_ = rdb.Close()
		return nil
	}

	lg.Info("redis connected", "addr", cfg.Addr)
	return NewRedisReportCache(rdb, cfg.ReportTTL, lg)
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func generation(ctx context.Context, rdb getter) (int64, error) {
	gen, err := rdb.Get(ctx, reportGenerationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *RedisReportCache) DepartmentReport(ctx context.Context) ([]models.DepartmentCount, int64, bool) {
	gen, err := generation(ctx, c.rdb)
	if err != nil {
		c.log.Error("redis GET failed", "key", reportGenerationKey, "error", err)
		return nil, noGeneration, false
	}

	key := departmentReportKeyFor(gen)
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Error("redis GET failed", "key", key, "error", err)
		}
		return nil, gen, false
	}

	var rows []models.DepartmentCount
	if err := json.Unmarshal(raw, &rows); err != nil {
		c.log.Warn("discarding unreadable cached report", "key", key, "error", err)
		return nil, gen, false
	}
	c.log.Debug("department report served from cache", "generation", gen)
	return rows, gen, true
}

// StoreDepartmentReport writes rows only while gen is still the current
// generation. WATCH aborts the write if an invalidation lands in between.
func (c *RedisReportCache) StoreDepartmentReport(ctx context.Context, gen int64, rows []models.DepartmentCount) {
	if gen == noGeneration {
		return
	}
	raw, err := json.Marshal(rows)
	if err != nil {
		c.log.Error("marshal department report", "error", err)
		return
	}

	err = c.rdb.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := generation(ctx, tx)
		if err != nil {
			return err
		}
		if cur != gen {
			c.log.Debug("skipping stale department report", "generation", gen, "current", cur)
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, departmentReportKeyFor(gen), raw, c.ttl)
			return nil
		})
		return err
	}, reportGenerationKey)

	switch {
	case err == nil:
	case errors.Is(err, redis.TxFailedErr):
		c.log.Debug("department report invalidated while storing", "generation", gen)
	default:
		c.log.Error("redis SET failed", "key", departmentReportKeyFor(gen), "error", err)
	}
}

func (c *RedisReportCache) InvalidateDepartmentReport(ctx context.Context) {
	if err := c.rdb.Incr(ctx, reportGenerationKey).Err(); err != nil {
		c.log.Error("redis INCR failed", "key", reportGenerationKey, "error", err)
	}
}

func (c *RedisReportCache) Close() error {
	return c.rdb.Close()
}
