package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/waste_approval_app/internal/platform/config"
	goredis "github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

const storePrefix = "waste_approval_limiter"

// NewLimiter builds the per-IP request limiter. With REDIS_ADDR set the
// counters live in redis and are shared by every replica; otherwise they are
// kept in process memory. The returned close function releases the redis client.
func NewLimiter(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*limiter.Limiter, func(), error) {
	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid RATE_LIMIT %q: %w", cfg.RateLimit, err)
	}

	if cfg.RedisAddr == "" {
		logger.Info("Rate limiter using in-memory store", slog.Int64("limit", rate.Limit), slog.Duration("period", rate.Period))
		return limiter.New(memory.NewStoreWithOptions(limiter.StoreOptions{
			Prefix:          storePrefix,
			CleanUpInterval: limiter.DefaultCleanUpInterval,
		}), rate), func() {}, nil
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
	}

	store, err := sredis.NewStoreWithOptions(client, limiter.StoreOptions{
		Prefix:   storePrefix,
		MaxRetry: 3,
	})
	if err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to create redis limiter store: %w", err)
	}

	logger.Info("Rate limiter using redis store", slog.String("addr", cfg.RedisAddr), slog.Int64("limit", rate.Limit))
	closeFn := func() {
		if err := client.Close(); err != nil {
			logger.Warn("Failed to close redis client", slog.String("error", err.Error()))
		}
	}
	return limiter.New(store, rate), closeFn, nil
}
