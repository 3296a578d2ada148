package infrastructure

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"user-account-service/internal/config"
)

// NewRedisClient creates a Redis client and verifies connectivity with a ping.
// Returns (nil, nil) when Redis is disabled; the caller treats a nil client
// as "no cache, no rate limiting".
func NewRedisClient(cfg *config.Config, l *zap.Logger) (*redis.Client, error) {
	if !cfg.Redis.Enabled {
		l.Info("redis disabled, running without cache")
		return nil, nil
	}

	addr := fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port)

	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}

	l.Info("redis connected successfully",
		zap.String("addr", addr),
		zap.Int("db", cfg.Redis.DB),
	)

	return rdb, nil
}
