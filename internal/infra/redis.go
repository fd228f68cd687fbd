package infra

import (
	"context"

	"github.com/go-redis/redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/shixiaoya/materials/internal/config"
)

// Redis connects to response cache. Empty Addr or a failing ping returns a nil
// client, which downstream consumers treat as "caching disabled".
func Redis(ctx context.Context, cfg config.RedisCfg) *redis.Client {
	if cfg.Addr == "" {
		logrus.Info("redis is not configured, caching is disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		logrus.WithError(err).Warn("redis is unreachable, caching is disabled")
		return nil
	}
	return client
}
