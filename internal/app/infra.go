package app

import (
	"context"

	"github.com/tcumang/admin-frontend/internal/config"
	"github.com/tcumang/admin-frontend/internal/logger"
	"github.com/tcumang/admin-frontend/internal/redis"
)

type Infra struct {
	// Redis is nil when no address is configured; the session store then
	// falls back to process memory.
	Redis *redis.Client
}

func setupInfra(ctx context.Context, cfg config.Config) (*Infra, error) {

	if cfg.RedisAddr == "" {
		logger.Warn("no redis configured, sessions will not survive restarts", nil)
		return &Infra{}, nil
	}

	redisClient, err := redis.New(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		return nil, err
	}

	logger.Info("redis ready", nil)

	return &Infra{Redis: redisClient}, nil
}
