package cache

import (
	"context"

	"github.com/billing/backend/internal/domain/shared"
	"github.com/billing/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewIdempotencyStore builds the store selected by cfg.Backend.
// When Redis is unreachable outside production the in-memory store is used instead.
func NewIdempotencyStore(ctx context.Context, cfg config.IdempotencyConfig, redisCfg config.RedisConfig, env string, logger *zap.Logger) (shared.IdempotencyStore, error) {
	if cfg.Backend != "redis" {
		logger.Info("Using in-memory idempotency store")
		return NewInMemoryIdempotencyStore(), nil
	}

	store, err := NewRedisIdempotencyStore(ctx, redisCfg)
	if err != nil {
		if env == "production" {
			return nil, err
		}
		logger.Warn("Redis unavailable, falling back to in-memory idempotency store",
			zap.String("addr", redisCfg.Addr()),
			zap.Error(err),
		)
		return NewInMemoryIdempotencyStore(), nil
	}

	logger.Info("Using Redis idempotency store", zap.String("addr", redisCfg.Addr()))
	return store, nil
}
