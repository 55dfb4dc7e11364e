package cache

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/paymentflow/backend/internal/domain/listing"
	"github.com/paymentflow/backend/internal/infrastructure/config"
)

// Store is a listing.Store that owns resources
type Store interface {
	listing.Store
	io.Closer
}

// StoreFactory builds the preference store selected by configuration
type StoreFactory struct {
	prefs         config.PreferencesConfig
	redisConfig   config.RedisConfig
	logger        *zap.Logger
	allowFallback bool
	pingTimeout   time.Duration
}

// FactoryOption configures a StoreFactory
type FactoryOption func(*StoreFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *StoreFactory) { f.logger = logger }
}

// WithInMemoryFallback controls whether an unreachable Redis degrades to the
// in-memory store instead of failing startup. Default is false.
func WithInMemoryFallback(allow bool) FactoryOption {
	return func(f *StoreFactory) { f.allowFallback = allow }
}

// NewStoreFactory creates a new factory
func NewStoreFactory(prefs config.PreferencesConfig, redisCfg config.RedisConfig, opts ...FactoryOption) *StoreFactory {
	f := &StoreFactory{
		prefs:       prefs,
		redisConfig: redisCfg,
		logger:      zap.NewNop(),
		pingTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateStore returns the configured store
func (f *StoreFactory) CreateStore(ctx context.Context) (Store, error) {
	if f.prefs.Backend != "redis" {
		f.logger.Info("Using in-memory preference store")
		return NewMemoryStore(time.Minute), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     f.redisConfig.Addr(),
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, f.pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		if !f.allowFallback {
			return nil, fmt.Errorf("failed to connect to Redis at %s: %w", f.redisConfig.Addr(), err)
		}
		f.logger.Warn("Redis unavailable, falling back to in-memory preference store",
			zap.String("addr", f.redisConfig.Addr()),
			zap.Error(err),
		)
		return NewMemoryStore(time.Minute), nil
	}

	f.logger.Info("Using Redis preference store", zap.String("addr", f.redisConfig.Addr()))
	return NewRedisStore(client, f.prefs.KeyPrefix), nil
}
