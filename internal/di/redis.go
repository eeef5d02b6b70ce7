package di

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/jrjohn/academy-cloud-go/internal/cache"
	"github.com/jrjohn/academy-cloud-go/internal/config"
	"github.com/jrjohn/academy-cloud-go/internal/observability"
)

// RedisModule provides the shared redis client
var RedisModule = fx.Module("redis",
	fx.Provide(provideRedisClient),
)

// CacheModule provides the lookaside caches on top of the redis store
var CacheModule = fx.Module("cache",
	fx.Provide(
		provideCacheStore,
		provideSessionCache,
		provideCourseCache,
	),
)

func provideRedisClient(lc fx.Lifecycle, cfg *config.RedisConfig, logger *zap.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Connected to Redis",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
	)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("Closing Redis connection")
			return client.Close()
		},
	})

	return client, nil
}

func provideCacheStore(client *redis.Client, metrics *observability.Metrics) cache.Store {
	return cache.NewInstrumentedStore(cache.NewRedisStore(client), "redis", metrics)
}

func provideSessionCache(store cache.Store, cfg *config.CacheConfig) *cache.SessionCache {
	return cache.NewSessionCache(store, cfg.SessionTTL)
}

func provideCourseCache(store cache.Store, cfg *config.CacheConfig) *cache.CourseCache {
	return cache.NewCourseCache(store, cfg.CourseTTL, cfg.CatalogTTL)
}
