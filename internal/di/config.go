package di

import (
	"go.uber.org/fx"

	"github.com/jrjohn/academy-cloud-go/internal/config"
)

// ConfigModule provides configuration dependencies
var ConfigModule = fx.Module("config",
	fx.Provide(
		config.Load,
		provideAppConfig,
		provideServerConfig,
		provideDatabaseConfig,
		provideRedisConfig,
		provideJWTConfig,
		provideCacheConfig,
		provideMailConfig,
		provideAssetsConfig,
		provideOutboxConfig,
		provideObservabilityConfig,
		provideRateLimitConfig,
	),
)

func provideAppConfig(cfg *config.Config) *config.AppConfig {
	return &cfg.App
}

func provideServerConfig(cfg *config.Config) *config.ServerConfig {
	return &cfg.Server
}

func provideDatabaseConfig(cfg *config.Config) *config.DatabaseConfig {
	return &cfg.Database
}

func provideRedisConfig(cfg *config.Config) *config.RedisConfig {
	return &cfg.Redis
}

func provideJWTConfig(cfg *config.Config) *config.JWTConfig {
	return &cfg.JWT
}

func provideCacheConfig(cfg *config.Config) *config.CacheConfig {
	return &cfg.Cache
}

func provideMailConfig(cfg *config.Config) *config.MailConfig {
	return &cfg.Mail
}

func provideAssetsConfig(cfg *config.Config) *config.AssetsConfig {
	return &cfg.Assets
}

func provideOutboxConfig(cfg *config.Config) *config.OutboxConfig {
	return &cfg.Outbox
}

func provideObservabilityConfig(cfg *config.Config) *config.ObservabilityConfig {
	return &cfg.Observability
}

func provideRateLimitConfig(cfg *config.Config) *config.RateLimitConfig {
	return &cfg.RateLimit
}
