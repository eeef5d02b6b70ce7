// Package di wires the application together with uber/fx modules.
package di

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/jrjohn/academy-cloud-go/internal/config"
)

// AppModule aggregates all modules of the API server.
var AppModule = fx.Options(
	ConfigModule,
	LoggerModule,
	ObservabilityModule,
	DatabaseModule,
	RedisModule,
	CacheModule,
	DAOModule,
	RepositoryModule,
	SecurityModule,
	MailModule,
	AssetsModule,
	OutboxModule,
	WSModule,
	ServiceModule,
	MiddlewareModule,
	ControllerModule,
	HTTPServerModule,
)

// PrintBanner prints the application startup banner
func PrintBanner(cfg *config.Config, logger *zap.Logger) {
	logger.Info("===========================================")
	logger.Info("     Academy Cloud - Learning Platform     ")
	logger.Info("===========================================")
	logger.Info("Application Info",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)
	logger.Info("===========================================")
}
