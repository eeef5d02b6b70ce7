package di

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/jrjohn/academy-cloud-go/internal/config"
	"github.com/jrjohn/academy-cloud-go/internal/observability"
)

// ObservabilityModule provides metrics and tracing
var ObservabilityModule = fx.Module("observability",
	fx.Provide(
		observability.NewMetrics,
		provideTracing,
	),
)

func provideTracing(lc fx.Lifecycle, cfg *config.ObservabilityConfig, logger *zap.Logger) (*observability.Tracing, error) {
	tracing, err := observability.NewTracing(context.Background(), cfg, logger)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return tracing.Shutdown(ctx)
		},
	})

	return tracing, nil
}
