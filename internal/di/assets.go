package di

import (
	"context"

	"go.uber.org/fx"

	"github.com/jrjohn/academy-cloud-go/internal/assets"
	"github.com/jrjohn/academy-cloud-go/internal/config"
)

// AssetsModule provides the S3-backed asset store
var AssetsModule = fx.Module("assets",
	fx.Provide(provideAssetStore),
)

func provideAssetStore(cfg *config.AssetsConfig) (assets.Store, error) {
	return assets.NewS3Store(context.Background(), cfg)
}
