package di

import (
	"go.uber.org/fx"

	"github.com/jrjohn/academy-cloud-go/internal/config"
	"github.com/jrjohn/academy-cloud-go/internal/security"
)

// SecurityModule provides token and password primitives
var SecurityModule = fx.Module("security",
	fx.Provide(
		provideJWTProvider,
		security.NewPasswordHasher,
	),
)

func provideJWTProvider(cfg *config.JWTConfig) *security.JWTProvider {
	return security.NewJWTProvider(cfg)
}
