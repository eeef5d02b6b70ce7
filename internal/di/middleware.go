package di

import (
	"go.uber.org/fx"

	"github.com/jrjohn/academy-cloud-go/internal/cache"
	"github.com/jrjohn/academy-cloud-go/internal/config"
	"github.com/jrjohn/academy-cloud-go/internal/middleware"
	"github.com/jrjohn/academy-cloud-go/internal/security"
)

// MiddlewareModule provides middleware dependencies
var MiddlewareModule = fx.Module("middleware",
	fx.Provide(
		provideAuthMiddleware,
		provideRateLimiter,
	),
)

func provideAuthMiddleware(jwtProvider *security.JWTProvider, sessions *cache.SessionCache) *middleware.AuthMiddleware {
	return middleware.NewAuthMiddleware(jwtProvider, sessions)
}

func provideRateLimiter(cfg *config.RateLimitConfig) *middleware.RateLimiter {
	return middleware.NewRateLimiter(cfg)
}
