package di

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/jrjohn/academy-cloud-go/internal/config"
	httpctrl "github.com/jrjohn/academy-cloud-go/internal/controller/http"
	"github.com/jrjohn/academy-cloud-go/internal/middleware"
	"github.com/jrjohn/academy-cloud-go/internal/observability"
)

// HTTPServerModule provides the gin engine and the HTTP server lifecycle
var HTTPServerModule = fx.Module("http_server",
	fx.Provide(
		provideGinEngine,
		provideHTTPServer,
	),
	fx.Invoke(registerHTTPRoutes),
	fx.Invoke(startHTTPServer),
)

func provideGinEngine(cfg *config.AppConfig, metrics *observability.Metrics, logger *zap.Logger) *gin.Engine {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	router.Use(middleware.Metrics(metrics))

	return router
}

func provideHTTPServer(cfg *config.ServerConfig, router *gin.Engine) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}

// Controllers holds all HTTP controllers for fx to inject
type Controllers struct {
	fx.In

	Auth         *httpctrl.AuthController
	User         *httpctrl.UserController
	Course       *httpctrl.CourseController
	Order        *httpctrl.OrderController
	Notification *httpctrl.NotificationController
}

func registerHTTPRoutes(
	router *gin.Engine,
	controllers Controllers,
	limiter *middleware.RateLimiter,
	metrics *observability.Metrics,
) {
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := router.Group("/api/v1")

	// Credential endpoints sit behind the per-IP limiter.
	authAPI := api.Group("", limiter.Handle())
	controllers.Auth.RegisterRoutes(authAPI)

	controllers.User.RegisterRoutes(api)
	controllers.Course.RegisterRoutes(api)
	controllers.Order.RegisterRoutes(api)
	controllers.Notification.RegisterRoutes(api)

	controllers.Notification.RegisterWebsocket(router)
}

func startHTTPServer(lc fx.Lifecycle, server *http.Server, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("Starting HTTP server", zap.String("address", server.Addr))
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping HTTP server")
			return server.Shutdown(ctx)
		},
	})
}
