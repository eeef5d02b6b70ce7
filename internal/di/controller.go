package di

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/jrjohn/academy-cloud-go/internal/config"
	httpctrl "github.com/jrjohn/academy-cloud-go/internal/controller/http"
	"github.com/jrjohn/academy-cloud-go/internal/domain/service"
	"github.com/jrjohn/academy-cloud-go/internal/middleware"
	"github.com/jrjohn/academy-cloud-go/internal/security"
	"github.com/jrjohn/academy-cloud-go/internal/ws"
)

// ControllerModule provides HTTP controller dependencies
var ControllerModule = fx.Module("controller",
	fx.Provide(
		provideAuthController,
		provideUserController,
		provideCourseController,
		provideOrderController,
		provideNotificationController,
	),
)

func provideAuthController(
	authService service.AuthService,
	jwtProvider *security.JWTProvider,
	serverCfg *config.ServerConfig,
	authMw *middleware.AuthMiddleware,
) *httpctrl.AuthController {
	return httpctrl.NewAuthController(authService, jwtProvider, serverCfg, authMw)
}

func provideUserController(
	userService service.UserService,
	authMw *middleware.AuthMiddleware,
) *httpctrl.UserController {
	return httpctrl.NewUserController(userService, authMw)
}

func provideCourseController(
	courseService service.CourseService,
	authMw *middleware.AuthMiddleware,
) *httpctrl.CourseController {
	return httpctrl.NewCourseController(courseService, authMw)
}

func provideOrderController(
	orderService service.OrderService,
	authMw *middleware.AuthMiddleware,
) *httpctrl.OrderController {
	return httpctrl.NewOrderController(orderService, authMw)
}

func provideNotificationController(
	notificationService service.NotificationService,
	hub *ws.Hub,
	authMw *middleware.AuthMiddleware,
	logger *zap.Logger,
) *httpctrl.NotificationController {
	return httpctrl.NewNotificationController(notificationService, hub, authMw, logger)
}
