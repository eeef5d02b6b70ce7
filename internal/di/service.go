package di

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/jrjohn/academy-cloud-go/internal/assets"
	"github.com/jrjohn/academy-cloud-go/internal/cache"
	"github.com/jrjohn/academy-cloud-go/internal/domain/repository"
	"github.com/jrjohn/academy-cloud-go/internal/domain/service"
	serviceimpl "github.com/jrjohn/academy-cloud-go/internal/domain/service/impl"
	"github.com/jrjohn/academy-cloud-go/internal/mail"
	"github.com/jrjohn/academy-cloud-go/internal/outbox"
	"github.com/jrjohn/academy-cloud-go/internal/security"
	"github.com/jrjohn/academy-cloud-go/internal/ws"
)

// ServiceModule provides the service layer
var ServiceModule = fx.Module("service",
	fx.Provide(
		provideAuthService,
		provideUserService,
		provideCourseService,
		provideOrderService,
		provideNotificationService,
	),
)

func provideAuthService(
	userRepo repository.UserRepository,
	jwtProvider *security.JWTProvider,
	passwordHasher security.PasswordHasher,
	sessions *cache.SessionCache,
	mailer mail.Mailer,
	logger *zap.Logger,
) service.AuthService {
	return serviceimpl.NewAuthService(userRepo, jwtProvider, passwordHasher, sessions, mailer, logger)
}

func provideUserService(
	userRepo repository.UserRepository,
	passwordHasher security.PasswordHasher,
	sessions *cache.SessionCache,
	assetStore assets.Store,
	logger *zap.Logger,
) service.UserService {
	return serviceimpl.NewUserService(userRepo, passwordHasher, sessions, assetStore, logger)
}

func provideCourseService(
	courseRepo repository.CourseRepository,
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	notificationRepo repository.NotificationRepository,
	courseCache *cache.CourseCache,
	assetStore assets.Store,
	publisher *outbox.Publisher,
	hub *ws.Hub,
	logger *zap.Logger,
) service.CourseService {
	return serviceimpl.NewCourseService(
		courseRepo, orderRepo, userRepo, notificationRepo,
		courseCache, assetStore, publisher, hub, logger,
	)
}

func provideOrderService(
	orderRepo repository.OrderRepository,
	courseRepo repository.CourseRepository,
	userRepo repository.UserRepository,
	notificationRepo repository.NotificationRepository,
	courseCache *cache.CourseCache,
	sessions *cache.SessionCache,
	publisher *outbox.Publisher,
	hub *ws.Hub,
	logger *zap.Logger,
) service.OrderService {
	return serviceimpl.NewOrderService(
		orderRepo, courseRepo, userRepo, notificationRepo,
		courseCache, sessions, publisher, hub, logger,
	)
}

func provideNotificationService(
	notificationRepo repository.NotificationRepository,
	logger *zap.Logger,
) service.NotificationService {
	return serviceimpl.NewNotificationService(notificationRepo, logger)
}
