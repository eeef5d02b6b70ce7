package di

import (
	"go.uber.org/fx"

	"github.com/jrjohn/academy-cloud-go/internal/domain/dao"
	"github.com/jrjohn/academy-cloud-go/internal/domain/repository"
	"github.com/jrjohn/academy-cloud-go/internal/domain/repository/impl"
)

// RepositoryModule provides repositories delegating to the DAO layer
var RepositoryModule = fx.Module("repository",
	fx.Provide(
		provideUserRepository,
		provideCourseRepository,
		provideOrderRepository,
		provideNotificationRepository,
	),
)

func provideUserRepository(userDAO dao.UserDAO) repository.UserRepository {
	return impl.NewUserRepository(userDAO)
}

func provideCourseRepository(courseDAO dao.CourseDAO) repository.CourseRepository {
	return impl.NewCourseRepository(courseDAO)
}

func provideOrderRepository(orderDAO dao.OrderDAO) repository.OrderRepository {
	return impl.NewOrderRepository(orderDAO)
}

func provideNotificationRepository(notificationDAO dao.NotificationDAO) repository.NotificationRepository {
	return impl.NewNotificationRepository(notificationDAO)
}
