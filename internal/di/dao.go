package di

import (
	"go.uber.org/fx"

	"github.com/jrjohn/academy-cloud-go/internal/domain/dao"
	mongodao "github.com/jrjohn/academy-cloud-go/internal/domain/dao/mongo"
)

// DAOModule provides the MongoDB DAO layer
var DAOModule = fx.Module("dao",
	fx.Provide(
		provideIDCounter,
		provideUserDAO,
		provideCourseDAO,
		provideOrderDAO,
		provideNotificationDAO,
	),
)

func provideIDCounter(mongoDB *MongoDatabase) *mongodao.IDCounter {
	return mongodao.NewIDCounter(mongoDB.DB)
}

func provideUserDAO(mongoDB *MongoDatabase, idCounter *mongodao.IDCounter) dao.UserDAO {
	return mongodao.NewUserDAO(mongoDB.DB, idCounter)
}

func provideCourseDAO(mongoDB *MongoDatabase, idCounter *mongodao.IDCounter) dao.CourseDAO {
	return mongodao.NewCourseDAO(mongoDB.DB, idCounter)
}

func provideOrderDAO(mongoDB *MongoDatabase, idCounter *mongodao.IDCounter) dao.OrderDAO {
	return mongodao.NewOrderDAO(mongoDB.DB, idCounter)
}

func provideNotificationDAO(mongoDB *MongoDatabase, idCounter *mongodao.IDCounter) dao.NotificationDAO {
	return mongodao.NewNotificationDAO(mongoDB.DB, idCounter)
}
