package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jrjohn/academy-cloud-go/internal/domain/dao"
	"github.com/jrjohn/academy-cloud-go/internal/domain/dao/mongo/document"
	"github.com/jrjohn/academy-cloud-go/internal/domain/dao/mongo/mapper"
	"github.com/jrjohn/academy-cloud-go/internal/domain/entity"
)

// notificationDAO implements dao.NotificationDAO using MongoDB.
type notificationDAO struct {
	*baseMongoDAO[entity.Notification, document.NotificationDocument]
	mapper *mapper.NotificationMapper
}

// NewNotificationDAO creates a new MongoDB-based NotificationDAO.
func NewNotificationDAO(db *mongo.Database, idCounter *IDCounter) dao.NotificationDAO {
	return &notificationDAO{
		baseMongoDAO: newBaseMongoDAO[entity.Notification, document.NotificationDocument](
			db,
			document.NotificationDocument{}.CollectionName(),
			idCounter,
		),
		mapper: mapper.NewNotificationMapper(),
	}
}

// Create inserts a new notification.
func (d *notificationDAO) Create(ctx context.Context, notification *entity.Notification) error {
	id, err := d.nextID(ctx)
	if err != nil {
		return err
	}
	notification.ID = id
	notification.CreatedAt = time.Now()
	notification.UpdatedAt = time.Now()

	return d.insertOne(ctx, d.mapper.ToDocument(notification))
}

// FindByID retrieves a notification by numeric ID.
func (d *notificationDAO) FindByID(ctx context.Context, id uint) (*entity.Notification, error) {
	var doc document.NotificationDocument
	err := d.findOneByFilter(ctx, bson.M{"numeric_id": id}, nil, &doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return d.mapper.ToEntity(&doc), nil
}

// FindAll retrieves notifications newest first.
func (d *notificationDAO) FindAll(ctx context.Context) ([]*entity.Notification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var docs []*document.NotificationDocument
	if err := d.findManyByFilter(ctx, bson.M{}, opts, &docs); err != nil {
		return nil, err
	}
	return d.mapper.ToEntities(docs), nil
}

// Update rewrites a notification.
func (d *notificationDAO) Update(ctx context.Context, notification *entity.Notification) error {
	notification.UpdatedAt = time.Now()
	doc := d.mapper.ToDocument(notification)

	filter := bson.M{"numeric_id": notification.ID}
	_, err := d.updateOne(ctx, filter, bson.M{"$set": doc})
	return err
}
