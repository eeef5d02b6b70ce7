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

// orderDAO implements dao.OrderDAO using MongoDB.
type orderDAO struct {
	*baseMongoDAO[entity.Order, document.OrderDocument]
	mapper *mapper.OrderMapper
}

// NewOrderDAO creates a new MongoDB-based OrderDAO.
func NewOrderDAO(db *mongo.Database, idCounter *IDCounter) dao.OrderDAO {
	return &orderDAO{
		baseMongoDAO: newBaseMongoDAO[entity.Order, document.OrderDocument](
			db,
			document.OrderDocument{}.CollectionName(),
			idCounter,
		),
		mapper: mapper.NewOrderMapper(),
	}
}

// Create inserts a new order.
func (d *orderDAO) Create(ctx context.Context, order *entity.Order) error {
	id, err := d.nextID(ctx)
	if err != nil {
		return err
	}
	order.ID = id
	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()

	return d.insertOne(ctx, d.mapper.ToDocument(order))
}

// ExistsByUserAndCourse reports whether the ledger already holds an order
// for the (user, course) pair.
func (d *orderDAO) ExistsByUserAndCourse(ctx context.Context, userID, courseID uint) (bool, error) {
	return d.existsBy(ctx, bson.M{"user_id": userID, "course_id": courseID})
}

// FindAll retrieves orders newest first.
func (d *orderDAO) FindAll(ctx context.Context) ([]*entity.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var docs []*document.OrderDocument
	if err := d.findManyByFilter(ctx, bson.M{}, opts, &docs); err != nil {
		return nil, err
	}
	return d.mapper.ToEntities(docs), nil
}

// FindByUser retrieves a user's orders newest first.
func (d *orderDAO) FindByUser(ctx context.Context, userID uint) ([]*entity.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var docs []*document.OrderDocument
	if err := d.findManyByFilter(ctx, bson.M{"user_id": userID}, opts, &docs); err != nil {
		return nil, err
	}
	return d.mapper.ToEntities(docs), nil
}
