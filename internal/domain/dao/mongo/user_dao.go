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

// userDAO implements dao.UserDAO using MongoDB.
type userDAO struct {
	*baseMongoDAO[entity.User, document.UserDocument]
	mapper *mapper.UserMapper
}

// NewUserDAO creates a new MongoDB-based UserDAO.
func NewUserDAO(db *mongo.Database, idCounter *IDCounter) dao.UserDAO {
	return &userDAO{
		baseMongoDAO: newBaseMongoDAO[entity.User, document.UserDocument](
			db,
			document.UserDocument{}.CollectionName(),
			idCounter,
		),
		mapper: mapper.NewUserMapper(),
	}
}

// Create inserts a new user and assigns its numeric ID.
func (d *userDAO) Create(ctx context.Context, user *entity.User) error {
	id, err := d.nextID(ctx)
	if err != nil {
		return err
	}
	user.ID = id
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	return d.insertOne(ctx, d.mapper.ToDocument(user))
}

// FindByID retrieves a user by their numeric ID.
func (d *userDAO) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	filter := withNotDeleted(bson.M{"numeric_id": id})

	var doc document.UserDocument
	err := d.findOneByFilter(ctx, filter, nil, &doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return d.mapper.ToEntity(&doc), nil
}

// FindByEmail retrieves a user by their email.
func (d *userDAO) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	filter := withNotDeleted(bson.M{"email": email})

	var doc document.UserDocument
	err := d.findOneByFilter(ctx, filter, nil, &doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return d.mapper.ToEntity(&doc), nil
}

// ExistsByEmail checks whether an account uses the given email.
func (d *userDAO) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return d.existsBy(ctx, withNotDeleted(bson.M{"email": email}))
}

// Update rewrites an existing user.
func (d *userDAO) Update(ctx context.Context, user *entity.User) error {
	user.UpdatedAt = time.Now()
	doc := d.mapper.ToDocument(user)

	filter := bson.M{"numeric_id": user.ID}
	_, err := d.updateOne(ctx, filter, bson.M{"$set": doc})
	return err
}

// Delete performs a soft delete on a user.
func (d *userDAO) Delete(ctx context.Context, id uint) error {
	now := time.Now()
	filter := bson.M{"numeric_id": id}
	_, err := d.updateOne(ctx, filter, bson.M{"$set": bson.M{"deleted_at": now}})
	return err
}

// FindAll retrieves users newest first with pagination.
func (d *userDAO) FindAll(ctx context.Context, page, size int) ([]*entity.User, int64, error) {
	filter := notDeletedFilter()

	total, err := d.count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	skip := int64((page - 1) * size)
	opts := options.Find().
		SetSkip(skip).
		SetLimit(int64(size)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	var docs []*document.UserDocument
	if err := d.findManyByFilter(ctx, filter, opts, &docs); err != nil {
		return nil, 0, err
	}

	return d.mapper.ToEntities(docs), total, nil
}
