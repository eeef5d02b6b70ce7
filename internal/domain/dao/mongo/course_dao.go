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

// publicProjection excludes the paid content fields from catalog reads so
// unauthenticated readers never see video URLs, suggestions, question
// threads or lecture links.
func publicProjection() bson.M {
	return bson.M{
		"course_data.video_url":   0,
		"course_data.suggestions": 0,
		"course_data.questions":   0,
		"course_data.links":       0,
	}
}

// courseDAO implements dao.CourseDAO using MongoDB.
type courseDAO struct {
	*baseMongoDAO[entity.Course, document.CourseDocument]
	mapper *mapper.CourseMapper
}

// NewCourseDAO creates a new MongoDB-based CourseDAO.
func NewCourseDAO(db *mongo.Database, idCounter *IDCounter) dao.CourseDAO {
	return &courseDAO{
		baseMongoDAO: newBaseMongoDAO[entity.Course, document.CourseDocument](
			db,
			document.CourseDocument{}.CollectionName(),
			idCounter,
		),
		mapper: mapper.NewCourseMapper(),
	}
}

// Create inserts a new course at version 1.
func (d *courseDAO) Create(ctx context.Context, course *entity.Course) error {
	id, err := d.nextID(ctx)
	if err != nil {
		return err
	}
	course.ID = id
	course.Version = 1
	course.CreatedAt = time.Now()
	course.UpdatedAt = time.Now()

	return d.insertOne(ctx, d.mapper.ToDocument(course))
}

// FindByID retrieves the full course aggregate.
func (d *courseDAO) FindByID(ctx context.Context, id uint) (*entity.Course, error) {
	filter := withNotDeleted(bson.M{"numeric_id": id})

	var doc document.CourseDocument
	err := d.findOneByFilter(ctx, filter, nil, &doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return d.mapper.ToEntity(&doc), nil
}

// FindByIDPublic retrieves a course with the catalog projection applied.
func (d *courseDAO) FindByIDPublic(ctx context.Context, id uint) (*entity.Course, error) {
	filter := withNotDeleted(bson.M{"numeric_id": id})
	opts := options.FindOne().SetProjection(publicProjection())

	var doc document.CourseDocument
	err := d.findOneByFilter(ctx, filter, opts, &doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return d.mapper.ToEntity(&doc), nil
}

// FindAllPublic retrieves the catalog view of every course.
func (d *courseDAO) FindAllPublic(ctx context.Context) ([]*entity.Course, error) {
	opts := options.Find().
		SetProjection(publicProjection()).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	var docs []*document.CourseDocument
	if err := d.findManyByFilter(ctx, notDeletedFilter(), opts, &docs); err != nil {
		return nil, err
	}
	return d.mapper.ToEntities(docs), nil
}

// FindAll retrieves full aggregates newest first.
func (d *courseDAO) FindAll(ctx context.Context) ([]*entity.Course, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var docs []*document.CourseDocument
	if err := d.findManyByFilter(ctx, notDeletedFilter(), opts, &docs); err != nil {
		return nil, err
	}
	return d.mapper.ToEntities(docs), nil
}

// UpdateVersioned rewrites the aggregate conditional on the version it was
// loaded at. The filter matches id+version and the update increments the
// version, so a concurrent rewrite makes this a no-match and the caller
// gets ErrVersionConflict to reload and retry.
func (d *courseDAO) UpdateVersioned(ctx context.Context, course *entity.Course) error {
	loadedVersion := course.Version
	course.UpdatedAt = time.Now()
	course.Version = loadedVersion + 1

	doc := d.mapper.ToDocument(course)

	filter := bson.M{"numeric_id": course.ID, "version": loadedVersion}
	matched, err := d.updateOne(ctx, filter, bson.M{"$set": doc})
	if err != nil {
		course.Version = loadedVersion
		return err
	}
	if matched == 0 {
		course.Version = loadedVersion
		return dao.ErrVersionConflict
	}
	return nil
}

// Delete performs a soft delete on a course.
func (d *courseDAO) Delete(ctx context.Context, id uint) error {
	now := time.Now()
	filter := bson.M{"numeric_id": id}
	_, err := d.updateOne(ctx, filter, bson.M{"$set": bson.M{"deleted_at": now}})
	return err
}
