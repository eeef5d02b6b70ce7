package impl

import (
	"context"

	"github.com/jrjohn/academy-cloud-go/internal/domain/dao"
	"github.com/jrjohn/academy-cloud-go/internal/domain/entity"
	"github.com/jrjohn/academy-cloud-go/internal/domain/repository"
)

// courseRepository implements repository.CourseRepository by delegating to
// CourseDAO.
type courseRepository struct {
	dao dao.CourseDAO
}

// NewCourseRepository creates a new CourseRepository instance.
func NewCourseRepository(courseDAO dao.CourseDAO) repository.CourseRepository {
	return &courseRepository{dao: courseDAO}
}

func (r *courseRepository) Create(ctx context.Context, course *entity.Course) error {
	return r.dao.Create(ctx, course)
}

func (r *courseRepository) GetByID(ctx context.Context, id uint) (*entity.Course, error) {
	return r.dao.FindByID(ctx, id)
}

func (r *courseRepository) GetByIDPublic(ctx context.Context, id uint) (*entity.Course, error) {
	return r.dao.FindByIDPublic(ctx, id)
}

func (r *courseRepository) ListPublic(ctx context.Context) ([]*entity.Course, error) {
	return r.dao.FindAllPublic(ctx)
}

func (r *courseRepository) List(ctx context.Context) ([]*entity.Course, error) {
	return r.dao.FindAll(ctx)
}

func (r *courseRepository) UpdateVersioned(ctx context.Context, course *entity.Course) error {
	return r.dao.UpdateVersioned(ctx, course)
}

func (r *courseRepository) Delete(ctx context.Context, id uint) error {
	return r.dao.Delete(ctx, id)
}
