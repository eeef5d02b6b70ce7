package dao

import (
	"context"
	"errors"

	"github.com/jrjohn/academy-cloud-go/internal/domain/entity"
)

// ErrVersionConflict is returned by UpdateVersioned when the aggregate was
// rewritten by a concurrent writer since it was loaded. Callers reload and
// reapply their mutation.
var ErrVersionConflict = errors.New("aggregate version conflict")

// CourseDAO defines database operations on course aggregates.
type CourseDAO interface {
	// Create inserts a new course at version 1
	Create(ctx context.Context, course *entity.Course) error

	// FindByID retrieves the full aggregate; nil when absent
	FindByID(ctx context.Context, id uint) (*entity.Course, error)

	// FindByIDPublic retrieves a course with the catalog projection: video
	// URLs, suggestions, question threads and links are excluded
	FindByIDPublic(ctx context.Context, id uint) (*entity.Course, error)

	// FindAllPublic retrieves the catalog view of every course
	FindAllPublic(ctx context.Context) ([]*entity.Course, error)

	// FindAll retrieves full aggregates newest first (admin view)
	FindAll(ctx context.Context) ([]*entity.Course, error)

	// UpdateVersioned rewrites the aggregate conditional on the version it
	// was loaded at and increments the version. ErrVersionConflict when a
	// concurrent rewrite won.
	UpdateVersioned(ctx context.Context, course *entity.Course) error

	// Delete soft-deletes a course
	Delete(ctx context.Context, id uint) error
}
