package repository

import (
	"context"

	"github.com/jrjohn/academy-cloud-go/internal/domain/entity"
)

// CourseRepository defines the interface for course aggregate operations
type CourseRepository interface {
	// Create creates a new course
	Create(ctx context.Context, course *entity.Course) error

	// GetByID retrieves the full aggregate
	GetByID(ctx context.Context, id uint) (*entity.Course, error)

	// GetByIDPublic retrieves a course with the catalog projection
	GetByIDPublic(ctx context.Context, id uint) (*entity.Course, error)

	// ListPublic retrieves the catalog view of every course
	ListPublic(ctx context.Context) ([]*entity.Course, error)

	// List retrieves full aggregates newest first
	List(ctx context.Context) ([]*entity.Course, error)

	// UpdateVersioned conditionally rewrites the aggregate; returns
	// dao.ErrVersionConflict on concurrent modification
	UpdateVersioned(ctx context.Context, course *entity.Course) error

	// Delete soft-deletes a course by ID
	Delete(ctx context.Context, id uint) error
}
