// Package dao defines the data access interfaces implemented by the
// MongoDB layer.
package dao

import (
	"context"

	"github.com/jrjohn/academy-cloud-go/internal/domain/entity"
)

// UserDAO defines database operations on users.
type UserDAO interface {
	// Create inserts a new user, assigning its numeric ID
	Create(ctx context.Context, user *entity.User) error

	// FindByID retrieves a user by numeric ID; nil when absent
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// FindByEmail retrieves a user by email; nil when absent
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// ExistsByEmail checks whether an account uses the given email
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Update rewrites an existing user
	Update(ctx context.Context, user *entity.User) error

	// Delete soft-deletes a user
	Delete(ctx context.Context, id uint) error

	// FindAll retrieves users newest first with pagination
	FindAll(ctx context.Context, page, size int) ([]*entity.User, int64, error)
}
