// Package repository defines the data access interfaces consumed by the
// service layer.
package repository

import (
	"context"

	"github.com/jrjohn/academy-cloud-go/internal/domain/entity"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *entity.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id uint) (*entity.User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*entity.User, error)

	// ExistsByEmail checks if an email is taken
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Update updates an existing user
	Update(ctx context.Context, user *entity.User) error

	// Delete soft-deletes a user by ID
	Delete(ctx context.Context, id uint) error

	// List retrieves users newest first with pagination
	List(ctx context.Context, page, size int) ([]*entity.User, int64, error)
}
