package dao

import (
	"context"

	"github.com/jrjohn/academy-cloud-go/internal/domain/entity"
)

// OrderDAO defines database operations on the purchase ledger.
type OrderDAO interface {
	// Create inserts a new order
	Create(ctx context.Context, order *entity.Order) error

	// ExistsByUserAndCourse reports whether the ledger already holds an
	// order for the (user, course) pair
	ExistsByUserAndCourse(ctx context.Context, userID, courseID uint) (bool, error)

	// FindAll retrieves orders newest first
	FindAll(ctx context.Context) ([]*entity.Order, error)

	// FindByUser retrieves a user's orders newest first
	FindByUser(ctx context.Context, userID uint) ([]*entity.Order, error)
}
