package repository

import (
	"context"

	"github.com/jrjohn/academy-cloud-go/internal/domain/entity"
)

// OrderRepository defines the interface for the purchase ledger
type OrderRepository interface {
	// Create creates a new order
	Create(ctx context.Context, order *entity.Order) error

	// ExistsByUserAndCourse is the authoritative already-purchased check
	ExistsByUserAndCourse(ctx context.Context, userID, courseID uint) (bool, error)

	// List retrieves orders newest first
	List(ctx context.Context) ([]*entity.Order, error)

	// ListByUser retrieves a user's orders newest first
	ListByUser(ctx context.Context, userID uint) ([]*entity.Order, error)
}
