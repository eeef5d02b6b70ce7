package service

import (
	"context"

	"github.com/jrjohn/academy-cloud-go/internal/domain/entity"
	"github.com/jrjohn/academy-cloud-go/internal/dto/request"
)

// OrderService defines the interface for purchase operations
type OrderService interface {
	// Create purchases a course for the user. The orders ledger is the
	// authoritative duplicate-purchase guard.
	Create(ctx context.Context, user *entity.User, req *request.CreateOrderRequest) (*entity.Order, error)

	// List returns all orders, newest first (admin only)
	List(ctx context.Context) ([]*entity.Order, error)

	// ListByUser returns the user's own orders, newest first
	ListByUser(ctx context.Context, userID uint) ([]*entity.Order, error)
}
