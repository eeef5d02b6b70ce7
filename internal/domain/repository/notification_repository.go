package repository

import (
	"context"

	"github.com/jrjohn/academy-cloud-go/internal/domain/entity"
)

// NotificationRepository defines the interface for notification records
type NotificationRepository interface {
	// Create creates a new notification
	Create(ctx context.Context, notification *entity.Notification) error

	// GetByID retrieves a notification by ID
	GetByID(ctx context.Context, id uint) (*entity.Notification, error)

	// List retrieves notifications newest first
	List(ctx context.Context) ([]*entity.Notification, error)

	// Update persists a status transition
	Update(ctx context.Context, notification *entity.Notification) error
}
