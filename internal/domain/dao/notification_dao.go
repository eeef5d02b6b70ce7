package dao

import (
	"context"

	"github.com/jrjohn/academy-cloud-go/internal/domain/entity"
)

// NotificationDAO defines database operations on notifications.
type NotificationDAO interface {
	// Create inserts a new notification
	Create(ctx context.Context, notification *entity.Notification) error

	// FindByID retrieves a notification; nil when absent
	FindByID(ctx context.Context, id uint) (*entity.Notification, error)

	// FindAll retrieves notifications newest first
	FindAll(ctx context.Context) ([]*entity.Notification, error)

	// Update rewrites a notification (status transitions only)
	Update(ctx context.Context, notification *entity.Notification) error
}
