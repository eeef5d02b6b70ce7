package service

import (
	"context"

	"github.com/jrjohn/academy-cloud-go/internal/domain/entity"
)

// NotificationService defines the interface for admin notifications
type NotificationService interface {
	// List returns all notifications, newest first (admin only)
	List(ctx context.Context) ([]*entity.Notification, error)

	// MarkRead flips a notification to read and returns the refreshed
	// list. Marking an already-read notification is a no-op.
	MarkRead(ctx context.Context, notificationID uint) ([]*entity.Notification, error)
}
