package impl

import (
	"context"

	"github.com/jrjohn/academy-cloud-go/internal/domain/dao"
	"github.com/jrjohn/academy-cloud-go/internal/domain/entity"
	"github.com/jrjohn/academy-cloud-go/internal/domain/repository"
)

// notificationRepository implements repository.NotificationRepository by
// delegating to NotificationDAO.
type notificationRepository struct {
	dao dao.NotificationDAO
}

// NewNotificationRepository creates a new NotificationRepository instance.
func NewNotificationRepository(notificationDAO dao.NotificationDAO) repository.NotificationRepository {
	return &notificationRepository{dao: notificationDAO}
}

func (r *notificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	return r.dao.Create(ctx, notification)
}

func (r *notificationRepository) GetByID(ctx context.Context, id uint) (*entity.Notification, error) {
	return r.dao.FindByID(ctx, id)
}

func (r *notificationRepository) List(ctx context.Context) ([]*entity.Notification, error) {
	return r.dao.FindAll(ctx)
}

func (r *notificationRepository) Update(ctx context.Context, notification *entity.Notification) error {
	return r.dao.Update(ctx, notification)
}
