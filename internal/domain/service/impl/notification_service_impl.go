package impl

import (
	"context"

	"go.uber.org/zap"

	"github.com/jrjohn/academy-cloud-go/internal/domain/entity"
	"github.com/jrjohn/academy-cloud-go/internal/domain/repository"
	"github.com/jrjohn/academy-cloud-go/internal/domain/service"
	apperrors "github.com/jrjohn/academy-cloud-go/pkg/errors"
)

// notificationService implements service.NotificationService
type notificationService struct {
	notificationRepo repository.NotificationRepository
	logger           *zap.Logger
}

// NewNotificationService creates a new NotificationService instance
func NewNotificationService(notificationRepo repository.NotificationRepository, logger *zap.Logger) service.NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

func (s *notificationService) List(ctx context.Context) ([]*entity.Notification, error) {
	notifications, err := s.notificationRepo.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return notifications, nil
}

func (s *notificationService) MarkRead(ctx context.Context, notificationID uint) ([]*entity.Notification, error) {
	notification, err := s.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if notification == nil {
		return nil, apperrors.NotFound("notification not found")
	}

	// Already-read notifications stay read; the transition only ever goes
	// unread to read.
	if notification.MarkRead() {
		if err := s.notificationRepo.Update(ctx, notification); err != nil {
			return nil, apperrors.Internal(err)
		}
	}

	return s.List(ctx)
}
