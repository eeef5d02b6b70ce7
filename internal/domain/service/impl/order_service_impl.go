package impl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jrjohn/academy-cloud-go/internal/cache"
	"github.com/jrjohn/academy-cloud-go/internal/domain/dao"
	"github.com/jrjohn/academy-cloud-go/internal/domain/entity"
	"github.com/jrjohn/academy-cloud-go/internal/domain/repository"
	"github.com/jrjohn/academy-cloud-go/internal/domain/service"
	"github.com/jrjohn/academy-cloud-go/internal/dto/request"
	"github.com/jrjohn/academy-cloud-go/internal/outbox"
	"github.com/jrjohn/academy-cloud-go/internal/resilience"
	"github.com/jrjohn/academy-cloud-go/internal/ws"
	apperrors "github.com/jrjohn/academy-cloud-go/pkg/errors"
)

// orderService implements service.OrderService
type orderService struct {
	orderRepo        repository.OrderRepository
	courseRepo       repository.CourseRepository
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
	courseCache      *cache.CourseCache
	sessions         *cache.SessionCache
	publisher        *outbox.Publisher
	hub              *ws.Hub
	logger           *zap.Logger
}

// NewOrderService creates a new OrderService instance
func NewOrderService(
	orderRepo repository.OrderRepository,
	courseRepo repository.CourseRepository,
	userRepo repository.UserRepository,
	notificationRepo repository.NotificationRepository,
	courseCache *cache.CourseCache,
	sessions *cache.SessionCache,
	publisher *outbox.Publisher,
	hub *ws.Hub,
	logger *zap.Logger,
) service.OrderService {
	return &orderService{
		orderRepo:        orderRepo,
		courseRepo:       courseRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		courseCache:      courseCache,
		sessions:         sessions,
		publisher:        publisher,
		hub:              hub,
		logger:           logger,
	}
}

// Create runs the purchase flow. The orders ledger is the single source of
// truth for ownership: the duplicate guard consults it, never the user's
// denormalized course list. Everything after the ledger insert is a
// derived effect and must not fail the purchase.
func (s *orderService) Create(ctx context.Context, user *entity.User, req *request.CreateOrderRequest) (*entity.Order, error) {
	course, err := s.courseRepo.GetByID(ctx, req.CourseID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if course == nil {
		return nil, apperrors.NotFound("course not found")
	}

	purchased, err := s.orderRepo.ExistsByUserAndCourse(ctx, user.ID, req.CourseID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if purchased {
		return nil, apperrors.Validation("course already purchased")
	}

	order := &entity.Order{
		UserID:   user.ID,
		CourseID: req.CourseID,
		Payment: entity.PaymentInfo{
			ProviderID: req.Payment.ProviderID,
			Method:     req.Payment.Method,
			Status:     req.Payment.Status,
		},
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, apperrors.Internal(err)
	}

	// Ledger entry exists; the purchase is committed. The steps below
	// update derived views and side effects.
	s.updatePurchaserView(ctx, user, req.CourseID)
	s.bumpPurchaseCount(ctx, req.CourseID)
	s.notifyPurchase(ctx, user, course)
	s.mailConfirmation(ctx, user, course, order)

	s.logger.Info("order created",
		zap.Uint("order_id", order.ID),
		zap.Uint("user_id", user.ID),
		zap.Uint("course_id", req.CourseID))
	return order, nil
}

func (s *orderService) List(ctx context.Context) ([]*entity.Order, error) {
	orders, err := s.orderRepo.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return orders, nil
}

func (s *orderService) ListByUser(ctx context.Context, userID uint) ([]*entity.Order, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return orders, nil
}

// updatePurchaserView appends the course to the user's denormalized list
// and refreshes the session cache.
func (s *orderService) updatePurchaserView(ctx context.Context, user *entity.User, courseID uint) {
	user.AddCourse(courseID)
	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("failed to update purchaser course list",
			zap.Uint("user_id", user.ID),
			zap.Uint("course_id", courseID),
			zap.Error(err))
		return
	}
	if err := s.sessions.Put(ctx, user); err != nil {
		s.logger.Warn("failed to refresh purchaser session", zap.Uint("user_id", user.ID), zap.Error(err))
	}
}

// bumpPurchaseCount increments the denormalized purchase counter under the
// version token and drops the cached course views.
func (s *orderService) bumpPurchaseCount(ctx context.Context, courseID uint) {
	err := resilience.RetryConflicts(ctx, maxWriteAttempts,
		func(err error) bool { return errors.Is(err, dao.ErrVersionConflict) },
		func(ctx context.Context) error {
			course, err := s.courseRepo.GetByID(ctx, courseID)
			if err != nil {
				return err
			}
			if course == nil {
				return apperrors.NotFound("course not found")
			}
			course.Purchased++
			return s.courseRepo.UpdateVersioned(ctx, course)
		})
	if err != nil {
		s.logger.Error("failed to bump purchase count", zap.Uint("course_id", courseID), zap.Error(err))
		return
	}
	if err := s.courseCache.Invalidate(ctx, courseID); err != nil {
		s.logger.Warn("course cache invalidation failed", zap.Uint("course_id", courseID), zap.Error(err))
	}
}

func (s *orderService) notifyPurchase(ctx context.Context, user *entity.User, course *entity.Course) {
	notification := &entity.Notification{
		UserID:  user.ID,
		Title:   "New Order",
		Message: fmt.Sprintf("%s purchased %s", user.Name, course.Name),
		Status:  entity.NotificationUnread,
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		s.logger.Error("failed to create order notification", zap.Uint("user_id", user.ID), zap.Error(err))
		return
	}
	s.hub.Publish(ws.NewEvent("notification", notification.Title, notification.Message))
}

func (s *orderService) mailConfirmation(ctx context.Context, user *entity.User, course *entity.Course, order *entity.Order) {
	s.publisher.PublishMail(ctx, outbox.EffectMailOrderConfirmation, outbox.MailPayload{
		To:      user.Email,
		Subject: "Order confirmation",
		Data: map[string]any{
			"Name":       user.Name,
			"CourseName": course.Name,
			"OrderID":    order.ID,
			"Price":      course.Price,
			"Date":       time.Now().Format("January 2, 2006"),
		},
	})
}
