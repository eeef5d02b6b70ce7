package impl

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/jrjohn/academy-cloud-go/internal/domain/entity"
	"github.com/jrjohn/academy-cloud-go/internal/testutil/mocks"
	apperrors "github.com/jrjohn/academy-cloud-go/pkg/errors"
)

func TestNotificationService_MarkRead(t *testing.T) {
	repo := mocks.NewMockNotificationRepository()
	svc := NewNotificationService(repo, zap.NewNop())
	ctx := context.Background()

	repo.Create(ctx, &entity.Notification{Title: "New Order", Status: entity.NotificationUnread})
	repo.Create(ctx, &entity.Notification{Title: "New Review Received", Status: entity.NotificationUnread})

	all, err := svc.MarkRead(ctx, 1)
	if err != nil {
		t.Fatalf("MarkRead() error = %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("MarkRead() returned %d notifications, want 2", len(all))
	}

	marked, _ := repo.GetByID(ctx, 1)
	if marked.Status != entity.NotificationRead {
		t.Errorf("Status = %q, want read", marked.Status)
	}
	other, _ := repo.GetByID(ctx, 2)
	if other.Status != entity.NotificationUnread {
		t.Errorf("untouched notification Status = %q", other.Status)
	}
}

func TestNotificationService_MarkRead_Idempotent(t *testing.T) {
	repo := mocks.NewMockNotificationRepository()
	svc := NewNotificationService(repo, zap.NewNop())
	ctx := context.Background()

	repo.Create(ctx, &entity.Notification{Title: "New Order", Status: entity.NotificationUnread})

	if _, err := svc.MarkRead(ctx, 1); err != nil {
		t.Fatalf("MarkRead() error = %v", err)
	}

	// Second call hits the already-read path; no update needed.
	repo.UpdateErr = context.DeadlineExceeded
	if _, err := svc.MarkRead(ctx, 1); err != nil {
		t.Errorf("MarkRead() on read notification error = %v", err)
	}
}

func TestNotificationService_MarkRead_NotFound(t *testing.T) {
	repo := mocks.NewMockNotificationRepository()
	svc := NewNotificationService(repo, zap.NewNop())

	_, err := svc.MarkRead(context.Background(), 404)
	if !apperrors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("MarkRead() error = %v, want not found", err)
	}
}

func TestNotificationService_List(t *testing.T) {
	repo := mocks.NewMockNotificationRepository()
	svc := NewNotificationService(repo, zap.NewNop())
	ctx := context.Background()

	repo.Create(ctx, &entity.Notification{Title: "New Order"})

	all, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 1 {
		t.Errorf("List() = %d notifications, want 1", len(all))
	}
}
