package impl

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/jrjohn/academy-cloud-go/internal/cache"
	"github.com/jrjohn/academy-cloud-go/internal/config"
	"github.com/jrjohn/academy-cloud-go/internal/domain/entity"
	"github.com/jrjohn/academy-cloud-go/internal/domain/service"
	"github.com/jrjohn/academy-cloud-go/internal/dto/request"
	"github.com/jrjohn/academy-cloud-go/internal/outbox"
	"github.com/jrjohn/academy-cloud-go/internal/testutil/mocks"
	"github.com/jrjohn/academy-cloud-go/internal/ws"
	apperrors "github.com/jrjohn/academy-cloud-go/pkg/errors"
)

type orderFixture struct {
	service    service.OrderService
	orderRepo  *mocks.MockOrderRepository
	courseRepo *mocks.MockCourseRepository
	userRepo   *mocks.MockUserRepository
	noteRepo   *mocks.MockNotificationRepository
	store      *mocks.MockStore
	sessions   *cache.SessionCache
	queue      *mocks.MockQueue
}

func setupOrderService(t *testing.T) *orderFixture {
	t.Helper()

	f := &orderFixture{
		orderRepo:  mocks.NewMockOrderRepository(),
		courseRepo: mocks.NewMockCourseRepository(),
		userRepo:   mocks.NewMockUserRepository(),
		noteRepo:   mocks.NewMockNotificationRepository(),
		store:      mocks.NewMockStore(),
		queue:      mocks.NewMockQueue(),
	}
	f.sessions = cache.NewSessionCache(f.store, time.Hour)
	logger := zap.NewNop()
	f.service = NewOrderService(
		f.orderRepo,
		f.courseRepo,
		f.userRepo,
		f.noteRepo,
		cache.NewCourseCache(f.store, time.Minute, time.Minute),
		f.sessions,
		outbox.NewPublisher(&config.OutboxConfig{MaxRetries: 3}, f.queue, logger),
		ws.NewHub(logger),
		logger,
	)
	return f
}

func TestOrderService_Create(t *testing.T) {
	f := setupOrderService(t)
	ctx := context.Background()

	f.courseRepo.AddCourse(&entity.Course{ID: 1, Name: "Go in Practice", Price: 49})
	buyer := &entity.User{ID: 7, Name: "Alice", Email: "alice@example.com"}
	f.userRepo.AddUser(buyer)

	order, err := f.service.Create(ctx, buyer, &request.CreateOrderRequest{
		CourseID: 1,
		Payment:  request.PaymentInfoRequest{ProviderID: "pi_123", Method: "card", Status: "succeeded"},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if order.ID == 0 {
		t.Error("Create() did not assign an order id")
	}
	if order.Payment.ProviderID != "pi_123" {
		t.Errorf("Payment.ProviderID = %q", order.Payment.ProviderID)
	}

	// Ledger holds the purchase.
	owned, err := f.orderRepo.ExistsByUserAndCourse(ctx, 7, 1)
	if err != nil || !owned {
		t.Errorf("ExistsByUserAndCourse() = %v, %v", owned, err)
	}

	// Derived views: course list, purchase counter, session refresh.
	stored, _ := f.userRepo.GetByID(ctx, 7)
	if !stored.HasCourse(1) {
		t.Error("buyer's course list missing the purchase")
	}
	course, _ := f.courseRepo.GetByID(ctx, 1)
	if course.Purchased != 1 {
		t.Errorf("Purchased = %d, want 1", course.Purchased)
	}
	session, _ := f.sessions.Get(ctx, 7)
	if session == nil || !session.HasCourse(1) {
		t.Error("session cache not refreshed with the purchase")
	}

	// Side effects: confirmation mail effect and admin notification.
	effects := f.queue.Enqueued()
	if len(effects) != 1 || effects[0].Type != outbox.EffectMailOrderConfirmation {
		t.Fatalf("enqueued effects = %+v", effects)
	}
	var payload outbox.MailPayload
	if err := json.Unmarshal(effects[0].Payload, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload.To != "alice@example.com" {
		t.Errorf("payload.To = %q", payload.To)
	}
	notes, _ := f.noteRepo.List(ctx)
	if len(notes) != 1 || notes[0].Title != "New Order" {
		t.Errorf("notifications = %+v", notes)
	}
}

func TestOrderService_Create_DuplicatePurchase(t *testing.T) {
	f := setupOrderService(t)
	ctx := context.Background()

	f.courseRepo.AddCourse(&entity.Course{ID: 1, Name: "Go in Practice"})
	buyer := &entity.User{ID: 7, Name: "Alice", Email: "alice@example.com"}
	f.userRepo.AddUser(buyer)

	if _, err := f.service.Create(ctx, buyer, &request.CreateOrderRequest{CourseID: 1}); err != nil {
		t.Fatalf("first Create() error = %v", err)
	}

	_, err := f.service.Create(ctx, buyer, &request.CreateOrderRequest{CourseID: 1})
	if !apperrors.Is(err, apperrors.ErrValidation) {
		t.Errorf("second Create() error = %v, want validation", err)
	}
}

func TestOrderService_Create_CourseNotFound(t *testing.T) {
	f := setupOrderService(t)
	buyer := &entity.User{ID: 7}
	f.userRepo.AddUser(buyer)

	_, err := f.service.Create(context.Background(), buyer, &request.CreateOrderRequest{CourseID: 404})
	if !apperrors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("Create() error = %v, want not found", err)
	}
}

func TestOrderService_Create_DerivedStepFailuresDoNotFailOrder(t *testing.T) {
	f := setupOrderService(t)
	ctx := context.Background()

	f.courseRepo.AddCourse(&entity.Course{ID: 1, Name: "Go in Practice"})
	buyer := &entity.User{ID: 7, Name: "Alice", Email: "alice@example.com"}
	f.userRepo.AddUser(buyer)

	// Everything after the ledger insert is best effort.
	f.userRepo.UpdateErr = errors.New("mongo down")
	f.noteRepo.CreateErr = errors.New("mongo down")
	f.queue.EnqueueErr = errors.New("redis down")

	order, err := f.service.Create(ctx, buyer, &request.CreateOrderRequest{CourseID: 1})
	if err != nil {
		t.Fatalf("Create() error = %v, want success despite derived failures", err)
	}
	if order.ID == 0 {
		t.Error("order not committed")
	}
	owned, _ := f.orderRepo.ExistsByUserAndCourse(ctx, 7, 1)
	if !owned {
		t.Error("ledger entry missing")
	}
}

func TestOrderService_Create_InvalidatesCourseCache(t *testing.T) {
	f := setupOrderService(t)
	ctx := context.Background()

	f.courseRepo.AddCourse(&entity.Course{ID: 1, Name: "Go in Practice"})
	buyer := &entity.User{ID: 7, Name: "Alice", Email: "alice@example.com"}
	f.userRepo.AddUser(buyer)

	// Warm the course cache, purchase, then verify the cached view is gone.
	courseCache := cache.NewCourseCache(f.store, time.Minute, time.Minute)
	if err := courseCache.PutCourse(ctx, &entity.Course{ID: 1, Name: "Go in Practice"}); err != nil {
		t.Fatalf("PutCourse() error = %v", err)
	}

	if _, err := f.service.Create(ctx, buyer, &request.CreateOrderRequest{CourseID: 1}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if cached, _ := courseCache.GetCourse(ctx, 1); cached != nil {
		t.Error("course cache entry survived the purchase")
	}
}

func TestOrderService_ListByUser(t *testing.T) {
	f := setupOrderService(t)
	ctx := context.Background()

	f.orderRepo.Create(ctx, &entity.Order{UserID: 1, CourseID: 10})
	f.orderRepo.Create(ctx, &entity.Order{UserID: 2, CourseID: 10})
	f.orderRepo.Create(ctx, &entity.Order{UserID: 1, CourseID: 20})

	mine, err := f.service.ListByUser(ctx, 1)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(mine) != 2 {
		t.Errorf("ListByUser() = %d orders, want 2", len(mine))
	}

	all, err := f.service.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("List() = %d orders, want 3", len(all))
	}
}
