package impl

import (
	"context"

	"github.com/jrjohn/academy-cloud-go/internal/domain/dao"
	"github.com/jrjohn/academy-cloud-go/internal/domain/entity"
	"github.com/jrjohn/academy-cloud-go/internal/domain/repository"
)

// orderRepository implements repository.OrderRepository by delegating to
// OrderDAO.
type orderRepository struct {
	dao dao.OrderDAO
}

// NewOrderRepository creates a new OrderRepository instance.
func NewOrderRepository(orderDAO dao.OrderDAO) repository.OrderRepository {
	return &orderRepository{dao: orderDAO}
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	return r.dao.Create(ctx, order)
}

func (r *orderRepository) ExistsByUserAndCourse(ctx context.Context, userID, courseID uint) (bool, error) {
	return r.dao.ExistsByUserAndCourse(ctx, userID, courseID)
}

func (r *orderRepository) List(ctx context.Context) ([]*entity.Order, error) {
	return r.dao.FindAll(ctx)
}

func (r *orderRepository) ListByUser(ctx context.Context, userID uint) ([]*entity.Order, error) {
	return r.dao.FindByUser(ctx, userID)
}
