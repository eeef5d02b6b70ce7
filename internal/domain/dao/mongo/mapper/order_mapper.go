package mapper

import (
	"github.com/jrjohn/academy-cloud-go/internal/domain/dao/mongo/document"
	"github.com/jrjohn/academy-cloud-go/internal/domain/entity"
)

// OrderMapper converts between entity.Order and document.OrderDocument.
type OrderMapper struct{}

// NewOrderMapper creates a new OrderMapper.
func NewOrderMapper() *OrderMapper {
	return &OrderMapper{}
}

// ToDocument converts an order entity to its MongoDB document.
func (m *OrderMapper) ToDocument(order *entity.Order) *document.OrderDocument {
	return &document.OrderDocument{
		NumericID: order.ID,
		UserID:    order.UserID,
		CourseID:  order.CourseID,
		Payment: document.PaymentInfoDocument{
			ProviderID: order.Payment.ProviderID,
			Method:     order.Payment.Method,
			Status:     order.Payment.Status,
		},
		CreatedAt: order.CreatedAt,
		UpdatedAt: order.UpdatedAt,
	}
}

// ToEntity converts a MongoDB document to an order entity.
func (m *OrderMapper) ToEntity(doc *document.OrderDocument) *entity.Order {
	return &entity.Order{
		ID:       doc.NumericID,
		UserID:   doc.UserID,
		CourseID: doc.CourseID,
		Payment: entity.PaymentInfo{
			ProviderID: doc.Payment.ProviderID,
			Method:     doc.Payment.Method,
			Status:     doc.Payment.Status,
		},
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}

// ToEntities converts a slice of documents to order entities.
func (m *OrderMapper) ToEntities(docs []*document.OrderDocument) []*entity.Order {
	orders := make([]*entity.Order, 0, len(docs))
	for _, doc := range docs {
		orders = append(orders, m.ToEntity(doc))
	}
	return orders
}
