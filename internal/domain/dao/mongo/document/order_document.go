package document

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentInfoDocument is pass-through payment metadata.
type PaymentInfoDocument struct {
	ProviderID string `bson:"provider_id,omitempty"`
	Method     string `bson:"method,omitempty"`
	Status     string `bson:"status,omitempty"`
}

// OrderDocument represents an order in MongoDB.
type OrderDocument struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty"`
	NumericID uint                `bson:"numeric_id"`
	UserID    uint                `bson:"user_id"`
	CourseID  uint                `bson:"course_id"`
	Payment   PaymentInfoDocument `bson:"payment_info,omitempty"`
	CreatedAt time.Time           `bson:"created_at"`
	UpdatedAt time.Time           `bson:"updated_at"`
}

// CollectionName returns the MongoDB collection name for orders.
func (OrderDocument) CollectionName() string {
	return "orders"
}
