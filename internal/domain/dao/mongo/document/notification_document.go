package document

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationDocument represents a notification in MongoDB.
type NotificationDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	NumericID uint               `bson:"numeric_id"`
	UserID    uint               `bson:"user_id"`
	Title     string             `bson:"title"`
	Message   string             `bson:"message"`
	Status    string             `bson:"status"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

// CollectionName returns the MongoDB collection name for notifications.
func (NotificationDocument) CollectionName() string {
	return "notifications"
}
