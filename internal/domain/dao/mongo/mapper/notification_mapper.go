package mapper

import (
	"github.com/jrjohn/academy-cloud-go/internal/domain/dao/mongo/document"
	"github.com/jrjohn/academy-cloud-go/internal/domain/entity"
)

// NotificationMapper converts between entity.Notification and its document.
type NotificationMapper struct{}

// NewNotificationMapper creates a new NotificationMapper.
func NewNotificationMapper() *NotificationMapper {
	return &NotificationMapper{}
}

// ToDocument converts a notification entity to its MongoDB document.
func (m *NotificationMapper) ToDocument(n *entity.Notification) *document.NotificationDocument {
	return &document.NotificationDocument{
		NumericID: n.ID,
		UserID:    n.UserID,
		Title:     n.Title,
		Message:   n.Message,
		Status:    string(n.Status),
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

// ToEntity converts a MongoDB document to a notification entity.
func (m *NotificationMapper) ToEntity(doc *document.NotificationDocument) *entity.Notification {
	return &entity.Notification{
		ID:        doc.NumericID,
		UserID:    doc.UserID,
		Title:     doc.Title,
		Message:   doc.Message,
		Status:    entity.NotificationStatus(doc.Status),
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}

// ToEntities converts a slice of documents to notification entities.
func (m *NotificationMapper) ToEntities(docs []*document.NotificationDocument) []*entity.Notification {
	notifications := make([]*entity.Notification, 0, len(docs))
	for _, doc := range docs {
		notifications = append(notifications, m.ToEntity(doc))
	}
	return notifications
}
