package entity

import "time"

// NotificationStatus is the read state of a notification.
type NotificationStatus string

const (
	NotificationUnread NotificationStatus = "unread"
	NotificationRead   NotificationStatus = "read"
)

// Notification is a derived in-app record created as a side effect of
// mutations. Only the status ever changes after creation, and only from
// unread to read.
type Notification struct {
	ID        uint               `json:"id"`
	UserID    uint               `json:"user_id"`
	Title     string             `json:"title"`
	Message   string             `json:"message"`
	Status    NotificationStatus `json:"status"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// MarkRead transitions unread to read. Returns false when the notification
// was already read.
func (n *Notification) MarkRead() bool {
	if n.Status == NotificationRead {
		return false
	}
	n.Status = NotificationRead
	return true
}
