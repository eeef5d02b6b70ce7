package entity

import "time"

// PaymentInfo is pass-through metadata from the payment provider. The
// platform does not capture payments itself.
type PaymentInfo struct {
	ProviderID string `json:"provider_id"`
	Method     string `json:"method"`
	Status     string `json:"status"`
}

// Order links one user to one purchased course. The orders collection is
// the authoritative purchase ledger: "already purchased" is always derived
// by querying it.
type Order struct {
	ID        uint        `json:"id"`
	UserID    uint        `json:"user_id"`
	CourseID  uint        `json:"course_id"`
	Payment   PaymentInfo `json:"payment_info"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
