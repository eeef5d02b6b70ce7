package request

// PaymentInfoRequest mirrors the payment provider confirmation
type PaymentInfoRequest struct {
	ProviderID string `json:"provider_id"`
	Method     string `json:"method"`
	Status     string `json:"status"`
}

// CreateOrderRequest purchases a course for the authenticated user
type CreateOrderRequest struct {
	CourseID uint               `json:"course_id" binding:"required"`
	Payment  PaymentInfoRequest `json:"payment_info"`
}
