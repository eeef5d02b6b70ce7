// Package mail renders HTML templates and delivers transactional email
// through the Brevo HTTP API. Delivery goes through a circuit breaker so a
// degraded provider fails fast instead of tying up request handlers and
// outbox workers.
package mail

import (
	"context"
)

// Template names known to the renderer.
const (
	TemplateActivation        = "activation"
	TemplateOrderConfirmation = "order_confirmation"
	TemplateQuestionReply     = "question_reply"
	TemplateReviewReply       = "review_reply"
)

// Message is a single outbound mail.
type Message struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject"`
	Template string         `json:"template"`
	Data     map[string]any `json:"data"`
}

// Mailer renders and delivers a message.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
