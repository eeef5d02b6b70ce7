// Package outbox decouples side effects from the request path. Services
// enqueue effect records; a worker pool drains the queue and executes the
// registered handler for each effect type. Failed effects are retried with
// backoff and parked on a dead list once retries are exhausted, so a mail
// provider outage never fails an order or a course mutation.
package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Effect types. The payload schema of each type is fixed by its handler.
const (
	EffectMailActivation        = "mail.activation"
	EffectMailOrderConfirmation = "mail.order_confirmation"
	EffectMailQuestionReply     = "mail.question_reply"
	EffectMailReviewReply       = "mail.review_reply"
)

// Effect statuses.
const (
	StatusPending  = "pending"
	StatusRunning  = "running"
	StatusRetrying = "retrying"
	StatusDead     = "dead"
	StatusDone     = "done"
)

var (
	// ErrQueueEmpty is returned by Dequeue when no effect is ready.
	ErrQueueEmpty = errors.New("outbox queue empty")

	// ErrEffectNotFound is returned when an effect id has no record.
	ErrEffectNotFound = errors.New("effect not found")
)

// Effect is a single queued side effect.
type Effect struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Payload     json.RawMessage `json:"payload"`
	Status      string          `json:"status"`
	Attempts    int             `json:"attempts"`
	MaxRetries  int             `json:"max_retries"`
	LastError   string          `json:"last_error,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	StartedAt   *time.Time      `json:"started_at,omitempty"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
	ScheduledAt *time.Time      `json:"scheduled_at,omitempty"`
}

// NewEffect creates a pending effect with a serialized payload.
func NewEffect(effectType string, payload any, maxRetries int) (*Effect, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Effect{
		ID:         uuid.NewString(),
		Type:       effectType,
		Payload:    data,
		Status:     StatusPending,
		MaxRetries: maxRetries,
		CreatedAt:  time.Now(),
	}, nil
}

// Queue is the durable effect queue.
type Queue interface {
	// Enqueue records the effect and makes it available to workers
	Enqueue(ctx context.Context, effect *Effect) error

	// Dequeue claims the next ready effect, or returns ErrQueueEmpty
	Dequeue(ctx context.Context) (*Effect, error)

	// Complete marks the effect done
	Complete(ctx context.Context, effectID string) error

	// Fail records the error and either schedules a retry or parks the
	// effect on the dead list
	Fail(ctx context.Context, effectID string, effectErr error) error

	// ProcessScheduled moves due retries back to the ready list and
	// returns how many were moved
	ProcessScheduled(ctx context.Context) (int, error)

	// RequeueStale returns effects stuck in running state longer than
	// threshold to the ready list
	RequeueStale(ctx context.Context, threshold time.Duration) (int, error)

	// Stats returns queue depth counters
	Stats(ctx context.Context) (map[string]int64, error)
}

// MailPayload is the payload shared by all mail effect types.
type MailPayload struct {
	To      string         `json:"to"`
	Subject string         `json:"subject"`
	Data    map[string]any `json:"data"`
}
