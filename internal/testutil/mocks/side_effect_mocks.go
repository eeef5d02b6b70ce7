package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jrjohn/academy-cloud-go/internal/assets"
	"github.com/jrjohn/academy-cloud-go/internal/mail"
	"github.com/jrjohn/academy-cloud-go/internal/outbox"
)

// MockMailer records sent messages.
type MockMailer struct {
	mu   sync.Mutex
	sent []mail.Message

	// Error injection
	SendErr error
}

var _ mail.Mailer = (*MockMailer)(nil)

func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

func (m *MockMailer) Send(ctx context.Context, msg mail.Message) error {
	if m.SendErr != nil {
		return m.SendErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

// Sent returns the messages sent so far.
func (m *MockMailer) Sent() []mail.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]mail.Message, len(m.sent))
	copy(out, m.sent)
	return out
}

// MockQueue is an in-memory outbox.Queue. Effects are held in a slice in
// enqueue order; Fail moves exhausted effects to the dead list.
type MockQueue struct {
	mu    sync.Mutex
	ready []*outbox.Effect
	done  []string
	dead  []*outbox.Effect

	// Error injection
	EnqueueErr error
	DequeueErr error
}

var _ outbox.Queue = (*MockQueue)(nil)

func NewMockQueue() *MockQueue {
	return &MockQueue{}
}

func (q *MockQueue) Enqueue(ctx context.Context, effect *outbox.Effect) error {
	if q.EnqueueErr != nil {
		return q.EnqueueErr
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.ready = append(q.ready, effect)
	return nil
}

func (q *MockQueue) Dequeue(ctx context.Context) (*outbox.Effect, error) {
	if q.DequeueErr != nil {
		return nil, q.DequeueErr
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.ready) == 0 {
		return nil, outbox.ErrQueueEmpty
	}
	effect := q.ready[0]
	q.ready = q.ready[1:]
	effect.Attempts++
	effect.Status = outbox.StatusRunning
	return effect, nil
}

func (q *MockQueue) Complete(ctx context.Context, effectID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.done = append(q.done, effectID)
	return nil
}

func (q *MockQueue) Fail(ctx context.Context, effectID string, effectErr error) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.dead = append(q.dead, &outbox.Effect{ID: effectID, Status: outbox.StatusDead, LastError: effectErr.Error()})
	return nil
}

func (q *MockQueue) ProcessScheduled(ctx context.Context) (int, error) {
	return 0, nil
}

func (q *MockQueue) RequeueStale(ctx context.Context, threshold time.Duration) (int, error) {
	return 0, nil
}

func (q *MockQueue) Stats(ctx context.Context) (map[string]int64, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return map[string]int64{
		"ready": int64(len(q.ready)),
		"dead":  int64(len(q.dead)),
	}, nil
}

// Enqueued returns the effects currently waiting.
func (q *MockQueue) Enqueued() []*outbox.Effect {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]*outbox.Effect, len(q.ready))
	copy(out, q.ready)
	return out
}

// Completed returns the ids of completed effects.
func (q *MockQueue) Completed() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]string, len(q.done))
	copy(out, q.done)
	return out
}

// Dead returns the effects parked on the dead list.
func (q *MockQueue) Dead() []*outbox.Effect {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]*outbox.Effect, len(q.dead))
	copy(out, q.dead)
	return out
}

// MockAssetStore is a deterministic assets.Store.
type MockAssetStore struct {
	mu       sync.Mutex
	uploads  int
	Deleted  []string
	UploadFn func(folder, dataURL string) (string, string, error)

	// Error injection
	UploadErr error
	DeleteErr error
}

var _ assets.Store = (*MockAssetStore)(nil)

func NewMockAssetStore() *MockAssetStore {
	return &MockAssetStore{}
}

func (s *MockAssetStore) Upload(ctx context.Context, folder, dataURL string) (string, string, error) {
	if s.UploadErr != nil {
		return "", "", s.UploadErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.UploadFn != nil {
		return s.UploadFn(folder, dataURL)
	}
	s.uploads++
	key := fmt.Sprintf("%s/upload-%d", folder, s.uploads)
	return key, "https://assets.test/" + key, nil
}

func (s *MockAssetStore) Delete(ctx context.Context, key string) error {
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Deleted = append(s.Deleted, key)
	return nil
}
