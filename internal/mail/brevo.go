package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/jrjohn/academy-cloud-go/internal/config"
)

// brevoMailer delivers mail through the Brevo transactional API. All sends
// pass through a circuit breaker keyed on consecutive failures.
type brevoMailer struct {
	apiKey     string
	baseURL    string
	sender     string
	senderName string
	client     *http.Client
	renderer   *TemplateRenderer
	breaker    *gobreaker.CircuitBreaker
	logger     *zap.Logger
}

// NewBrevoMailer creates a Brevo-backed Mailer.
func NewBrevoMailer(cfg *config.MailConfig, renderer *TemplateRenderer, logger *zap.Logger) Mailer {
	settings := gobreaker.Settings{
		Name:        "brevo",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("mail circuit breaker state change",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	}

	return &brevoMailer{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		sender:     cfg.SenderEmail,
		senderName: cfg.SenderName,
		client:     &http.Client{Timeout: cfg.Timeout},
		renderer:   renderer,
		breaker:    gobreaker.NewCircuitBreaker(settings),
		logger:     logger,
	}
}

type brevoSendRequest struct {
	Sender      map[string]string   `json:"sender"`
	To          []map[string]string `json:"to"`
	Subject     string              `json:"subject"`
	HTMLContent string              `json:"htmlContent"`
}

func (m *brevoMailer) Send(ctx context.Context, msg Message) error {
	html, err := m.renderer.Render(msg.Template, msg.Data)
	if err != nil {
		return err
	}

	_, err = m.breaker.Execute(func() (interface{}, error) {
		return nil, m.deliver(ctx, msg, html)
	})
	if err != nil {
		return err
	}

	m.logger.Info("mail sent",
		zap.String("to", msg.To),
		zap.String("template", msg.Template))
	return nil
}

func (m *brevoMailer) deliver(ctx context.Context, msg Message, html string) error {
	payload := brevoSendRequest{
		Sender:      map[string]string{"email": m.sender, "name": m.senderName},
		To:          []map[string]string{{"email": msg.To}},
		Subject:     msg.Subject,
		HTMLContent: html,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/v3/smtp/email", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", m.apiKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("brevo send failed: status %d", resp.StatusCode)
	}
	return nil
}
