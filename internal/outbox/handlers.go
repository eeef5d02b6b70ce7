package outbox

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jrjohn/academy-cloud-go/internal/mail"
)

// mailTemplatesByEffect binds each mail effect type to its template.
var mailTemplatesByEffect = map[string]string{
	EffectMailActivation:        mail.TemplateActivation,
	EffectMailOrderConfirmation: mail.TemplateOrderConfirmation,
	EffectMailQuestionReply:     mail.TemplateQuestionReply,
	EffectMailReviewReply:       mail.TemplateReviewReply,
}

// MailHandler builds the outbox handler for one mail effect type.
func MailHandler(effectType string, mailer mail.Mailer) Handler {
	template, ok := mailTemplatesByEffect[effectType]
	if !ok {
		template = effectType
	}
	return func(ctx context.Context, payload []byte) error {
		var p MailPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return fmt.Errorf("invalid mail payload: %w", err)
		}
		return mailer.Send(ctx, mail.Message{
			To:       p.To,
			Subject:  p.Subject,
			Template: template,
			Data:     p.Data,
		})
	}
}

// RegisterMailHandlers registers handlers for every mail effect type.
func RegisterMailHandlers(pool *Pool, mailer mail.Mailer) {
	for effectType := range mailTemplatesByEffect {
		pool.Register(effectType, MailHandler(effectType, mailer))
	}
}
