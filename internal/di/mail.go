package di

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/jrjohn/academy-cloud-go/internal/config"
	"github.com/jrjohn/academy-cloud-go/internal/mail"
)

// MailModule provides the template renderer and the Brevo mailer
var MailModule = fx.Module("mail",
	fx.Provide(
		provideTemplateRenderer,
		provideMailer,
	),
)

func provideTemplateRenderer(lc fx.Lifecycle, cfg *config.MailConfig, logger *zap.Logger) (*mail.TemplateRenderer, error) {
	renderer, err := mail.NewTemplateRenderer(cfg.TemplateDir, logger)
	if err != nil {
		return nil, err
	}

	if cfg.HotReload {
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				return renderer.Watch()
			},
			OnStop: func(ctx context.Context) error {
				return renderer.Close()
			},
		})
	}

	return renderer, nil
}

func provideMailer(cfg *config.MailConfig, renderer *mail.TemplateRenderer, logger *zap.Logger) mail.Mailer {
	return mail.NewBrevoMailer(cfg, renderer, logger)
}
