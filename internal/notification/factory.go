package notification

import (
	"github.com/Marga-Ghale/ora-member-service/internal/config"
	"github.com/Marga-Ghale/ora-member-service/internal/email"
	"github.com/rs/zerolog"
)

// NewFromConfig builds the notifier selected by cfg.Notifier and returns the
// strategy actually in effect. A strategy whose credentials are missing falls
// back to NoopNotifier with a warning.
func NewFromConfig(cfg *config.Config, log zerolog.Logger) (Notifier, string) {
	switch cfg.Notifier {
	case config.NotifierWebhook:
		if cfg.WebhookURL == "" {
			log.Warn().Msg("NOTIFIER=webhook but WEBHOOK_URL is empty, notifications disabled")
			return NoopNotifier{}, config.NotifierNone
		}
		return NewWebhookNotifier(cfg.WebhookURL, NewHTTPClient()), config.NotifierWebhook

	case config.NotifierSMTP:
		if cfg.SMTPHost == "" {
			log.Warn().Msg("NOTIFIER=smtp but SMTP_HOST is empty, notifications disabled")
			return NoopNotifier{}, config.NotifierNone
		}
		mailer := email.NewService(&email.Config{
			Host:           cfg.SMTPHost,
			Port:           cfg.SMTPPort,
			User:           cfg.SMTPUser,
			Password:       cfg.SMTPPassword,
			From:           cfg.MailFrom,
			FromName:       cfg.MailFromName,
			UseTLS:         cfg.SMTPUseTLS,
			WelcomeSubject: cfg.WelcomeSubject,
		})
		return NewEmailNotifier(mailer), config.NotifierSMTP

	case config.NotifierEmailAPI:
		if cfg.EmailAPIKey == "" || cfg.EmailAPIURL == "" {
			log.Warn().Msg("NOTIFIER=email_api but EMAIL_API_KEY or EMAIL_API_URL is empty, notifications disabled")
			return NoopNotifier{}, config.NotifierNone
		}
		client := email.NewAPIClient(&email.APIConfig{
			URL:            cfg.EmailAPIURL,
			APIKey:         cfg.EmailAPIKey,
			From:           cfg.MailFrom,
			FromName:       cfg.MailFromName,
			WelcomeSubject: cfg.WelcomeSubject,
		}, NewHTTPClient())
		return NewEmailNotifier(client), config.NotifierEmailAPI
	}

	log.Info().Msg("notifications disabled")
	return NoopNotifier{}, config.NotifierNone
}
