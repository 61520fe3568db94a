// internal/config/config.go
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Notifier strategies. Exactly one is active per deployment.
const (
	NotifierWebhook  = "webhook"
	NotifierSMTP     = "smtp"
	NotifierEmailAPI = "email_api"
	NotifierNone     = "none"
)

type Config struct {
	Port        string `env:"PORT" envDefault:"3002"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	// Document store
	MongoURI      string `env:"MONGO_URI,required,notEmpty"`
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"ora_members"`

	JWTSecret string `env:"JWT_SECRET,required,notEmpty"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"15s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Comma-separated; empty allows every origin
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:""`

	// Notification
	Notifier   string `env:"NOTIFIER" envDefault:"webhook"`
	WebhookURL string `env:"WEBHOOK_URL" envDefault:""`

	SMTPHost     string `env:"SMTP_HOST" envDefault:""`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser     string `env:"SMTP_USER" envDefault:""`
	SMTPPassword string `env:"SMTP_PASSWORD" envDefault:""`
	SMTPUseTLS   bool   `env:"SMTP_USE_TLS" envDefault:"false"`

	EmailAPIURL string `env:"EMAIL_API_URL" envDefault:"https://api.resend.com/emails"`
	EmailAPIKey string `env:"EMAIL_API_KEY" envDefault:""`

	MailFrom       string `env:"MAIL_FROM" envDefault:"noreply@ora-members.com"`
	MailFromName   string `env:"MAIL_FROM_NAME" envDefault:"ORA Members"`
	WelcomeSubject string `env:"WELCOME_SUBJECT" envDefault:"Welcome to ORA Members"`

	NotifyWorkers   int           `env:"NOTIFY_WORKERS" envDefault:"4"`
	NotifyQueueSize int           `env:"NOTIFY_QUEUE_SIZE" envDefault:"100"`
	NotifyTimeout   time.Duration `env:"NOTIFY_TIMEOUT" envDefault:"30s"`
}

// Load parses environment variables and returns a validated Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Notifier {
	case NotifierWebhook, NotifierSMTP, NotifierEmailAPI, NotifierNone:
	default:
		return fmt.Errorf("invalid NOTIFIER %q: want one of webhook, smtp, email_api, none", c.Notifier)
	}
	if c.NotifyWorkers < 1 {
		return fmt.Errorf("NOTIFY_WORKERS must be at least 1, got %d", c.NotifyWorkers)
	}
	if c.NotifyQueueSize < 1 {
		return fmt.Errorf("NOTIFY_QUEUE_SIZE must be at least 1, got %d", c.NotifyQueueSize)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// GetCORSAllowedOrigins splits CORSAllowedOrigins, dropping blanks.
func (c *Config) GetCORSAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}

	origins := strings.Split(c.CORSAllowedOrigins, ",")
	result := make([]string, 0, len(origins))
	for _, origin := range origins {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
