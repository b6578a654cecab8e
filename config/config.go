package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"invoicebot/logger"
	"invoicebot/models"
)

// Email transport selection values for EMAIL_TRANSPORT.
const (
	TransportResend = "resend"
	TransportSMTP   = "smtp"
)

// Config holds application configuration. Loaded once at startup and
// read-only afterwards.
type Config struct {
	Port string

	StripeAPIKey      string
	StripeRedirectURL string // where the payer lands after completing payment

	EmailTransport string
	ResendAPIKey   string
	SenderEmail    string
	SenderName     string
	SenderPassword string
	SMTPHost       string
	SMTPPort       int

	SlackBotToken  string
	SlackChannelID string
}

// Load reads configuration from a .env file (if present) and the
// process environment. It fails on a missing payment key; missing
// email credentials are only warned about here, because the sender is
// built disabled and reports the problem on every send attempt.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:              os.Getenv("PORT"),
		StripeAPIKey:      os.Getenv("STRIPE_API_KEY"),
		StripeRedirectURL: os.Getenv("STRIPE_REDIRECT_URL"),
		EmailTransport:    os.Getenv("EMAIL_TRANSPORT"),
		ResendAPIKey:      os.Getenv("RESEND_API_KEY"),
		SenderEmail:       os.Getenv("SENDER_EMAIL"),
		SenderName:        os.Getenv("SENDER_NAME"),
		SenderPassword:    os.Getenv("SENDER_PASSWORD"),
		SMTPHost:          os.Getenv("SMTP_HOST"),
		SlackBotToken:     os.Getenv("SLACK_BOT_TOKEN"),
		SlackChannelID:    os.Getenv("SLACK_CHANNEL_ID"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		logger.L.Infof("PORT not set, defaulting to %s", cfg.Port)
	}
	if cfg.StripeAPIKey == "" {
		return nil, &models.ConfigurationError{Key: "STRIPE_API_KEY", Reason: "not set"}
	}
	if cfg.StripeRedirectURL == "" {
		cfg.StripeRedirectURL = "https://google.com"
	}
	if cfg.EmailTransport == "" {
		cfg.EmailTransport = TransportResend
	}
	if cfg.EmailTransport != TransportResend && cfg.EmailTransport != TransportSMTP {
		return nil, &models.ConfigurationError{Key: "EMAIL_TRANSPORT", Reason: `must be "resend" or "smtp"`}
	}
	if cfg.SenderName == "" {
		cfg.SenderName = "Invoice Automation Bot"
	}
	if cfg.SMTPHost == "" {
		cfg.SMTPHost = "smtp.gmail.com"
	}
	cfg.SMTPPort = 587
	if p := os.Getenv("SMTP_PORT"); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return nil, &models.ConfigurationError{Key: "SMTP_PORT", Reason: "not a number"}
		}
		cfg.SMTPPort = port
	}

	switch cfg.EmailTransport {
	case TransportResend:
		if cfg.ResendAPIKey == "" || cfg.SenderEmail == "" {
			logger.L.Warnf("RESEND_API_KEY or SENDER_EMAIL not set; every email send will fail")
		}
	case TransportSMTP:
		if cfg.SenderEmail == "" || cfg.SenderPassword == "" {
			logger.L.Warnf("SENDER_EMAIL or SENDER_PASSWORD not set; every email send will fail")
		}
	}

	return cfg, nil
}
