package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicebot/models"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "STRIPE_API_KEY", "STRIPE_REDIRECT_URL", "EMAIL_TRANSPORT",
		"RESEND_API_KEY", "SENDER_EMAIL", "SENDER_NAME", "SENDER_PASSWORD",
		"SMTP_HOST", "SMTP_PORT", "SLACK_BOT_TOKEN", "SLACK_CHANNEL_ID",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("STRIPE_API_KEY", "sk_test_123")
}

func TestLoadDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "https://google.com", cfg.StripeRedirectURL)
	assert.Equal(t, TransportResend, cfg.EmailTransport)
	assert.Equal(t, "Invoice Automation Bot", cfg.SenderName)
	assert.Equal(t, 587, cfg.SMTPPort)
}

func TestLoadRequiresStripeKey(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("STRIPE_API_KEY", "")

	_, err := Load()
	require.Error(t, err)

	var cerr *models.ConfigurationError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "STRIPE_API_KEY", cerr.Key)
}

func TestLoadRejectsUnknownTransport(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("EMAIL_TRANSPORT", "pigeon")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadSMTPSettings(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("EMAIL_TRANSPORT", "smtp")
	t.Setenv("SMTP_HOST", "mail.example.com")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("SENDER_EMAIL", "billing@example.com")
	t.Setenv("SENDER_PASSWORD", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, TransportSMTP, cfg.EmailTransport)
	assert.Equal(t, "mail.example.com", cfg.SMTPHost)
	assert.Equal(t, 2525, cfg.SMTPPort)
}
