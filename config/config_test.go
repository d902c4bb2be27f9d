package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("FRONTEND_URL", "https://mikezhan.dev/")
	t.Setenv("EMAIL_PROVIDER", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://mikezhan.dev", cfg.FrontendURL)
	assert.Equal(t, []string{"https://mikezhan.dev"}, cfg.AllowedOrigins)
	assert.Equal(t, EmailProviderEmailJS, cfg.EmailProvider)
	assert.Equal(t, 15*time.Second, cfg.EmailJSTimeout)
	assert.Equal(t, 30*time.Minute, cfg.ContactSessionTTL)
	assert.Equal(t, 5, cfg.RateLimitContactThreshold)
	assert.Equal(t, 600, cfg.RateLimitEditThreshold)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("EMAIL_PROVIDER", "SMTP")
	t.Setenv("SMTP_USERNAME", "mailer@example.com")
	t.Setenv("ALLOWED_ORIGINS", "https://a.dev/, ,https://b.dev")
	t.Setenv("EMAILJS_TIMEOUT_SECONDS", "5")
	t.Setenv("RATE_LIMIT_CONTACT_THRESHOLD", "not-a-number")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, EmailProviderSMTP, cfg.EmailProvider)
	assert.Equal(t, "mailer@example.com", cfg.SMTPFromEmail)
	assert.Equal(t, []string{"https://a.dev", "https://b.dev"}, cfg.AllowedOrigins)
	assert.Equal(t, 5*time.Second, cfg.EmailJSTimeout)
	assert.Equal(t, 5, cfg.RateLimitContactThreshold)
}
