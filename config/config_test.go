package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("FRONTEND_URL", "https://jobs.example.com/")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com/, ,https://b.example.com")
	t.Setenv("GUEST_TTL_HOURS", "not-a-number")
	t.Setenv("DB_DRIVER", "SQLite")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://jobs.example.com", cfg.FrontendURL)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, 24, cfg.GuestTTLHours)
	assert.Equal(t, "sqlite", cfg.DBDriver)
}

func TestOAuthConfigured(t *testing.T) {
	cfg := &Config{LinkedInClientID: "id", LinkedInClientSecret: "secret"}
	assert.False(t, cfg.OAuthConfigured())

	cfg.SessionJWTSecret = "s3cret"
	assert.True(t, cfg.OAuthConfigured())
}

func TestCookieSecureFollowsEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.CookieSecure)

	t.Setenv("COOKIE_SECURE", "false")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.False(t, cfg.CookieSecure)
}
