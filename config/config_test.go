package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/rbm?sslmode=disable")
	t.Setenv("JWT_SECRET_KEY", "0123456789abcdef0123")
	t.Setenv("BACKEND_API_URL", "https://api.rbm.example.test/api/")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "https://api.rbm.example.test/api", cfg.BackendAPIURL)
	assert.Equal(t, 15*time.Second, cfg.BackendTimeout)
	assert.Equal(t, 7*24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
	assert.False(t, cfg.R2.Enabled())
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("BACKEND_TIMEOUT", "3s")
	t.Setenv("ALLOWED_ORIGINS", "https://rbmesports.com, https://admin.rbmesports.com,")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("R2_ACCOUNT_ID", "acc")
	t.Setenv("COOKIE_SECURE", "TRUE")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, 3*time.Second, cfg.BackendTimeout)
	assert.Equal(t, []string{"https://rbmesports.com", "https://admin.rbmesports.com"}, cfg.AllowedOrigins)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
	assert.True(t, cfg.R2.Enabled())
	assert.True(t, cfg.CookieSecure)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"missing database", "DATABASE_URL", ""},
		{"short secret", "JWT_SECRET_KEY", "short"},
		{"relative backend url", "BACKEND_API_URL", "/api"},
		{"bad port", "SERVER_PORT", "70000"},
		{"bad duration", "SESSION_TTL", "forever"},
		{"negative duration", "BACKEND_TIMEOUT", "-1s"},
		{"zero burst", "RATE_LIMIT_BURST", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
