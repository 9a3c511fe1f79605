package config

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	t.Setenv("AUTH_TOKEN_SECRET", "test-secret")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.False(t, cfg.IsDev)
	assert.Equal(t, "test-secret", cfg.Auth.TokenSecret)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.False(t, cfg.Auth.ThrottleEnabled)
	assert.Equal(t, 5, cfg.Auth.ThrottleMaxAttempts)
	assert.Equal(t, 15*time.Minute, cfg.Auth.ThrottleWindow)
	assert.Equal(t, "localhost", cfg.Postgres.Host)
	assert.Equal(t, 5432, cfg.Postgres.Port)
	assert.True(t, cfg.Postgres.RunMigrationsOnStart)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
}

func TestParseRequiresTokenSecret(t *testing.T) {
	t.Setenv("AUTH_TOKEN_SECRET", "")

	var cfg AppConfig
	err := env.Parse(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TOKEN_SECRET")
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("AUTH_TOKEN_SECRET", "test-secret")
	t.Setenv("AUTH_TOKEN_TTL", "1h")
	t.Setenv("AUTH_THROTTLE_ENABLED", "true")
	t.Setenv("AUTH_THROTTLE_MAX_ATTEMPTS", "3")
	t.Setenv("DB_PORT", "55432")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("HTTP_ADDR", ":9090")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.True(t, cfg.Auth.ThrottleEnabled)
	assert.Equal(t, 3, cfg.Auth.ThrottleMaxAttempts)
	assert.Equal(t, 55432, cfg.Postgres.Port)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
}

func TestSanitizeClampsValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   AuthConfig
		want AuthConfig
	}{
		{
			name: "bcrypt cost below minimum",
			in:   AuthConfig{BcryptCost: 0, TokenTTL: time.Hour, ThrottleMaxAttempts: 5, ThrottleWindow: time.Minute},
			want: AuthConfig{BcryptCost: 4, TokenTTL: time.Hour, ThrottleMaxAttempts: 5, ThrottleWindow: time.Minute},
		},
		{
			name: "bcrypt cost above maximum",
			in:   AuthConfig{BcryptCost: 99, TokenTTL: time.Hour, ThrottleMaxAttempts: 5, ThrottleWindow: time.Minute},
			want: AuthConfig{BcryptCost: 31, TokenTTL: time.Hour, ThrottleMaxAttempts: 5, ThrottleWindow: time.Minute},
		},
		{
			name: "non-positive ttl and window",
			in:   AuthConfig{BcryptCost: 10, TokenTTL: -time.Hour, ThrottleMaxAttempts: 0, ThrottleWindow: 0},
			want: AuthConfig{BcryptCost: 10, TokenTTL: 24 * time.Hour, ThrottleMaxAttempts: 1, ThrottleWindow: 15 * time.Minute},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tt.in
			got.Sanitize()
			assert.Equal(t, tt.want, got)
		})
	}
}
