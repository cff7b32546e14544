package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, time.Hour, cfg.ProfileCacheTTL)
	assert.Equal(t, []string{"openid", "profile", "email"}, cfg.Google.Scopes)
	assert.False(t, cfg.Google.Enabled())
	assert.False(t, cfg.Yahoo.Enabled())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9000")
	t.Setenv("APP_ENV", "production")
	t.Setenv("GOOGLE_CLIENT_ID", "gid")
	t.Setenv("GOOGLE_CLIENT_SECRET", "gsecret")
	t.Setenv("GOOGLE_REDIRECT_URL", "https://app.example.com/oauth/callback/google")
	t.Setenv("YAHOO_CLIENT_ID", "yid")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("DATABASE_DSN", "postgres://localhost/userdata")
	t.Setenv("PROFILE_CACHE_TTL", "15m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.AppPort)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "gid", cfg.Google.ClientID)
	assert.Equal(t, "gsecret", cfg.Google.ClientSecret)
	assert.True(t, cfg.Google.Enabled())
	assert.True(t, cfg.Yahoo.Enabled())
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 15*time.Minute, cfg.ProfileCacheTTL)
}

func TestLoad_RejectsNonPositiveTTL(t *testing.T) {
	t.Setenv("SESSION_TTL", "0s")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	google := OAuthClient{ClientID: "id", ClientSecret: "s", RedirectURL: "https://x/cb"}

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"no providers", Config{DatabaseDSN: "dsn"}, true},
		{"incomplete provider", Config{Google: OAuthClient{ClientID: "id"}, DatabaseDSN: "dsn"}, true},
		{"no database", Config{Google: google}, true},
		{"ok", Config{Google: google, DatabaseDSN: "dsn"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
