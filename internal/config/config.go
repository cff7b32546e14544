package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	AppPort string
	AppEnv  string

	LogLevel  string
	LogFormat string

	Google OAuthClient
	Yahoo  OAuthClient

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	DatabaseDSN string

	SessionTTL      time.Duration
	ProfileCacheTTL time.Duration
}

// OAuthClient holds one provider's client registration. A provider with
// an empty ClientID is disabled.
type OAuthClient struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

func (c OAuthClient) Enabled() bool {
	return c.ClientID != ""
}

// Load reads config.yaml when present; environment variables override it.
// Keys map to env names by upper-casing and replacing dots with
// underscores (google.client_id -> GOOGLE_CLIENT_ID).
func Load() (Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.port", "8080")
	v.SetDefault("app.env", "development")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "")

	v.SetDefault("google.client_id", "")
	v.SetDefault("google.client_secret", "")
	v.SetDefault("google.redirect_url", "")
	v.SetDefault("google.scopes", []string{"openid", "profile", "email"})

	v.SetDefault("yahoo.client_id", "")
	v.SetDefault("yahoo.client_secret", "")
	v.SetDefault("yahoo.redirect_url", "")
	v.SetDefault("yahoo.scopes", []string{"sdps-r"})

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("database.dsn", "")

	v.SetDefault("session.ttl", 24*time.Hour)
	v.SetDefault("profile_cache.ttl", time.Hour)
}

func fromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		AppPort:   v.GetString("app.port"),
		AppEnv:    v.GetString("app.env"),
		LogLevel:  v.GetString("log.level"),
		LogFormat: v.GetString("log.format"),

		Google: oauthClient(v, "google"),
		Yahoo:  oauthClient(v, "yahoo"),

		RedisAddr:     v.GetString("redis.addr"),
		RedisPassword: v.GetString("redis.password"),
		RedisDB:       v.GetInt("redis.db"),

		DatabaseDSN: v.GetString("database.dsn"),

		SessionTTL:      v.GetDuration("session.ttl"),
		ProfileCacheTTL: v.GetDuration("profile_cache.ttl"),
	}

	if cfg.LogFormat == "" {
		cfg.LogFormat = "console"
		if cfg.AppEnv == "production" {
			cfg.LogFormat = "json"
		}
	}

	if cfg.SessionTTL <= 0 {
		return Config{}, errors.New("session ttl must be positive")
	}
	if cfg.ProfileCacheTTL <= 0 {
		return Config{}, errors.New("profile cache ttl must be positive")
	}

	return cfg, nil
}

func oauthClient(v *viper.Viper, name string) OAuthClient {
	return OAuthClient{
		ClientID:     v.GetString(name + ".client_id"),
		ClientSecret: v.GetString(name + ".client_secret"),
		RedirectURL:  v.GetString(name + ".redirect_url"),
		Scopes:       v.GetStringSlice(name + ".scopes"),
	}
}

// Validate checks what the HTTP service needs to start.
func (c Config) Validate() error {
	if !c.Google.Enabled() && !c.Yahoo.Enabled() {
		return errors.New("no oauth provider configured")
	}
	for name, p := range map[string]OAuthClient{"google": c.Google, "yahoo": c.Yahoo} {
		if p.Enabled() && (p.ClientSecret == "" || p.RedirectURL == "") {
			return fmt.Errorf("%s oauth config missing required fields", name)
		}
	}
	if c.DatabaseDSN == "" {
		return errors.New("database dsn is required")
	}
	return nil
}
