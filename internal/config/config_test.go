// AngelaMos | 2026
// config_test.go

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadLayersDefaultsFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
app:
  name: Test Crew
database:
  url: postgres://file/db
  auto_migrate: true
redis:
  url: redis://file:6379
server:
  port: 9000
`), 0o600))

	t.Setenv("DATABASE_URL", "postgres://env/db")
	t.Setenv("PORT", "9090")
	t.Setenv("REDIS_URL", "redis://env:6379")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Test Crew", cfg.App.Name)
	assert.Equal(t, "postgres://env/db", cfg.Database.URL)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, "redis://env:6379", cfg.Redis.URL)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)

	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 720*time.Hour, cfg.JWT.AccessTokenExpire)
	assert.Equal(t, 10, cfg.AuthLimit.Requests)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, "0.0.0.0:9090", cfg.Server.Address())
	assert.False(t, cfg.IsProduction())
}

func validConfig() *Config {
	return &Config{
		App:       AppConfig{Environment: "development"},
		Server:    ServerConfig{ReadTimeout: time.Second, WriteTimeout: time.Second},
		Database:  DatabaseConfig{URL: "postgres://x"},
		Redis:     RedisConfig{URL: "redis://x"},
		JWT:       JWTConfig{PrivateKeyPath: "a", PublicKeyPath: "b", AccessTokenExpire: time.Hour},
		RateLimit: RateLimitConfig{Requests: 1},
		AuthLimit: RateLimitConfig{Requests: 1},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"valid", func(*Config) {}, ""},
		{"missing database", func(c *Config) { c.Database.URL = "" }, "DATABASE_URL"},
		{"missing redis", func(c *Config) { c.Redis.URL = "" }, "REDIS_URL"},
		{"missing private key", func(c *Config) { c.JWT.PrivateKeyPath = "" }, "JWT_PRIVATE_KEY_PATH"},
		{
			"wildcard with credentials",
			func(c *Config) {
				c.CORS.AllowCredentials = true
				c.CORS.AllowedOrigins = []string{"*"}
			},
			"wildcard",
		},
		{
			"insecure otel in production",
			func(c *Config) {
				c.App.Environment = "production"
				c.Otel.Enabled = true
				c.Otel.Insecure = true
			},
			"OTEL_INSECURE",
		},
		{"zero token lifetime", func(c *Config) { c.JWT.AccessTokenExpire = 0 }, "access_token_expire"},
		{"zero auth limit", func(c *Config) { c.AuthLimit.Requests = 0 }, "rate limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := validate(cfg)
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestEnvKeyReplacerIgnoresUnknownVars(t *testing.T) {
	assert.Equal(t, "database.url", envKeyReplacer("DATABASE_URL"))
	assert.Equal(t, "auth_rate_limit.requests", envKeyReplacer("AUTH_RATE_LIMIT_REQUESTS"))
	assert.Equal(t, "", envKeyReplacer("HOME"))
}
