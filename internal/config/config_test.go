package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "0123456789abcdef0123456789abcdef"

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", secret)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.GoEnv)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "postgres", cfg.DBType)
	assert.True(t, cfg.DBAutoMigrate)
	assert.False(t, cfg.CacheEnabled())
	assert.Equal(t, 300*time.Second, cfg.CacheExpiry())
	assert.True(t, cfg.IsDevelopment())
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", secret)
	t.Setenv("GO_ENV", "production")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DB_TYPE", "sqlite")
	t.Setenv("DATABASE_URL", "file:bookshelf.db")
	t.Setenv("DB_AUTO_MIGRATE", "false")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("CACHE_TTL", "60")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("REQUEST_TIMEOUT", "2s")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.Equal(t, "sqlite", cfg.DBType)
	assert.False(t, cfg.DBAutoMigrate)
	assert.True(t, cfg.CacheEnabled())
	assert.Equal(t, time.Minute, cfg.CacheExpiry())
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
	assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestLoadConfig_BadNumber(t *testing.T) {
	t.Setenv("JWT_SECRET", secret)
	t.Setenv("HTTP_PORT", "eighty")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "HTTP_PORT")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			HTTPPort: 8080, DBType: "postgres", LogLevel: "info", LogFormat: "text",
			JWTSecret: secret, RateLimitRPS: 1, RateLimitBurst: 1, RequestTimeout: time.Second,
		}
	}
	require.NoError(t, valid().Validate())

	cases := map[string]func(c *Config){
		"HTTP_PORT":       func(c *Config) { c.HTTPPort = 0 },
		"DB_TYPE":         func(c *Config) { c.DBType = "mysql" },
		"LOG_LEVEL":       func(c *Config) { c.LogLevel = "trace" },
		"LOG_FORMAT":      func(c *Config) { c.LogFormat = "xml" },
		"JWT_SECRET":      func(c *Config) { c.JWTSecret = "short" },
		"RATE_LIMIT_RPS":  func(c *Config) { c.RateLimitBurst = 0 },
		"REQUEST_TIMEOUT": func(c *Config) { c.RequestTimeout = 0 },
	}
	for key, mutate := range cases {
		t.Run(key, func(t *testing.T) {
			c := valid()
			mutate(c)
			assert.ErrorContains(t, c.Validate(), key)
		})
	}
}
