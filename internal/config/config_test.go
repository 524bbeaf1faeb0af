package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("REDIS_HOST", "")
	t.Setenv("DB_CONNECT_ATTEMPTS", "")

	cfg := FromEnv()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "mongo", cfg.StoreDriver)
	assert.Equal(t, 3, cfg.Retry.Attempts)
	assert.Equal(t, time.Second, cfg.Retry.Backoff)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, "charset=utf8mb4&parseTime=True&loc=Local", cfg.MySQL.Params)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_DRIVER", "mysql")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("DB_CONNECT_ATTEMPTS", "5")
	t.Setenv("DB_CONNECT_BACKOFF", "250ms")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("MYSQL_MAX_OPEN_CONNS", "not-a-number")

	cfg := FromEnv()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "mysql", cfg.StoreDriver)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Equal(t, 5, cfg.Retry.Attempts)
	assert.Equal(t, 250*time.Millisecond, cfg.Retry.Backoff)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 50, cfg.MySQL.MaxOpenConns)
}
