// internal/config/config_test.go
package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 5*time.Second, cfg.LockTTL)
	assert.Equal(t, 50*time.Millisecond, cfg.LockRetry)
	assert.Equal(t, "uno_actions", cfg.HistorianQueue)
	assert.Equal(t, 20, cfg.HistorianBatchSize)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("REDIS_ADDR", "redis.internal:6380")
	t.Setenv("UNO_LOCK_TTL", "10s")
	t.Setenv("HISTORIAN_BATCH_SIZE", "50")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "redis.internal:6380", cfg.RedisAddr)
	assert.Equal(t, 10*time.Second, cfg.LockTTL)
	assert.Equal(t, 50, cfg.HistorianBatchSize)
}
