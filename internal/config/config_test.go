package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ValidConfig(t *testing.T) {
	t.Parallel()

	content := `
server:
  host: "127.0.0.1"
  port: 8080

redis:
  addr: "redis:6379"
  password: "secret"
  db: 1

game:
  turn_timeout: 60
  ready_delay: 5
  bot_think_min_ms: 500
  bot_think_max_ms: 1500
  room_idle_timeout: 15
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	err := os.WriteFile(configPath, []byte(content), 0o600)
	require.NoError(t, err)

	cfg, err := Load(configPath)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, "secret", cfg.Redis.Password)
	assert.Equal(t, 1, cfg.Redis.DB)
	assert.Equal(t, 60*time.Second, cfg.Game.TurnTimeoutDuration())
	assert.Equal(t, 5*time.Second, cfg.Game.ReadyDelayDuration())
	assert.Equal(t, 500*time.Millisecond, cfg.Game.BotThinkMin())
	assert.Equal(t, 1500*time.Millisecond, cfg.Game.BotThinkMax())
	assert.Equal(t, 15*time.Minute, cfg.Game.RoomIdleTimeoutDuration())
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestLoad_AppliesDefaults(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	err := os.WriteFile(configPath, []byte("server:\n  port: 9000\n"), 0o600)
	require.NoError(t, err)

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 30, cfg.Game.TurnTimeout)
	assert.Equal(t, 3, cfg.Game.ReadyDelay)
	assert.Equal(t, 800, cfg.Game.BotThinkMinMs)
	assert.Equal(t, 2000, cfg.Game.BotThinkMaxMs)
	assert.Equal(t, 10, cfg.Game.RoomIdleTimeout)
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.Equal(t, 1790, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Game.TurnTimeoutDuration())
	assert.LessOrEqual(t, cfg.Game.BotThinkMin(), cfg.Game.BotThinkMax())
}
