package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	content := `
server:
  host: "127.0.0.1"
  port: 8080
  max_connections: 5000
  allowed_origins:
    - "http://localhost:3000"
    - "https://example.com"

redis:
  addr: "redis:6379"
  password: "secret"
  db: 1

postgres:
  dsn: "postgres://bisca@db/bisca"

game:
  resolve_delay_ms: 800
  draw_delay_ms: 400
  bot_delay_ms: 600
  room_timeout: 15
  shutdown_timeout: 60
  shutdown_check_interval: 2

log:
  level: debug
  format: json
`
	cfg, err := Load(writeConfig(t, content))
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5000, cfg.Server.MaxConnections)
	assert.Len(t, cfg.Server.AllowedOrigins, 2)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, "secret", cfg.Redis.Password)
	assert.Equal(t, 1, cfg.Redis.DB)
	assert.Equal(t, "postgres://bisca@db/bisca", cfg.Postgres.DSN)
	assert.Equal(t, 800*time.Millisecond, cfg.Game.ResolveDelay())
	assert.Equal(t, 400*time.Millisecond, cfg.Game.DrawDelay())
	assert.Equal(t, 600*time.Millisecond, cfg.Game.BotDelay())
	assert.Equal(t, 15*time.Minute, cfg.Game.RoomTimeoutDuration())
	assert.Equal(t, time.Minute, cfg.Game.ShutdownTimeoutDuration())
	assert.Equal(t, 2*time.Second, cfg.Game.ShutdownCheckIntervalDuration())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr())
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_InvalidYAML(t *testing.T) {
	cfg, err := Load(writeConfig(t, "server: [unclosed"))
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "server:\n  host: \"\"\n"))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 3001, cfg.Server.Port)
	assert.Equal(t, 1000, cfg.Server.MaxConnections)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Empty(t, cfg.Postgres.DSN)
	assert.Equal(t, 1500*time.Millisecond, cfg.Game.ResolveDelay())
	assert.Equal(t, time.Second, cfg.Game.DrawDelay())
	assert.Equal(t, time.Second, cfg.Game.BotDelay())
	assert.Equal(t, 10*time.Minute, cfg.Game.RoomTimeoutDuration())
	assert.Equal(t, 5*time.Minute, cfg.Game.ShutdownTimeoutDuration())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NotNil(t, cfg)
	assert.Equal(t, 3001, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Game.ShutdownCheckIntervalDuration())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "4100")
	t.Setenv("HOST", "10.0.0.1")
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("POSTGRES_DSN", "postgres://env")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load(writeConfig(t, "server:\n  port: 8080\nredis:\n  addr: file:6379\n"))
	require.NoError(t, err)

	assert.Equal(t, 4100, cfg.Server.Port)
	assert.Equal(t, "10.0.0.1", cfg.Server.Host)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Equal(t, "postgres://env", cfg.Postgres.DSN)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_InvalidPortEnv(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	_, err := Load(writeConfig(t, "server:\n  port: 8080\n"))
	assert.Error(t, err)
}
