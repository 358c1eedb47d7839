package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config 服务端配置
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Redis    RedisConfig    `yaml:"redis"`
	Postgres PostgresConfig `yaml:"postgres"`
	Game     GameConfig     `yaml:"game"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig WebSocket 服务器配置
type ServerConfig struct {
	Host           string   `yaml:"host"`
	Port           int      `yaml:"port"`
	MaxConnections int      `yaml:"max_connections"`
	AllowedOrigins []string `yaml:"allowed_origins"` // 为空时允许所有来源
}

// RedisConfig Redis 配置，Addr 为空时不启用
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// PostgresConfig 对局历史库，DSN 为空时不启用
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// GameConfig 游戏配置
type GameConfig struct {
	ResolveDelayMs        int `yaml:"resolve_delay_ms"`        // 第二张牌亮出到结算的间隔
	DrawDelayMs           int `yaml:"draw_delay_ms"`           // 结算到补牌的间隔
	BotDelayMs            int `yaml:"bot_delay_ms"`            // 托管出牌前的停顿
	RoomTimeout           int `yaml:"room_timeout"`            // 房间等待超时（分钟）
	ShutdownTimeout       int `yaml:"shutdown_timeout"`        // 优雅关闭等待对局结束的上限（秒）
	ShutdownCheckInterval int `yaml:"shutdown_check_interval"` // 优雅关闭检查间隔（秒）
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `yaml:"level"`  // debug/info/warn/error
	Format string `yaml:"format"` // text/json
	File   string `yaml:"file"`   // 为空时输出到 stdout
}

// ResolveDelay 返回结算前的停顿
func (c *GameConfig) ResolveDelay() time.Duration {
	return time.Duration(c.ResolveDelayMs) * time.Millisecond
}

// DrawDelay 返回补牌前的停顿
func (c *GameConfig) DrawDelay() time.Duration {
	return time.Duration(c.DrawDelayMs) * time.Millisecond
}

// BotDelay 返回托管出牌前的停顿
func (c *GameConfig) BotDelay() time.Duration {
	return time.Duration(c.BotDelayMs) * time.Millisecond
}

// RoomTimeoutDuration 返回房间等待超时时长
func (c *GameConfig) RoomTimeoutDuration() time.Duration {
	return time.Duration(c.RoomTimeout) * time.Minute
}

// ShutdownTimeoutDuration 返回优雅关闭超时
func (c *GameConfig) ShutdownTimeoutDuration() time.Duration {
	return time.Duration(c.ShutdownTimeout) * time.Second
}

// ShutdownCheckIntervalDuration 返回优雅关闭检查间隔
func (c *GameConfig) ShutdownCheckIntervalDuration() time.Duration {
	return time.Duration(c.ShutdownCheckInterval) * time.Second
}

// Addr 监听地址
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load 加载配置文件，再用 .env 和环境变量覆盖
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default 返回默认配置（同样应用环境变量）
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	_ = cfg.applyEnv()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 3001
	}
	if c.Server.MaxConnections == 0 {
		c.Server.MaxConnections = 1000
	}
	if c.Game.ResolveDelayMs == 0 {
		c.Game.ResolveDelayMs = 1500
	}
	if c.Game.DrawDelayMs == 0 {
		c.Game.DrawDelayMs = 1000
	}
	if c.Game.BotDelayMs == 0 {
		c.Game.BotDelayMs = 1000
	}
	if c.Game.RoomTimeout == 0 {
		c.Game.RoomTimeout = 10
	}
	if c.Game.ShutdownTimeout == 0 {
		c.Game.ShutdownTimeout = 300
	}
	if c.Game.ShutdownCheckInterval == 0 {
		c.Game.ShutdownCheckInterval = 5
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// applyEnv 环境变量优先于配置文件，.env 不存在时忽略
func (c *Config) applyEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}
	overrides := map[string]*string{
		"HOST":           &c.Server.Host,
		"REDIS_ADDR":     &c.Redis.Addr,
		"REDIS_PASSWORD": &c.Redis.Password,
		"POSTGRES_DSN":   &c.Postgres.DSN,
		"LOG_LEVEL":      &c.Log.Level,
		"LOG_FORMAT":     &c.Log.Format,
	}
	for key, field := range overrides {
		if v, ok := os.LookupEnv(key); ok {
			*field = v
		}
	}
	return nil
}
