package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 服务端配置
type Config struct {
	Server ServerConfig `yaml:"server"`
	Redis  RedisConfig  `yaml:"redis"`
	Game   GameConfig   `yaml:"game"`
}

// ServerConfig WebSocket 服务器配置
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// GameConfig 游戏配置
type GameConfig struct {
	TurnTimeout     int `yaml:"turn_timeout"`      // 行动超时（秒）
	ReadyDelay      int `yaml:"ready_delay"`       // 全员就绪后到发牌的缓冲（秒）
	BotThinkMinMs   int `yaml:"bot_think_min_ms"`  // 机器人思考下限（毫秒）
	BotThinkMaxMs   int `yaml:"bot_think_max_ms"`  // 机器人思考上限（毫秒）
	RoomIdleTimeout int `yaml:"room_idle_timeout"` // 房间闲置回收（分钟）
}

// TurnTimeoutDuration 返回行动超时时长
func (c *GameConfig) TurnTimeoutDuration() time.Duration {
	return time.Duration(c.TurnTimeout) * time.Second
}

// ReadyDelayDuration 返回就绪缓冲时长
func (c *GameConfig) ReadyDelayDuration() time.Duration {
	return time.Duration(c.ReadyDelay) * time.Second
}

// BotThinkMin 返回机器人思考下限
func (c *GameConfig) BotThinkMin() time.Duration {
	return time.Duration(c.BotThinkMinMs) * time.Millisecond
}

// BotThinkMax 返回机器人思考上限
func (c *GameConfig) BotThinkMax() time.Duration {
	return time.Duration(c.BotThinkMaxMs) * time.Millisecond
}

// RoomIdleTimeoutDuration 返回房间闲置回收时长
func (c *GameConfig) RoomIdleTimeoutDuration() time.Duration {
	return time.Duration(c.RoomIdleTimeout) * time.Minute
}

// Load 加载配置文件
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// 设置默认值
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 1790
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	if cfg.Game.TurnTimeout == 0 {
		cfg.Game.TurnTimeout = 30
	}
	if cfg.Game.ReadyDelay == 0 {
		cfg.Game.ReadyDelay = 3
	}
	if cfg.Game.BotThinkMinMs == 0 {
		cfg.Game.BotThinkMinMs = 800
	}
	if cfg.Game.BotThinkMaxMs == 0 {
		cfg.Game.BotThinkMaxMs = 2000
	}
	if cfg.Game.RoomIdleTimeout == 0 {
		cfg.Game.RoomIdleTimeout = 10
	}

	return &cfg, nil
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 1790,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Game: GameConfig{
			TurnTimeout:     30,
			ReadyDelay:      3,
			BotThinkMinMs:   800,
			BotThinkMaxMs:   2000,
			RoomIdleTimeout: 10,
		},
	}
}
