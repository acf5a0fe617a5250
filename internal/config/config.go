package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v10"
)

// Config 聚合整个服务的配置项。
type Config struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"zainjo-backend"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Port        string `env:"PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	DataDir            string `env:"ZAINJO_DATA_DIR" envDefault:"./data"`
	ChunkDir           string `env:"ZAINJO_CHUNK_DIR"`
	AnalyticsCachePath string `env:"ZAINJO_ANALYTICS_CACHE"`
	ChunkCacheSize     int    `env:"ZAINJO_CHUNK_CACHE_SIZE" envDefault:"8"`

	// Addr is derived from Port, never read from the environment directly.
	Addr string `env:"-"`
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	addr, err := normalizeAddr(cfg.Port)
	if err != nil {
		return nil, err
	}
	cfg.Addr = addr

	if cfg.ChunkDir == "" {
		cfg.ChunkDir = filepath.Join(cfg.DataDir, "zainjo-chunks")
	}
	if cfg.AnalyticsCachePath == "" {
		cfg.AnalyticsCachePath = filepath.Join(cfg.DataDir, "zainjo-analytics.json")
	}
	if cfg.ChunkCacheSize < 1 {
		cfg.ChunkCacheSize = 1
	}

	return cfg, nil
}

// normalizeAddr 解析服务器监听地址。
func normalizeAddr(port string) (string, error) {
	port = strings.TrimSpace(port)
	if port == "" {
		return ":8080", nil
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":8080" 或 "127.0.0.1:8080"。
		return port, nil
	}

	if strings.Contains(port, " ") {
		return "", fmt.Errorf("invalid PORT value: %q", port)
	}

	return ":" + port, nil
}
