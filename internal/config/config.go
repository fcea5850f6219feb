package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the server configuration, loaded from an optional YAML file.
// Flags layer on top of it in the CLI.
type Config struct {
	Listen     string `yaml:"listen"`
	BaseURL    string `yaml:"base_url"`
	StaticDir  string `yaml:"static_dir"`
	CORSOrigin string `yaml:"cors_origin"`
	LogLevel   string `yaml:"log_level"`

	Redis RedisConfig `yaml:"redis"`
}

// RedisConfig configures the optional Redis-backed surface store. An empty
// Addr means the in-memory store is used.
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	Prefix   string        `yaml:"prefix"`
	TTL      time.Duration `yaml:"ttl"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Listen:     ":10004",
		BaseURL:    "http://localhost:10004",
		CORSOrigin: "*",
		LogLevel:   "info",
	}
}

// Load reads the configuration from path. A missing file is not an error:
// the defaults are returned, so the server runs with zero setup.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
