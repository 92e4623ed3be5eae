// Package config loads settings from an optional .env file, an optional
// YAML file, and environment variables. Env vars win over YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all service configuration, injected from main.
type Config struct {
	Port       int    `yaml:"port" env:"PORT"`
	SQLitePath string `yaml:"sqlite_path" env:"OPPBOT_DB_PATH"`

	// DatabaseURL switches storage to Postgres when set.
	DatabaseURL string `yaml:"database_url" env:"DATABASE_URL"`
	RedisURL    string `yaml:"redis_url" env:"REDIS_URL"`

	// LLM enhancement; empty API key disables it.
	LLMAPIKey  string `yaml:"llm_api_key" env:"LLM_API_KEY"`
	LLMAPIBase string `yaml:"llm_api_base" env:"LLM_API_BASE"`
	LLMModel   string `yaml:"llm_model" env:"LLM_MODEL"`

	// Telegram notifications; empty token disables them.
	TelegramToken   string  `yaml:"telegram_token" env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID  int64   `yaml:"telegram_chat_id" env:"TELEGRAM_CHAT_ID"`
	NotifyThreshold float64 `yaml:"notify_threshold" env:"NOTIFY_THRESHOLD"`

	RescoreCron string `yaml:"rescore_cron" env:"RESCORE_CRON"`

	RateLimit float64 `yaml:"rate_limit" env:"RATE_LIMIT"`
	RateBurst int     `yaml:"rate_burst" env:"RATE_BURST"`

	CacheTTL        time.Duration `yaml:"cache_ttl" env:"CACHE_TTL"`
	CacheMaxEntries int           `yaml:"cache_max_entries" env:"CACHE_MAX_ENTRIES"`

	EnhanceTimeout time.Duration `yaml:"enhance_timeout" env:"ENHANCE_TIMEOUT"`
}

// Load reads .env, then the YAML file at path (skipped when missing),
// then applies env var overrides and defaults.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid PORT: %w", err)
		}
		c.Port = n
	}
	if v := os.Getenv("OPPBOT_DB_PATH"); v != "" {
		c.SQLitePath = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		c.RedisURL = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		c.LLMAPIKey = v
	}
	if v := os.Getenv("LLM_API_BASE"); v != "" {
		c.LLMAPIBase = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		c.LLMModel = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.TelegramToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("config: invalid TELEGRAM_CHAT_ID: %w", err)
		}
		c.TelegramChatID = id
	}
	if v := os.Getenv("NOTIFY_THRESHOLD"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: invalid NOTIFY_THRESHOLD: %w", err)
		}
		c.NotifyThreshold = f
	}
	if v := os.Getenv("RESCORE_CRON"); v != "" {
		c.RescoreCron = v
	}
	if v := os.Getenv("RATE_LIMIT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: invalid RATE_LIMIT: %w", err)
		}
		c.RateLimit = f
	}
	if v := os.Getenv("RATE_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid RATE_BURST: %w", err)
		}
		c.RateBurst = n
	}
	if v := os.Getenv("CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: invalid CACHE_TTL: %w", err)
		}
		c.CacheTTL = d
	}
	if v := os.Getenv("CACHE_MAX_ENTRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid CACHE_MAX_ENTRIES: %w", err)
		}
		c.CacheMaxEntries = n
	}
	if v := os.Getenv("ENHANCE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: invalid ENHANCE_TIMEOUT: %w", err)
		}
		c.EnhanceTimeout = d
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.SQLitePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		c.SQLitePath = filepath.Join(home, ".oppbot", "oppbot.db")
	}
	if c.LLMAPIBase == "" {
		c.LLMAPIBase = "https://api.openai.com/v1"
	}
	if c.LLMModel == "" {
		c.LLMModel = "gpt-4o-mini"
	}
	if c.NotifyThreshold == 0 {
		c.NotifyThreshold = 8.0
	}
	if c.RescoreCron == "" {
		c.RescoreCron = "0 6 * * *"
	}
	if c.RateLimit == 0 {
		c.RateLimit = 5
	}
	if c.RateBurst == 0 {
		c.RateBurst = 10
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = 15 * time.Minute
	}
	if c.CacheMaxEntries == 0 {
		c.CacheMaxEntries = 1000
	}
	if c.EnhanceTimeout == 0 {
		c.EnhanceTimeout = 20 * time.Second
	}
}
