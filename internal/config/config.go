// Package config loads service settings from the environment or a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Cache backends for channel lists.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheSQLite = "sqlite"
)

// ErrMissingSourceStore is returned when neither a database nor a sources file is configured.
var ErrMissingSourceStore = errors.New("config: DATABASE_URL or SOURCES_FILE is required")

// Config holds application configuration.
type Config struct {
	DatabaseURL    string        `yaml:"database_url"`
	RedisURL       string        `yaml:"redis_url"`
	ServerPort     string        `yaml:"server_port"`
	UserAgent      string        `yaml:"user_agent"`
	FetchTimeout   time.Duration `yaml:"fetch_timeout"`
	CacheBackend   string        `yaml:"cache_backend"`
	SQLitePath     string        `yaml:"sqlite_path"`
	SourcesFile    string        `yaml:"sources_file"`
	LogLevel       string        `yaml:"log_level"`
	RefreshWorkers int           `yaml:"refresh_workers"`
}

// Load builds config from environment variables, after applying .env.local and .env.
// DATABASE_URL or SOURCES_FILE is required; everything else has a default.
func Load() (*Config, error) {
	loadEnvFiles()

	c := &Config{
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		RedisURL:     os.Getenv("REDIS_URL"),
		ServerPort:   os.Getenv("SERVER_PORT"),
		UserAgent:    os.Getenv("FETCHER_USER_AGENT"),
		CacheBackend: os.Getenv("CACHE_BACKEND"),
		SQLitePath:   os.Getenv("SQLITE_PATH"),
		SourcesFile:  os.Getenv("SOURCES_FILE"),
		LogLevel:     os.Getenv("LOG_LEVEL"),
	}

	var err error
	if c.FetchTimeout, err = envDuration("FETCHER_TIMEOUT"); err != nil {
		return nil, err
	}
	if s := os.Getenv("REFRESH_WORKERS"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("config: REFRESH_WORKERS: %w", err)
		}
		c.RefreshWorkers = n
	}

	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func envDuration(name string) (time.Duration, error) {
	s := os.Getenv(name)
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", name, err)
	}
	return d, nil
}

func (c *Config) applyDefaults() {
	if c.ServerPort == "" {
		c.ServerPort = "8080"
	}
	if c.UserAgent == "" {
		c.UserAgent = "LiveChannels/1.0"
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = 30 * time.Second
	}
	c.CacheBackend = strings.ToLower(c.CacheBackend)
	if c.CacheBackend == "" {
		c.CacheBackend = CacheMemory
		if c.RedisURL != "" {
			c.CacheBackend = CacheRedis
		}
	}
	if c.SQLitePath == "" {
		c.SQLitePath = "livechannels.db"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.RefreshWorkers <= 0 {
		c.RefreshWorkers = 1
	}
}

// Validate checks the settings that have no usable default.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" && c.SourcesFile == "" {
		return ErrMissingSourceStore
	}
	switch c.CacheBackend {
	case CacheMemory, CacheSQLite:
	case CacheRedis:
		if c.RedisURL == "" {
			return errors.New("config: cache_backend redis requires REDIS_URL")
		}
	default:
		return fmt.Errorf("config: unknown cache_backend %q", c.CacheBackend)
	}
	return nil
}
