package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3/log"
	"github.com/pelletier/go-toml/v2"
	"github.com/samber/lo"
)

// ============================================================
// Configuration
// ============================================================

type Config struct {
	Port         string   `toml:"port"`
	Environment  string   `toml:"environment"`
	ReadTimeout  int      `toml:"read_timeout"`
	WriteTimeout int      `toml:"write_timeout"`
	DBPath       string   `toml:"db_path"`
	DebounceMS   int      `toml:"debounce_ms"`
	AllowOrigins []string `toml:"allow_origins"`
	LogLevel     string   `toml:"log_level"`
}

func defaults() *Config {
	return &Config{
		Port:         "3000",
		Environment:  "development",
		ReadTimeout:  10,
		WriteTimeout: 10,
		DBPath:       "data/creator.db",
		DebounceMS:   250,
		AllowOrigins: []string{"*"},
		LogLevel:     "info",
	}
}

// Load загружает конфигурацию: значения по умолчанию, затем TOML файл из
// CREATOR_CONFIG (если задан), затем переменные окружения.
func Load() *Config {
	cfg := defaults()
	if path := os.Getenv("CREATOR_CONFIG"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			log.Warnf("[CONFIG] %v, using defaults", err)
		}
	}
	cfg.applyEnv()
	return cfg
}

// LoadFile reads a TOML file over the defaults without env overrides.
func LoadFile(path string) (*Config, error) {
	cfg := defaults()
	if err := cfg.mergeFile(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Port = getEnv("PORT", c.Port)
	c.Environment = getEnv("ENV", c.Environment)
	c.ReadTimeout = getEnvAsInt("READ_TIMEOUT", c.ReadTimeout)
	c.WriteTimeout = getEnvAsInt("WRITE_TIMEOUT", c.WriteTimeout)
	c.DBPath = getEnv("CREATOR_DB_PATH", c.DBPath)
	c.DebounceMS = getEnvAsInt("CREATOR_DEBOUNCE_MS", c.DebounceMS)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	if origins := getEnvAsList("CORS_ORIGINS"); len(origins) > 0 {
		c.AllowOrigins = origins
	}
}

// Debounce - пауза ввода цвета перед применением.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// Level maps LOG_LEVEL onto fiber's logger levels. Unknown names mean info.
func (c *Config) Level() log.Level {
	switch strings.ToLower(c.LogLevel) {
	case "trace":
		return log.LevelTrace
	case "debug":
		return log.LevelDebug
	case "warn", "warning":
		return log.LevelWarn
	case "error":
		return log.LevelError
	default:
		return log.LevelInfo
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	return lo.Compact(lo.Map(strings.Split(value, ","), func(s string, _ int) string {
		return strings.TrimSpace(s)
	}))
}
