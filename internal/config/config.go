// Package config assembles runtime configuration from the
// environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	DatabaseURL string
	Port        string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// AuthTokenHash is the hex SHA-256 of the staff bearer token.
	AuthTokenHash string

	BotToken        string
	BotWhitelist    []int64
	OrderRecipients []int64
	APIBaseURL      string
	NotifyTimeout   time.Duration

	CacheTTL time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		Port:          getenv("PORT", "8080"),
		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		AuthTokenHash: os.Getenv("AUTH_TOKEN_HASH"),
		BotToken:      os.Getenv("TELEGRAM_BOT_TOKEN"),
		APIBaseURL:    getenv("API_BASE_URL", "http://localhost:8080"),
	}
	var err error
	if cfg.RedisDB, err = intEnv("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.BotWhitelist, err = idListEnv("TELEGRAM_BOT_WHITELIST"); err != nil {
		return nil, err
	}
	if cfg.OrderRecipients, err = idListEnv("TELEGRAM_ORDER_RECIPIENTS"); err != nil {
		return nil, err
	}
	if cfg.NotifyTimeout, err = durationEnv("NOTIFY_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = durationEnv("CACHE_TTL", 10*time.Minute); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

// idListEnv parses a comma-separated list of Telegram chat ids.
func idListEnv(key string) ([]int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return nil, nil
	}
	parts := strings.Split(v, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: bad chat id %q: %w", key, p, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
