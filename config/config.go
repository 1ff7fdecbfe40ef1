package config

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// APIConfig is everything the resource API needs at startup. Loaded once,
// passed by value, never mutated afterwards.
type APIConfig struct {
	Port           string
	DatabaseDSN    string
	APIKey         string
	AllowedOrigins []string
}

// WebConfig configures the front-end service.
type WebConfig struct {
	Port         string
	APIBaseURL   string
	APITimeout   time.Duration
	TemplatesDir string
}

func LoadAPI() (APIConfig, error) {
	cfg := APIConfig{
		Port:        envOr("API_PORT", "8083"),
		DatabaseDSN: envOr("DATABASE_DSN", "cafes.db"),
		APIKey:      os.Getenv("CAFE_API_KEY"),
	}
	if cfg.APIKey == "" {
		return APIConfig{}, errors.New("CAFE_API_KEY must be set")
	}
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = []string{origins}
	}
	return cfg, nil
}

func LoadWeb() (WebConfig, error) {
	cfg := WebConfig{
		Port:         envOr("WEB_PORT", "8080"),
		APIBaseURL:   envOr("CAFE_API_URL", "http://127.0.0.1:8083"),
		APITimeout:   5 * time.Second,
		TemplatesDir: envOr("WEB_TEMPLATES", "web/templates"),
	}
	if raw := os.Getenv("CAFE_API_TIMEOUT"); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return WebConfig{}, fmt.Errorf("invalid CAFE_API_TIMEOUT: %w", err)
		}
		cfg.APITimeout = timeout
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
