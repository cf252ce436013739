package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config carries everything main needs to wire the application. Values come
// from the environment; a local .env file is loaded by main before this runs.
type Config struct {
	DatabaseURL string
	ServerPort  string

	JWTSecretKey string
	TokenTTL     time.Duration

	CORSAllowedOrigins []string

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string
}

func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		ServerPort:   getEnv("SERVER_PORT", "8080"),
		JWTSecretKey: os.Getenv("JWT_SECRET_KEY"),
		TokenTTL:     getEnvDuration("TOKEN_TTL_HOURS", 24) * time.Hour,

		R2AccountID:       os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:      os.Getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL:   os.Getenv("R2_PUBLIC_BASE_URL"),
	}

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		for _, origin := range strings.Split(origins, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, trimmed)
			}
		}
	} else {
		cfg.CORSAllowedOrigins = []string{"http://localhost:3000"}
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	if cfg.JWTSecretKey == "" {
		return nil, errors.New("JWT_SECRET_KEY is required")
	}
	return cfg, nil
}

// R2Configured reports whether all object storage settings are present.
// Without them the application runs with uploads disabled.
func (c *Config) R2Configured() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" &&
		c.R2SecretAccessKey != "" && c.R2BucketName != "" && c.R2PublicBaseURL != ""
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallbackHours int) time.Duration {
	if raw := os.Getenv(key); raw != "" {
		if hours, err := strconv.Atoi(raw); err == nil && hours > 0 {
			return time.Duration(hours)
		}
	}
	return time.Duration(fallbackHours)
}
