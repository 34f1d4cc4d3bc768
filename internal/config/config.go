package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Auth. Empty disables bearer-token auth.
	APIKey string

	// Upload limits
	MaxUploadBytes int64

	// Math resolution
	MathConcurrency     int
	TranslatorCmd       string
	TranslatorTimeout   time.Duration
	MaxTranslatorOutput int64

	// Vector rasterization
	RasterizerCmd     string
	RasterizerTimeout time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		APIKey: os.Getenv("EXAMGEST_API_KEY"),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		MathConcurrency:     envInt("MATH_CONCURRENCY", 3),
		TranslatorCmd:       envOr("MATH_TRANSLATOR_CMD", "mt2mml"),
		TranslatorTimeout:   envDuration("MATH_TRANSLATOR_TIMEOUT", 30*time.Second),
		MaxTranslatorOutput: envInt64("MAX_TRANSLATOR_OUTPUT", 20<<20), // 20MB

		RasterizerCmd:     envOr("RASTERIZER_CMD", "convert"),
		RasterizerTimeout: envDuration("RASTERIZER_TIMEOUT", 30*time.Second),
	}

	if cfg.MathConcurrency <= 0 {
		cfg.MathConcurrency = 3
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.TranslatorTimeout <= 0 {
		cfg.TranslatorTimeout = 30 * time.Second
	}
	if cfg.RasterizerTimeout <= 0 {
		cfg.RasterizerTimeout = 30 * time.Second
	}
	if cfg.MaxTranslatorOutput <= 0 {
		cfg.MaxTranslatorOutput = 20 << 20
	}

	return cfg
}

func (c Config) Validate() error {
	if c.TranslatorCmd == "" {
		return fmt.Errorf("MATH_TRANSLATOR_CMD must not be empty")
	}
	if c.RasterizerCmd == "" {
		return fmt.Errorf("RASTERIZER_CMD must not be empty")
	}
	if c.MathConcurrency > 64 {
		return fmt.Errorf("MATH_CONCURRENCY %d is unreasonably high", c.MathConcurrency)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
