// Package config loads and validates environment variables at startup.
// Fail-fast: if a required variable is missing or malformed, the process
// exits with an error.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all runtime configuration for the matching service.
type Config struct {
	Port              string
	DatabaseURL       string
	RedisURL          string
	RecalcIntervalHrs int
	BrowseRatePerSec  float64
	BrowseBurst       int
}

// Load reads environment variables and returns a validated Config.
func Load() (*Config, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required")
	}

	port := os.Getenv("MATCHING_PORT")
	if port == "" {
		port = "8083"
	}

	recalc, err := intEnv("RECALC_INTERVAL_HOURS", 6)
	if err != nil {
		return nil, err
	}
	if recalc < 1 {
		return nil, fmt.Errorf("RECALC_INTERVAL_HOURS must be >= 1")
	}

	ratePerSec, err := floatEnv("BROWSE_RATE_PER_SEC", 5)
	if err != nil {
		return nil, err
	}

	burst, err := intEnv("BROWSE_BURST", 10)
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:              port,
		DatabaseURL:       dbURL,
		RedisURL:          redisURL,
		RecalcIntervalHrs: recalc,
		BrowseRatePerSec:  ratePerSec,
		BrowseBurst:       burst,
	}, nil
}

func intEnv(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return v, nil
}

func floatEnv(key string, def float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return v, nil
}
