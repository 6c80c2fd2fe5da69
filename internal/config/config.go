package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds every runtime knob, sourced from the environment.
type Config struct {
	Port      string
	CachePath string

	// BrowserMode selects the launch strategy: "local" or "sandbox"
	BrowserMode string
	// ChromeBin overrides browser binary discovery
	ChromeBin string

	// FetchTimeout bounds each listing page fetch
	FetchTimeout time.Duration
	// DecodeTimeout bounds the VIN decode API call
	DecodeTimeout time.Duration
	// RecallTimeout bounds the recalls API call
	RecallTimeout time.Duration
	// AnalysisBudget is the outer ceiling for a whole VIN analysis request
	AnalysisBudget time.Duration

	// RateLimitPerSecond / RateLimitBurst shape the per-IP API budget
	RateLimitPerSecond float64
	RateLimitBurst     int
}

// Load reads configuration from the environment, with defaults suitable
// for local development.
func Load() Config {
	return Config{
		Port:               envString("PORT", "8080"),
		CachePath:          envString("CACHE_PATH", "data/vinscout.db"),
		BrowserMode:        envString("BROWSER_MODE", "local"),
		ChromeBin:          envString("CHROME_BIN", ""),
		FetchTimeout:       envDuration("FETCH_TIMEOUT", 15*time.Second),
		DecodeTimeout:      envDuration("DECODE_TIMEOUT", 10*time.Second),
		RecallTimeout:      envDuration("RECALL_TIMEOUT", 10*time.Second),
		AnalysisBudget:     envDuration("ANALYSIS_BUDGET", 60*time.Second),
		RateLimitPerSecond: envFloat("RATE_LIMIT_PER_SECOND", 1),
		RateLimitBurst:     envInt("RATE_LIMIT_BURST", 10),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("[config] invalid duration for %s: %q, using %s", key, v, fallback)
		return fallback
	}
	return d
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[config] invalid integer for %s: %q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("[config] invalid number for %s: %q, using %v", key, v, fallback)
		return fallback
	}
	return f
}
