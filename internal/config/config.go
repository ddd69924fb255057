// Package config loads and validates environment variables at startup.
// Fail-fast: if a variable is missing or malformed, Load returns an error
// and the process exits.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage backends.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Collection store modes.
const (
	StoreLastWriterWins = "lww"
	StoreVersioned      = "versioned"
)

// Config holds all runtime configuration for the jobboard service.
type Config struct {
	Port string

	StorageBackend string
	DataDir        string // file backend only
	RedisURL       string
	DatabaseURL    string
	StoreMode      string

	JobsFile      string
	AdzunaAppID   string
	AdzunaAppKey  string
	AdzunaCountry string // e.g. "fr", "gb", "us"
	AdzunaWhat    []string
	AdzunaWhere   []string
	ExcludeTerms  []string

	RefreshIntervalHours int

	SubmitLatency     time.Duration
	SubmitEndpoint    string // when set, submissions are POSTed here
	EventsEnabled     bool   // requires REDIS_URL
	StrictTransitions bool

	LogLevel  string
	LogFormat string
}

// Load reads environment variables and returns a validated Config.
func Load() (*Config, error) {
	cfg := &Config{
		Port:           getenv("JOBBOARD_PORT", "8083"),
		StorageBackend: getenv("STORAGE_BACKEND", BackendFile),
		DataDir:        getenv("DATA_DIR", "./data"),
		RedisURL:       os.Getenv("REDIS_URL"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		StoreMode:      getenv("STORE_MODE", StoreLastWriterWins),
		JobsFile:       os.Getenv("JOBS_FILE"),
		AdzunaAppID:    os.Getenv("ADZUNA_APP_ID"),
		AdzunaAppKey:   os.Getenv("ADZUNA_APP_KEY"),
		AdzunaCountry:  getenv("ADZUNA_COUNTRY", "fr"),
		AdzunaWhat:     list("ADZUNA_WHAT"),
		AdzunaWhere:    list("ADZUNA_WHERE"),
		ExcludeTerms:   list("EXCLUDE_TERMS"),
		SubmitEndpoint: os.Getenv("SUBMIT_ENDPOINT"),
		LogLevel:       getenv("LOG_LEVEL", "info"),
		LogFormat:      getenv("LOG_FORMAT", "json"),
	}

	switch cfg.StorageBackend {
	case BackendMemory, BackendFile:
	case BackendRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("REDIS_URL is required for STORAGE_BACKEND=redis")
		}
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for STORAGE_BACKEND=postgres")
		}
	default:
		return nil, fmt.Errorf("STORAGE_BACKEND must be one of memory, file, redis, postgres, got %q", cfg.StorageBackend)
	}

	if cfg.StoreMode != StoreLastWriterWins && cfg.StoreMode != StoreVersioned {
		return nil, fmt.Errorf("STORE_MODE must be lww or versioned, got %q", cfg.StoreMode)
	}

	cfg.RefreshIntervalHours = 6
	if s := os.Getenv("REFRESH_INTERVAL_HOURS"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("REFRESH_INTERVAL_HOURS must be a positive integer, got %q", s)
		}
		cfg.RefreshIntervalHours = v
	}

	cfg.SubmitLatency = time.Second
	if s := os.Getenv("SUBMIT_LATENCY"); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("SUBMIT_LATENCY must be a non-negative duration, got %q", s)
		}
		cfg.SubmitLatency = d
	}

	var err error
	if cfg.EventsEnabled, err = boolean("EVENTS_ENABLED"); err != nil {
		return nil, err
	}
	if cfg.EventsEnabled && cfg.RedisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required when EVENTS_ENABLED is set")
	}
	if cfg.StrictTransitions, err = boolean("STRICT_TRANSITIONS"); err != nil {
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

// list splits a comma-separated variable, dropping blanks.
func list(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func boolean(key string) (bool, error) {
	s := os.Getenv(key)
	if s == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", key, s)
	}
	return v, nil
}
