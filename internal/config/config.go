// Package config resolves cogniq settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds client configuration.
type Config struct {
	// APIURL is the base URL of the learning platform API.
	APIURL string

	// DBPath overrides the default local database location. Empty means
	// the XDG default.
	DBPath string

	// Timeout bounds a single HTTP request. Default: 15s.
	Timeout time.Duration

	// FeedbackDelay is the hold after an incorrect technical answer. It
	// replaces the catalog's delay; zero disables the hold. Default: 1.5s.
	FeedbackDelay time.Duration

	// SubmitConcurrency bounds in-flight record submissions. Default: 4.
	SubmitConcurrency int

	Retry  RetryConfig
	Server ServerConfig
}

// RetryConfig configures API retries for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// ServerConfig configures the local development server.
type ServerConfig struct {
	Addr      string
	JWTSecret string
	TokenTTL  time.Duration

	// AllowedOrigins feeds the CORS middleware.
	AllowedOrigins []string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		APIURL:            "http://localhost:8000",
		Timeout:           15 * time.Second,
		FeedbackDelay:     1500 * time.Millisecond,
		SubmitConcurrency: 4,
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 500 * time.Millisecond,
			MaxWait:     5 * time.Second,
			Multiplier:  2.0,
		},
		Server: ServerConfig{
			Addr:           ":8000",
			JWTSecret:      "cogniq-dev-secret",
			TokenTTL:       30 * time.Minute,
			AllowedOrigins: []string{"http://localhost:5173", "http://localhost:3000"},
		},
	}
}

// LoadDotEnv loads path into the process environment without overriding
// variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if u := os.Getenv("COGNIQ_API_URL"); u != "" {
		cfg.APIURL = u
	}
	if p := os.Getenv("COGNIQ_DB"); p != "" {
		cfg.DBPath = p
	}

	var err error
	if cfg.Timeout, err = envDuration("COGNIQ_TIMEOUT", cfg.Timeout); err != nil {
		return cfg, err
	}
	if cfg.FeedbackDelay, err = envDuration("COGNIQ_FEEDBACK_DELAY", cfg.FeedbackDelay); err != nil {
		return cfg, err
	}
	if v := os.Getenv("COGNIQ_SUBMIT_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("COGNIQ_SUBMIT_CONCURRENCY: %w", err)
		}
		cfg.SubmitConcurrency = n
	}

	if a := os.Getenv("COGNIQ_SERVE_ADDR"); a != "" {
		cfg.Server.Addr = a
	}
	if s := os.Getenv("COGNIQ_JWT_SECRET"); s != "" {
		cfg.Server.JWTSecret = s
	}

	return cfg, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

// Validate checks the configuration for values the client cannot run with.
func (c Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("COGNIQ_API_URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("COGNIQ_API_URL must be an http(s) URL, got %q", c.APIURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("COGNIQ_TIMEOUT must be positive, got %s", c.Timeout)
	}
	if c.FeedbackDelay < 0 {
		return fmt.Errorf("COGNIQ_FEEDBACK_DELAY must not be negative, got %s", c.FeedbackDelay)
	}
	if c.SubmitConcurrency < 1 {
		return fmt.Errorf("COGNIQ_SUBMIT_CONCURRENCY must be at least 1, got %d", c.SubmitConcurrency)
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry max attempts must be at least 1, got %d", c.Retry.MaxAttempts)
	}
	return nil
}
