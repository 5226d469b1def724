// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"time"
)

// Config holds everything the import flow needs. All fields are optional;
// the API path simply stays unavailable without the credential pair.
type Config struct {
	// OAuth credential pair, read-only for the lifetime of the run.
	LinkedInClientID     string `json:"linkedin_client_id,omitempty"`
	LinkedInClientSecret string `json:"linkedin_client_secret,omitempty"`

	// RedirectURL must match the provider registration exactly.
	RedirectURL string `json:"redirect_url,omitempty"`
	// AuthTimeout bounds the OAuth browser round-trip wait, e.g. "3m".
	AuthTimeout string `json:"auth_timeout,omitempty"`

	// ProfileFile is the local profile JSON path.
	ProfileFile string `json:"profile_file,omitempty"`
	// DatabaseURL enables the PostgreSQL import-session history.
	DatabaseURL string `json:"database_url,omitempty"`
	// GeminiAPIKey enables AI profile structuring and summaries.
	GeminiAPIKey string `json:"gemini_api_key,omitempty"`

	Verbose bool `json:"verbose,omitempty"`
}

// FromEnv builds a Config from environment variables. godotenv has already
// folded any .env file into the environment by the time this runs.
func FromEnv() *Config {
	return &Config{
		LinkedInClientID:     os.Getenv("LINKEDIN_CLIENT_ID"),
		LinkedInClientSecret: os.Getenv("LINKEDIN_CLIENT_SECRET"),
		RedirectURL:          os.Getenv("AIPPLY_REDIRECT_URL"),
		AuthTimeout:          os.Getenv("AIPPLY_AUTH_TIMEOUT"),
		ProfileFile:          os.Getenv("AIPPLY_PROFILE_FILE"),
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		GeminiAPIKey:         os.Getenv("GEMINI_API_KEY"),
	}
}

// LoadFile loads configuration defaults from a JSON file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	return &cfg, nil
}

// Load merges the environment over an optional JSON config file; environment
// values win so credentials can always be supplied without touching files.
func Load(configPath string) (*Config, error) {
	env := FromEnv()
	if configPath == "" {
		return env, nil
	}
	fileCfg, err := LoadFile(configPath)
	if err != nil {
		return nil, err
	}
	merged := env.MergeWithDefaults(*fileCfg)
	return &merged, nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c
	if result.LinkedInClientID == "" {
		result.LinkedInClientID = defaults.LinkedInClientID
	}
	if result.LinkedInClientSecret == "" {
		result.LinkedInClientSecret = defaults.LinkedInClientSecret
	}
	if result.RedirectURL == "" {
		result.RedirectURL = defaults.RedirectURL
	}
	if result.AuthTimeout == "" {
		result.AuthTimeout = defaults.AuthTimeout
	}
	if result.ProfileFile == "" {
		result.ProfileFile = defaults.ProfileFile
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	// Bool fields: cannot distinguish unset from false, CLI flags win.
	return result
}

// HasLinkedInCredentials reports whether the API import path can be offered.
func (c *Config) HasLinkedInCredentials() bool {
	return c.LinkedInClientID != "" && c.LinkedInClientSecret != ""
}

// ParsedAuthTimeout returns the configured wait bound, or the fallback when
// unset or malformed.
func (c *Config) ParsedAuthTimeout(fallback time.Duration) time.Duration {
	if c.AuthTimeout == "" {
		return fallback
	}
	d, err := time.ParseDuration(c.AuthTimeout)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// Validate checks that the configuration values are well formed.
func (c *Config) Validate() error {
	if c.RedirectURL != "" {
		u, err := url.Parse(c.RedirectURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("config error: 'redirect_url' is not a valid URL: %s", c.RedirectURL)
		}
	}
	if c.AuthTimeout != "" {
		if _, err := time.ParseDuration(c.AuthTimeout); err != nil {
			return fmt.Errorf("config error: 'auth_timeout' is not a valid duration: %s", c.AuthTimeout)
		}
	}
	return nil
}
