// Package config handles unread configuration loading and validation.
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/jwafle/unread/internal/format"
	"github.com/jwafle/unread/internal/transport"
)

// Config is the root configuration structure for unread.
type Config struct {
	// Server is the base URL of the mail service.
	Server string `yaml:"server" mapstructure:"server"`

	// PollInterval is the time between requests.
	PollInterval time.Duration `yaml:"poll_interval" mapstructure:"poll_interval"`

	// SubjectLimit is the number of subject characters shown before "...".
	SubjectLimit int `yaml:"subject_limit" mapstructure:"subject_limit"`

	// UTC formats timestamps in UTC instead of local time.
	UTC bool `yaml:"utc" mapstructure:"utc"`

	// Plain disables the interactive table.
	Plain bool `yaml:"plain" mapstructure:"plain"`

	// Logging settings
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `yaml:"level" mapstructure:"level"`

	// Format is the output format (json, console).
	Format string `yaml:"format" mapstructure:"format"`

	// File is an optional log file path.
	File string `yaml:"file" mapstructure:"file"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server:       "http://127.0.0.1:8080",
		PollInterval: transport.DefaultInterval,
		SubjectLimit: format.DefaultLimit,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Server)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("server must be an http(s) URL, got %q", c.Server)
	}

	if c.PollInterval < 100*time.Millisecond {
		return fmt.Errorf("poll_interval must be at least 100ms")
	}

	if c.SubjectLimit < 1 {
		return fmt.Errorf("subject_limit must be at least 1")
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be one of console, json")
	}

	return nil
}

// Location returns the zone timestamps are rendered in.
func (c *Config) Location() *time.Location {
	if c.UTC {
		return time.UTC
	}
	return time.Local
}
