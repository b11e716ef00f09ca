// Package config holds all chatpolish configuration: which provider
// polishes replies, the prompt and call timeout, the failure policy,
// and the mark retention window for the reclamation loop.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Failure modes for provider errors and timeouts.
const (
	FailureModeSendOriginal       = "send_original"
	FailureModeSendFailureMessage = "send_failure_message"
)

// Config holds all chatpolish configuration.
type Config struct {
	// Polish call settings
	Polish PolishConfig `yaml:"polish"`

	// What to send when the polish call fails
	Failure FailureConfig `yaml:"failure"`

	// Marker store reclamation
	Marks MarksConfig `yaml:"marks"`

	// LLM provider credentials
	Provider ProviderConfig `yaml:"provider"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// PolishConfig configures the rewrite call.
type PolishConfig struct {
	Provider string `yaml:"provider"` // provider id; empty = conversation default
	Prompt   string `yaml:"prompt"`   // empty = built-in default
	Timeout  string `yaml:"timeout"`
}

// FailureConfig configures what happens when the provider fails.
type FailureConfig struct {
	Mode    string `yaml:"mode"` // send_original, send_failure_message
	Message string `yaml:"message"`
}

// MarksConfig configures marker retention and the reaper period.
type MarksConfig struct {
	Retention     string `yaml:"retention"`
	CheckInterval string `yaml:"check_interval"`
}

// ProviderConfig configures the default LLM provider.
type ProviderConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// LoggingConfig configures the debug logger.
type LoggingConfig struct {
	DebugMode bool   `yaml:"debug_mode"`
	Level     string `yaml:"level"` // debug, info, warn, error
	Dir       string `yaml:"dir"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Polish: PolishConfig{
			Provider: "",
			Prompt:   "",
			Timeout:  "30s",
		},
		Failure: FailureConfig{
			Mode:    FailureModeSendOriginal,
			Message: "",
		},
		Marks: MarksConfig{
			Retention:     "300s",
			CheckInterval: "60s",
		},
		Provider: ProviderConfig{
			Model: "gemini-2.5-flash",
		},
		Logging: LoggingConfig{
			DebugMode: false,
			Level:     "info",
			Dir:       "logs",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults; a malformed file is an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate checks enum fields.
func (c *Config) Validate() error {
	switch c.Failure.Mode {
	case FailureModeSendOriginal, FailureModeSendFailureMessage:
	default:
		return fmt.Errorf("invalid failure mode %q (want %s or %s)",
			c.Failure.Mode, FailureModeSendOriginal, FailureModeSendFailureMessage)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.Provider.APIKey = key
	}
	if key := os.Getenv("CHATPOLISH_API_KEY"); key != "" {
		c.Provider.APIKey = key
	}
	if model := os.Getenv("CHATPOLISH_MODEL"); model != "" {
		c.Provider.Model = model
	}
}

// GetPolishTimeout returns the provider call timeout as a duration.
func (c *Config) GetPolishTimeout() time.Duration {
	d, err := time.ParseDuration(c.Polish.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// GetMarkRetention returns the reclamation age threshold as a duration.
func (c *Config) GetMarkRetention() time.Duration {
	d, err := time.ParseDuration(c.Marks.Retention)
	if err != nil || d <= 0 {
		return 300 * time.Second
	}
	return d
}

// GetMarkCheckInterval returns the reaper period as a duration.
func (c *Config) GetMarkCheckInterval() time.Duration {
	d, err := time.ParseDuration(c.Marks.CheckInterval)
	if err != nil || d <= 0 {
		return 60 * time.Second
	}
	return d
}
