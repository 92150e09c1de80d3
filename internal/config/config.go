// Package config provides configuration loading and validation for the editor.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jonathan/resume-editor/internal/llm"
)

// Default values applied when neither the config file nor the environment
// provides one.
const (
	DefaultPort       = 3001
	DefaultDataDir    = ".resume-editor"
	DefaultGCInterval = "5m"
)

// Config represents the editor configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or environment
// variables.
type Config struct {
	// APIKey is the Gemini API key. Chat operations are disabled without it.
	APIKey string `json:"api_key,omitempty"`
	// Model is the completion model name.
	Model string `json:"model,omitempty"`
	// DataDir is the directory holding the key-value store.
	DataDir string `json:"data_dir,omitempty"`
	// Port is the HTTP listen port for the serve command.
	Port int `json:"port,omitempty"`
	// GCInterval is how often the store runs value-log garbage collection,
	// as a Go duration string.
	GCInterval string `json:"gc_interval,omitempty"`
	// Verbose enables detailed request logging.
	Verbose bool `json:"verbose,omitempty"`
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

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

// FromEnv builds a Config from environment variables. Unset variables leave
// the corresponding field empty.
func FromEnv() Config {
	cfg := Config{
		APIKey:     os.Getenv("GEMINI_API_KEY"),
		Model:      os.Getenv("RESUME_EDITOR_MODEL"),
		DataDir:    os.Getenv("RESUME_EDITOR_DATA_DIR"),
		GCInterval: os.Getenv("RESUME_EDITOR_GC_INTERVAL"),
	}
	if port := os.Getenv("RESUME_EDITOR_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil {
			cfg.Port = n
		}
	}
	return cfg
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to layer config file values under environment and flag values.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.DataDir == "" {
		result.DataDir = defaults.DataDir
	}
	if result.GCInterval == "" {
		result.GCInterval = defaults.GCInterval
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if !result.Verbose {
		result.Verbose = defaults.Verbose
	}

	return result
}

// Resolved returns the config with every unset field replaced by its default.
func (c *Config) Resolved() Config {
	return c.MergeWithDefaults(Config{
		Model:      llm.DefaultModel,
		DataDir:    DefaultDataDir,
		Port:       DefaultPort,
		GCInterval: DefaultGCInterval,
	})
}
