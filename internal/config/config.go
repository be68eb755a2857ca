// Package config provides configuration loading and validation for the toolkit.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the toolkit configuration that can be loaded from a JSON
// or YAML file. All fields are optional; missing values use defaults.
type Config struct {
	// Storage
	DataDir   string `json:"data_dir,omitempty" yaml:"data_dir,omitempty"`                                             // Directory holding persisted state
	Backend   string `json:"backend,omitempty" yaml:"backend,omitempty" validate:"omitempty,oneof=file sqlite memory"` // Storage backend
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty" validate:"omitempty,max=32"`               // Storage key prefix

	// Logging
	LogLevel       string `json:"log_level,omitempty" yaml:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error"`
	LogDevelopment bool   `json:"log_development,omitempty" yaml:"log_development,omitempty"` // Human-readable console logs

	// Server
	Port     int    `json:"port,omitempty" yaml:"port,omitempty" validate:"omitempty,min=1,max=65535"`
	APIToken string `json:"api_token,omitempty" yaml:"api_token,omitempty"` // Bearer token required by the HTTP API when set
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		DataDir:   DefaultDataDir(),
		Backend:   "file",
		Namespace: "toolkit_",
		LogLevel:  "info",
		Port:      8080,
	}
}

// DefaultDataDir is <user config dir>/content-toolkit, or ./.content-toolkit
// when the user config dir is unknown.
func DefaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "content-toolkit")
	}
	return ".content-toolkit"
}

// LoadConfig loads configuration from a JSON or YAML file. The format is
// chosen by extension; anything other than .yaml/.yml is parsed as JSON.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
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
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// FromEnv reads TOOLKIT_* environment variables. Unset variables leave the
// corresponding field zero.
func FromEnv() Config {
	return Config{
		DataDir:        getEnvString("TOOLKIT_DATA_DIR", ""),
		Backend:        getEnvString("TOOLKIT_BACKEND", ""),
		Namespace:      getEnvString("TOOLKIT_NAMESPACE", ""),
		LogLevel:       getEnvString("TOOLKIT_LOG_LEVEL", ""),
		LogDevelopment: getEnvBool("TOOLKIT_LOG_DEVELOPMENT", false),
		Port:           getEnvInt("TOOLKIT_PORT", 0),
		APIToken:       getEnvString("TOOLKIT_API_TOKEN", ""),
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("config error: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("'%s' failed '%s' check", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("config error: %s", strings.Join(msgs, ", "))
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// Used to layer flags over environment over config file over built-ins.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.DataDir == "" {
		result.DataDir = defaults.DataDir
	}
	if result.Backend == "" {
		result.Backend = defaults.Backend
	}
	if result.Namespace == "" {
		result.Namespace = defaults.Namespace
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.APIToken == "" {
		result.APIToken = defaults.APIToken
	}

	// Bool fields: cannot distinguish unset from false, so true wins
	result.LogDevelopment = result.LogDevelopment || defaults.LogDevelopment

	return result
}
