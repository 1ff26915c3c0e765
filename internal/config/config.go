// SPDX-License-Identifier: Apache-2.0

// Package config loads hireflow settings from defaults, an optional YAML file
// and HIREFLOW_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/goccy/go-yaml"

	"github.com/hireflow/hireflow/internal/validation"
)

// ErrInvalidConfig is returned for unreadable or out-of-range configuration.
var ErrInvalidConfig = errors.New("invalid configuration")

// Environment variables read by Load.
const (
	EnvConfigFile        = "HIREFLOW_CONFIG"
	EnvLogLevel          = "HIREFLOW_LOG_LEVEL"
	EnvLogFormat         = "HIREFLOW_LOG_FORMAT"
	EnvHTTPAddr          = "HIREFLOW_HTTP_ADDR"
	EnvMinSalary         = "HIREFLOW_MIN_SALARY"
	EnvMaxSalary         = "HIREFLOW_MAX_SALARY"
	EnvFutureWindowDays  = "HIREFLOW_FUTURE_WINDOW_DAYS"
	EnvPastToleranceDays = "HIREFLOW_PAST_TOLERANCE_DAYS"
)

const (
	defaultHTTPAddr  = ":8080"
	defaultLogLevel  = "info"
	defaultLogFormat = "text"
)

// Config holds all application configuration.
type Config struct {
	Log        LogConfig        `json:"log" yaml:"log"`
	HTTP       HTTPConfig       `json:"http" yaml:"http"`
	Validation validation.Rules `json:"validation" yaml:"validation"`
	Catalog    CatalogConfig    `json:"catalog" yaml:"catalog"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Addr string `json:"addr" yaml:"addr"`
}

// CatalogConfig extends the built-in field catalog. ExtraPatterns maps a
// field name such as "Employee ID" to additional regular expressions that
// rank below the built-in patterns of that field.
type CatalogConfig struct {
	ExtraPatterns map[string][]string `json:"extra_patterns,omitempty" yaml:"extra_patterns,omitempty"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Log:        LogConfig{Level: defaultLogLevel, Format: defaultLogFormat},
		HTTP:       HTTPConfig{Addr: defaultHTTPAddr},
		Validation: validation.DefaultRules(),
	}
}

// Load builds the configuration. An empty path falls back to
// HIREFLOW_CONFIG; when neither is set only defaults and environment
// overrides apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %q: %w", path, err)
	}
	if err := yaml.UnmarshalWithOptions(data, c, yaml.Strict()); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.Log.Level = getEnv(EnvLogLevel, c.Log.Level)
	c.Log.Format = getEnv(EnvLogFormat, c.Log.Format)
	c.HTTP.Addr = getEnv(EnvHTTPAddr, c.HTTP.Addr)

	var err error
	if c.Validation.MinSalary, err = getEnvAsFloat(EnvMinSalary, c.Validation.MinSalary); err != nil {
		return err
	}
	if c.Validation.MaxSalary, err = getEnvAsFloat(EnvMaxSalary, c.Validation.MaxSalary); err != nil {
		return err
	}
	if c.Validation.FutureWindowDays, err = getEnvAsInt(EnvFutureWindowDays, c.Validation.FutureWindowDays); err != nil {
		return err
	}
	if c.Validation.PastToleranceDays, err = getEnvAsInt(EnvPastToleranceDays, c.Validation.PastToleranceDays); err != nil {
		return err
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, key, value)
	}
	return n, nil
}

func getEnvAsFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not a number", ErrInvalidConfig, key, value)
	}
	return f, nil
}
