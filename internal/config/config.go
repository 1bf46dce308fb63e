/*
Copyright 2026 Altaira Labs.

SPDX-License-Identifier: Apache-2.0

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package config loads configuration for the epstein-mcp server.
//
// Values come from built-in defaults, then an optional YAML file named by
// EPSTEIN_MCP_CONFIG, then individual environment variables.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variable names.
const (
	EnvConfigFile       = "EPSTEIN_MCP_CONFIG"
	EnvBaseURL          = "EPSTEIN_API_BASE_URL"
	EnvTimeout          = "EPSTEIN_API_TIMEOUT"
	EnvUserAgent        = "EPSTEIN_API_USER_AGENT"
	EnvBreakerThreshold = "EPSTEIN_API_BREAKER_THRESHOLD"
	EnvBreakerCooldown  = "EPSTEIN_API_BREAKER_COOLDOWN"
	EnvMetricsAddr      = "EPSTEIN_MCP_METRICS_ADDR"
	EnvTracingEnabled   = "EPSTEIN_MCP_TRACING_ENABLED"
	EnvTracingEndpoint  = "EPSTEIN_MCP_TRACING_ENDPOINT"
	EnvTracingInsecure  = "EPSTEIN_MCP_TRACING_INSECURE"
	EnvTracingSample    = "EPSTEIN_MCP_TRACING_SAMPLE_RATE"
)

// Default values.
const (
	DefaultBaseURL         = "https://epsteinexposed.com/api/v1"
	DefaultTimeout         = 30 * time.Second
	DefaultBreakerCooldown = 30 * time.Second
	DefaultUserAgent       = "epstein-mcp"
)

// Error format constants.
const (
	errFmtInvalidEnvVar = "invalid %s: %w"
)

// Config holds the server configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Metrics MetricsConfig `yaml:"metrics"`
	Tracing TracingConfig `yaml:"tracing"`
}

// APIConfig configures the remote API client.
type APIConfig struct {
	BaseURL   string        `yaml:"baseURL"`
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"userAgent"`

	// BreakerThreshold is the number of consecutive failures that opens the
	// circuit breaker. Zero disables the breaker.
	BreakerThreshold uint32        `yaml:"breakerThreshold"`
	BreakerCooldown  time.Duration `yaml:"breakerCooldown"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	// Addr is the listen address for /metrics and /healthz. Empty disables it.
	Addr string `yaml:"addr"`
}

// TracingConfig configures OpenTelemetry export.
type TracingConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Endpoint   string  `yaml:"endpoint"`
	Insecure   bool    `yaml:"insecure"`
	SampleRate float64 `yaml:"sampleRate"`
}

// Default returns a Config populated with defaults.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:         DefaultBaseURL,
			Timeout:         DefaultTimeout,
			UserAgent:       DefaultUserAgent,
			BreakerCooldown: DefaultBreakerCooldown,
		},
		Tracing: TracingConfig{
			SampleRate: 1.0,
		},
	}
}

// Load builds the configuration from defaults, the optional config file, and
// environment overrides, then validates it.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv(EnvConfigFile); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.parseEnvironmentOverrides(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads a YAML config file on top of the defaults without applying
// environment overrides.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.mergeFile(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

// parseEnvironmentOverrides applies environment variables over the current values.
func (cfg *Config) parseEnvironmentOverrides() error {
	cfg.API.BaseURL = getEnvOrDefault(EnvBaseURL, cfg.API.BaseURL)
	cfg.API.UserAgent = getEnvOrDefault(EnvUserAgent, cfg.API.UserAgent)
	cfg.Metrics.Addr = getEnvOrDefault(EnvMetricsAddr, cfg.Metrics.Addr)
	cfg.Tracing.Endpoint = getEnvOrDefault(EnvTracingEndpoint, cfg.Tracing.Endpoint)

	if err := parseDurationEnv(EnvTimeout, &cfg.API.Timeout); err != nil {
		return err
	}
	if err := parseDurationEnv(EnvBreakerCooldown, &cfg.API.BreakerCooldown); err != nil {
		return err
	}
	if err := cfg.parseBreakerThreshold(); err != nil {
		return err
	}
	if err := parseBoolEnv(EnvTracingEnabled, &cfg.Tracing.Enabled); err != nil {
		return err
	}
	if err := parseBoolEnv(EnvTracingInsecure, &cfg.Tracing.Insecure); err != nil {
		return err
	}
	return cfg.parseTracingSampleRate()
}

func (cfg *Config) parseBreakerThreshold() error {
	v := os.Getenv(EnvBreakerThreshold)
	if v == "" {
		return nil
	}
	n, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		return fmt.Errorf(errFmtInvalidEnvVar, EnvBreakerThreshold, err)
	}
	cfg.API.BreakerThreshold = uint32(n)
	return nil
}

func (cfg *Config) parseTracingSampleRate() error {
	v := os.Getenv(EnvTracingSample)
	if v == "" {
		return nil
	}
	r, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf(errFmtInvalidEnvVar, EnvTracingSample, err)
	}
	cfg.Tracing.SampleRate = r
	return nil
}

// Validate checks the configuration for errors.
func (cfg *Config) Validate() error {
	if err := validateBaseURL(cfg.API.BaseURL); err != nil {
		return err
	}
	if cfg.API.Timeout <= 0 {
		return fmt.Errorf("invalid %s: must be positive", EnvTimeout)
	}
	if cfg.API.BreakerThreshold > 0 && cfg.API.BreakerCooldown <= 0 {
		return fmt.Errorf("invalid %s: must be positive when the breaker is enabled", EnvBreakerCooldown)
	}
	if cfg.Tracing.SampleRate < 0 || cfg.Tracing.SampleRate > 1 {
		return fmt.Errorf("invalid %s: must be between 0.0 and 1.0", EnvTracingSample)
	}
	if cfg.Tracing.Enabled && cfg.Tracing.Endpoint == "" {
		return fmt.Errorf("%s is required when tracing is enabled", EnvTracingEndpoint)
	}
	return nil
}

func validateBaseURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("%s is required", EnvBaseURL)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf(errFmtInvalidEnvVar, EnvBaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid %s: scheme must be http or https", EnvBaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid %s: missing host", EnvBaseURL)
	}
	return nil
}

func parseDurationEnv(key string, dst *time.Duration) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf(errFmtInvalidEnvVar, key, err)
	}
	*dst = d
	return nil
}

func parseBoolEnv(key string, dst *bool) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf(errFmtInvalidEnvVar, key, err)
	}
	*dst = b
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
