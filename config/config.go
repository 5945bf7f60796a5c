//
// Tencent is pleased to support the open source community by making trpc-flowgen-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flowgen-go is licensed under the Apache License Version 2.0.
//
//

// Package config loads the service configuration from a YAML file with
// environment overrides for deployment-specific values.
package config

import (
	"fmt"
	"os"
	"strconv"

	yaml "gopkg.in/yaml.v3"
)

// ModelConfig holds the LLM backend configuration.
type ModelConfig struct {
	// Name is the model identifier sent to the provider.
	Name string `yaml:"name"`
	// BaseURL overrides the provider endpoint, empty means the default.
	BaseURL string `yaml:"base_url"`
	// APIKeyEnv names the environment variable holding the API key.
	APIKeyEnv string `yaml:"api_key_env"`
	// Temperature is the default sampling temperature.
	Temperature float64 `yaml:"temperature"`
}

// CheckpointConfig holds the checkpoint persistence configuration.
type CheckpointConfig struct {
	// Backend is either "memory" or "redis".
	Backend string `yaml:"backend"`
	// RedisURL is the redis connection URL for the redis backend.
	RedisURL string `yaml:"redis_url"`
}

// RunnerConfig holds the pipeline runner configuration.
type RunnerConfig struct {
	// PoolSize bounds the number of concurrently running pipeline
	// invocations.
	PoolSize int `yaml:"pool_size"`
}

// LogConfig holds the logging configuration.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
}

// Config is the root configuration.
type Config struct {
	Model      ModelConfig      `yaml:"model"`
	Checkpoint CheckpointConfig `yaml:"checkpoint"`
	Runner     RunnerConfig     `yaml:"runner"`
	Log        LogConfig        `yaml:"log"`
}

// Default returns the built-in configuration used when no file is given.
func Default() *Config {
	return &Config{
		Model: ModelConfig{
			Name:        "deepseek-ai/DeepSeek-V3",
			APIKeyEnv:   "OPENAI_API_KEY",
			Temperature: 0.5,
		},
		Checkpoint: CheckpointConfig{Backend: "memory"},
		Runner:     RunnerConfig{PoolSize: 8},
		Log:        LogConfig{Level: "info"},
	}
}

// Load reads the configuration file at path, fills unset fields from the
// defaults and applies environment overrides. An empty path yields the
// defaults plus overrides.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Environment variables recognized as overrides.
const (
	envModelName    = "FLOWGEN_MODEL_NAME"
	envModelBaseURL = "FLOWGEN_MODEL_BASE_URL"
	envRedisURL     = "FLOWGEN_REDIS_URL"
	envPoolSize     = "FLOWGEN_POOL_SIZE"
	envLogLevel     = "FLOWGEN_LOG_LEVEL"
)

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(envModelName); v != "" {
		cfg.Model.Name = v
	}
	if v := os.Getenv(envModelBaseURL); v != "" {
		cfg.Model.BaseURL = v
	}
	if v := os.Getenv(envRedisURL); v != "" {
		cfg.Checkpoint.RedisURL = v
		cfg.Checkpoint.Backend = "redis"
	}
	if v := os.Getenv(envPoolSize); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Runner.PoolSize = n
		}
	}
	if v := os.Getenv(envLogLevel); v != "" {
		cfg.Log.Level = v
	}
}

func (c *Config) validate() error {
	if c.Model.Name == "" {
		return fmt.Errorf("model.name must not be empty")
	}
	switch c.Checkpoint.Backend {
	case "memory":
	case "redis":
		if c.Checkpoint.RedisURL == "" {
			return fmt.Errorf("checkpoint.redis_url is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown checkpoint backend %q", c.Checkpoint.Backend)
	}
	if c.Runner.PoolSize <= 0 {
		return fmt.Errorf("runner.pool_size must be positive")
	}
	return nil
}

// APIKey resolves the model API key from the configured environment
// variable.
func (c *Config) APIKey() string {
	if c.Model.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(c.Model.APIKeyEnv)
}
