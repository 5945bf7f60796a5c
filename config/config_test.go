//
// Tencent is pleased to support the open source community by making trpc-flowgen-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flowgen-go is licensed under the Apache License Version 2.0.
//
//

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "flowgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "deepseek-ai/DeepSeek-V3", cfg.Model.Name)
	assert.Equal(t, "OPENAI_API_KEY", cfg.Model.APIKeyEnv)
	assert.Equal(t, 0.5, cfg.Model.Temperature)
	assert.Equal(t, "memory", cfg.Checkpoint.Backend)
	assert.Equal(t, 8, cfg.Runner.PoolSize)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadEmptyPathYieldsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
model:
  name: qwen-plus
  base_url: https://example.com/v1
  temperature: 0.2
checkpoint:
  backend: redis
  redis_url: redis://localhost:6379/0
runner:
  pool_size: 2
log:
  level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "qwen-plus", cfg.Model.Name)
	assert.Equal(t, "https://example.com/v1", cfg.Model.BaseURL)
	assert.Equal(t, 0.2, cfg.Model.Temperature)
	assert.Equal(t, "redis", cfg.Checkpoint.Backend)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Checkpoint.RedisURL)
	assert.Equal(t, 2, cfg.Runner.PoolSize)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Fields the file leaves out keep their defaults.
	assert.Equal(t, "OPENAI_API_KEY", cfg.Model.APIKeyEnv)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("FLOWGEN_MODEL_NAME", "glm-4")
	t.Setenv("FLOWGEN_MODEL_BASE_URL", "https://override.example.com/v1")
	t.Setenv("FLOWGEN_POOL_SIZE", "3")
	t.Setenv("FLOWGEN_LOG_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "glm-4", cfg.Model.Name)
	assert.Equal(t, "https://override.example.com/v1", cfg.Model.BaseURL)
	assert.Equal(t, 3, cfg.Runner.PoolSize)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestRedisURLOverrideSwitchesBackend(t *testing.T) {
	t.Setenv("FLOWGEN_REDIS_URL", "redis://cache:6379/1")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "redis", cfg.Checkpoint.Backend)
	assert.Equal(t, "redis://cache:6379/1", cfg.Checkpoint.RedisURL)
}

func TestInvalidPoolSizeOverrideIgnored(t *testing.T) {
	t.Setenv("FLOWGEN_POOL_SIZE", "not-a-number")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Runner.PoolSize)
}

func TestValidation(t *testing.T) {
	t.Run("empty model name", func(t *testing.T) {
		_, err := Load(writeConfig(t, "model:\n  name: \"\"\n"))
		require.ErrorContains(t, err, "model.name")
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := Load(writeConfig(t, "checkpoint:\n  backend: etcd\n"))
		require.ErrorContains(t, err, "unknown checkpoint backend")
	})

	t.Run("redis backend without url", func(t *testing.T) {
		_, err := Load(writeConfig(t, "checkpoint:\n  backend: redis\n"))
		require.ErrorContains(t, err, "redis_url")
	})

	t.Run("non-positive pool size", func(t *testing.T) {
		_, err := Load(writeConfig(t, "runner:\n  pool_size: -1\n"))
		require.ErrorContains(t, err, "pool_size")
	})
}

func TestAPIKey(t *testing.T) {
	t.Setenv("FLOWGEN_TEST_KEY", "secret")
	cfg := Default()
	cfg.Model.APIKeyEnv = "FLOWGEN_TEST_KEY"
	assert.Equal(t, "secret", cfg.APIKey())

	cfg.Model.APIKeyEnv = ""
	assert.Equal(t, "", cfg.APIKey())
}
