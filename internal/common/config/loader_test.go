// internal/common/config/loader_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "prompt-enhancer", cfg.App.Name)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "frameworks", cfg.Frameworks.Dir)
	assert.Equal(t, "pro", cfg.Frameworks.DefaultID)
	assert.Equal(t, 8, cfg.Model.Timeout)
	assert.False(t, cfg.Model.Enabled())
	assert.False(t, cfg.Redis.Enabled)
	assert.NotEmpty(t, cfg.Server.AllowedOrigins)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MODEL_BASE_URL", "http://localhost:9999")
	t.Setenv("FRAMEWORKS_DIR", "/tmp/fw")
	t.Setenv("REDIS_ADDRESS", "cache:6379")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999", cfg.Model.BaseURL)
	assert.True(t, cfg.Model.Enabled())
	assert.Equal(t, "/tmp/fw", cfg.Frameworks.Dir)
	assert.Equal(t, "cache:6379", cfg.Redis.Address)
}

func TestDurationHelpers(t *testing.T) {
	m := ModelConfig{Timeout: 8}
	assert.Equal(t, "8s", m.TimeoutDuration().String())

	f := FrameworksConfig{CacheTTL: 60}
	assert.Equal(t, "1m0s", f.CacheTTLDuration().String())
}
