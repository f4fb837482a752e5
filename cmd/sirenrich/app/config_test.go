package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, DefaultInput, config.Input)
	assert.Equal(t, DefaultOutput, config.Output)
	assert.Equal(t, 1, config.Concurrency)
	assert.InDelta(t, 7.0, config.RateLimit, 0.001)
}

func TestLoadConfigTokenFromEnv(t *testing.T) {
	t.Setenv(tokenEnvVar, "env-token")

	config, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "env-token", config.Token)
}

func TestLoadConfigTokenEmptyByDefault(t *testing.T) {
	t.Setenv(tokenEnvVar, "")

	config, err := LoadConfig()
	require.NoError(t, err)
	assert.Empty(t, config.Token)
}

func TestUpdateFromFlags(t *testing.T) {
	config := &Config{Format: "table", LogLevel: "info"}

	config.UpdateFromFlags(true, false, true, "json", "debug")

	assert.True(t, config.Debug)
	assert.False(t, config.Quiet)
	assert.True(t, config.NoColor)
	assert.Equal(t, "json", config.Format)
	assert.Equal(t, "debug", config.LogLevel)
}

func TestUpdateFromFlagsKeepsExistingWhenEmpty(t *testing.T) {
	config := &Config{Format: "yaml", LogLevel: "warn"}

	config.UpdateFromFlags(false, false, false, "", "")

	assert.Equal(t, "yaml", config.Format)
	assert.Equal(t, "warn", config.LogLevel)
}
