package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		name   string
		config *Config
		want   string
	}{
		{"default", &Config{}, "info"},
		{"debug flag", &Config{Debug: true}, "debug"},
		{"quiet flag", &Config{Quiet: true}, "warn"},
		{"quiet wins over debug", &Config{Debug: true, Quiet: true}, "warn"},
		{"explicit level wins", &Config{Debug: true, LogLevel: "error"}, "error"},
		{"invalid explicit level falls back", &Config{LogLevel: "loud"}, "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, determineLogLevel(tt.config))
		})
	}
}

func TestValidateLogLevel(t *testing.T) {
	for _, valid := range []string{"trace", "debug", "info", "warn", "error"} {
		assert.Equal(t, valid, validateLogLevel(valid))
	}
	assert.Equal(t, "info", validateLogLevel("verbose"))
	assert.Equal(t, "info", validateLogLevel(""))
}

func TestNewLoggerHonorsLevel(t *testing.T) {
	logger := NewLogger(&Config{Debug: true, LogOutput: "discard"})
	assert.Equal(t, "debug", logger.GetLevel().String())
}
