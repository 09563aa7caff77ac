package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	assert.Equal(t, "info", opts.Level)
	assert.Equal(t, "console", opts.Format)
	assert.Equal(t, "stdout", opts.Output)
}

func TestProductionOptions(t *testing.T) {
	opts := ProductionOptions()

	assert.Equal(t, "info", opts.Level)
	assert.Equal(t, "json", opts.Format)
	assert.Equal(t, "stdout", opts.Output)
}

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{name: "default options", opts: DefaultOptions()},
		{name: "production options", opts: ProductionOptions()},
		{name: "debug console", opts: Options{Level: "debug", Format: "console", Output: "stdout"}},
		{name: "json to stderr", opts: Options{Level: "info", Format: "json", Output: "stderr"}},
		{name: "empty output falls back to stdout", opts: Options{Level: "info", Format: "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(tt.opts)
			require.NotNil(t, logger)
			assert.NoError(t, logger.Sync())
		})
	}
}

func TestNewForEnvironment(t *testing.T) {
	tests := []struct {
		name string
		env  string
	}{
		{name: "development", env: "development"},
		{name: "production", env: "production"},
		{name: "unknown", env: "staging"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := NewForEnvironment(tt.env)
			require.NotNil(t, logger)
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"DEBUG", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"fatal", zapcore.FatalLevel},
		{"unknown", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.level))
		})
	}
}
