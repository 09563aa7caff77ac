package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func newObservedGormLogger(level string) (*GormLogger, *observer.ObservedLogs) {
	core, recorded := observer.New(zapcore.DebugLevel)
	return NewGormLogger(zap.New(core), level), recorded
}

func TestNewGormLogger(t *testing.T) {
	gl, _ := newObservedGormLogger("info")

	require.NotNil(t, gl)
	assert.Equal(t, gormlogger.Info, gl.logLevel)
	assert.Equal(t, defaultSlowThreshold, gl.slowThreshold)
}

func TestGormLogger_LogMode(t *testing.T) {
	gl, _ := newObservedGormLogger("info")

	silenced := gl.LogMode(gormlogger.Silent)

	// LogMode returns a copy, the original is untouched
	assert.Equal(t, gormlogger.Info, gl.logLevel)
	assert.Equal(t, gormlogger.Silent, silenced.(*GormLogger).logLevel)
}

func TestGormLogger_Trace(t *testing.T) {
	ctx := context.Background()
	fc := func() (string, int64) { return "SELECT * FROM invoices", 3 }

	t.Run("logs queries at debug level", func(t *testing.T) {
		gl, recorded := newObservedGormLogger("info")

		gl.Trace(ctx, time.Now(), fc, nil)

		entries := recorded.All()
		require.Len(t, entries, 1)
		assert.Equal(t, "SQL Query", entries[0].Message)
		assert.Equal(t, "SELECT * FROM invoices", entries[0].ContextMap()["sql"])
		assert.Equal(t, int64(3), entries[0].ContextMap()["rows"])
	})

	t.Run("logs errors", func(t *testing.T) {
		gl, recorded := newObservedGormLogger("error")

		gl.Trace(ctx, time.Now(), fc, errors.New("connection refused"))

		entries := recorded.All()
		require.Len(t, entries, 1)
		assert.Equal(t, "SQL Error", entries[0].Message)
		assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	})

	t.Run("skips record not found errors", func(t *testing.T) {
		gl, recorded := newObservedGormLogger("error")

		gl.Trace(ctx, time.Now(), fc, gormlogger.ErrRecordNotFound)

		assert.Empty(t, recorded.All())
	})

	t.Run("warns on slow queries", func(t *testing.T) {
		gl, recorded := newObservedGormLogger("warn")
		gl.slowThreshold = time.Nanosecond

		gl.Trace(ctx, time.Now().Add(-time.Millisecond), fc, nil)

		entries := recorded.All()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
		assert.Contains(t, entries[0].Message, "SLOW SQL")
	})

	t.Run("silent level logs nothing", func(t *testing.T) {
		gl, recorded := newObservedGormLogger("silent")

		gl.Trace(ctx, time.Now(), fc, errors.New("ignored"))

		assert.Empty(t, recorded.All())
	})

	t.Run("includes request id from context", func(t *testing.T) {
		gl, recorded := newObservedGormLogger("info")
		reqCtx := context.WithValue(ctx, RequestIDKey, "req-42")

		gl.Trace(reqCtx, time.Now(), fc, nil)

		entries := recorded.All()
		require.Len(t, entries, 1)
		assert.Equal(t, "req-42", entries[0].ContextMap()["request_id"])
	})
}

func TestMapGormLogLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected gormlogger.LogLevel
	}{
		{"silent", gormlogger.Silent},
		{"error", gormlogger.Error},
		{"warn", gormlogger.Warn},
		{"info", gormlogger.Info},
		{"debug", gormlogger.Info},
		{"unknown", gormlogger.Warn},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expected, mapGormLogLevel(tt.level))
		})
	}
}
