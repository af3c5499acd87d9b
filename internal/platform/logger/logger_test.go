package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, Debug, ParseLevel("DEBUG"))
	assert.Equal(t, Info, ParseLevel(""))
	assert.Equal(t, Warn, ParseLevel("warning"))
	assert.Equal(t, Error, ParseLevel(" error "))
	assert.Equal(t, Info, ParseLevel("verbose"))
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("JSON"))
	assert.Equal(t, FormatText, ParseFormat("console"))
}

func TestZapLogger_WithAndFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := FromZap(zap.New(core)).With(map[string]any{"component": "alarms"})

	l.Warn("alarm failed", map[string]any{
		"error":    errors.New("boom"),
		"dose_id":  "d-1",
		"   ":      "ignored",
		"attempts": 1,
	})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	assert.Equal(t, "alarm failed", entry.Message)

	ctx := entry.ContextMap()
	assert.Equal(t, "alarms", ctx["component"])
	assert.Equal(t, "d-1", ctx["dose_id"])
	assert.Equal(t, "boom", ctx["error"])
	assert.NotContains(t, ctx, "   ")
}

func TestNewNop_DoesNotPanic(t *testing.T) {
	l := NewNop()
	l.Info("hello", nil)
	assert.Same(t, l, l.With(nil))
}
