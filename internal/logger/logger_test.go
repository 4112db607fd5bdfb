package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogger(t *testing.T) {
	for _, format := range []string{"json", "text"} {
		for _, level := range []string{"debug", "info", "warn", "error", "none"} {
			l, err := NewLogger(format, level)
			require.NoError(t, err, "%s/%s", format, level)
			assert.NotNil(t, l)
		}
	}

	_, err := NewLogger("json", "verbose")
	assert.Error(t, err)

	_, err = NewLogger("xml", "info")
	assert.Error(t, err)
}

func TestWithAddsFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := (&ZapLogger{zap.New(core)}).With(zap.String("component", "recipes"))

	l.Info("created", zap.String("id", "r1"))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "created", entry.Message)
	assert.Equal(t, "recipes", entry.ContextMap()["component"])
	assert.Equal(t, "r1", entry.ContextMap()["id"])
}
