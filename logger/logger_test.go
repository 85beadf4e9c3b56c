package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestDefaultIsNop(t *testing.T) {
	require.NotNil(t, Logger)
	Logger.Infow("nobody listens", "count", 1)
}

func TestNewWritesStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(zapcore.AddSync(&buf), zapcore.InfoLevel)

	l.Infow("extracted", "doc_id", 4, "count", 2)
	l.Debugw("hidden")

	out := buf.String()
	assert.Contains(t, out, "info")
	assert.Contains(t, out, "extracted")
	assert.Contains(t, out, `"doc_id": 4`)
	assert.NotContains(t, out, "hidden")
}

func TestInitialize(t *testing.T) {
	prev := Logger
	t.Cleanup(func() { Logger = prev })

	require.NoError(t, Initialize(true, false))
	assert.NotNil(t, Logger)

	require.NoError(t, Initialize(false, true))
	assert.True(t, Logger.Desugar().Core().Enabled(zapcore.DebugLevel))
}
