package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pumpfun.log")
	var console bytes.Buffer

	l, err := newLogger(&Config{LogFile: path, MaxSize: 1}, zapcore.AddSync(&console))
	require.NoError(t, err)

	l.WithMint("mint123").Info("Buy submitted", zap.Uint64("amount", 42))
	require.NoError(t, l.Close())

	assert.Contains(t, console.String(), "Buy submitted")

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(content), &entry))
	assert.Equal(t, "Buy submitted", entry["msg"])
	assert.Equal(t, "mint123", entry["mint"])
	assert.Equal(t, float64(42), entry["amount"])
}

func TestLoggerLevels(t *testing.T) {
	var console bytes.Buffer

	l, err := newLogger(&Config{}, zapcore.AddSync(&console))
	require.NoError(t, err)
	l.Debug("hidden")
	l.Info("shown")
	assert.NotContains(t, console.String(), "hidden")
	assert.Contains(t, console.String(), "shown")

	console.Reset()
	dev, err := newLogger(&Config{Development: true}, zapcore.AddSync(&console))
	require.NoError(t, err)
	dev.Debug("visible")
	assert.Contains(t, console.String(), "visible")
}

func TestWithOperation(t *testing.T) {
	var console bytes.Buffer

	l, err := newLogger(&Config{Development: true}, zapcore.AddSync(&console))
	require.NoError(t, err)

	end := l.TrackPerformance("buy")
	end()

	out := console.String()
	assert.Equal(t, 2, strings.Count(out, "correlation_id"))
	assert.Contains(t, out, "Operation completed")
}
