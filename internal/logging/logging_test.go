package logging

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jask/toggler/internal/config"
)

func TestNewHandlerLevels(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name    string
		level   string
		debugOn bool
		infoOn  bool
		warnOn  bool
	}{
		{name: "trace", level: "trace", debugOn: true, infoOn: true, warnOn: true},
		{name: "debug", level: "debug", debugOn: true, infoOn: true, warnOn: true},
		{name: "info", level: "info", debugOn: false, infoOn: true, warnOn: true},
		{name: "warn", level: "warn", debugOn: false, infoOn: false, warnOn: true},
		{name: "error", level: "ERROR", debugOn: false, infoOn: false, warnOn: false},
		{name: "empty defaults to info", level: "", debugOn: false, infoOn: true, warnOn: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(tt.level, &bytes.Buffer{})
			assert.Equal(t, tt.debugOn, h.Enabled(ctx, slog.LevelDebug))
			assert.Equal(t, tt.infoOn, h.Enabled(ctx, slog.LevelInfo))
			assert.Equal(t, tt.warnOn, h.Enabled(ctx, slog.LevelWarn))
			assert.True(t, h.Enabled(ctx, slog.LevelError))
		})
	}
}

func TestNewHandlerWritesRecords(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler("info", &buf))
	logger.Info("transition", "event", "TOGGLE", "to", "inactive")
	logger.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "transition")
	assert.Contains(t, out, "event=TOGGLE")
	assert.NotContains(t, out, "hidden")
}

func TestOpenWithoutFileDiscards(t *testing.T) {
	logger, closer, err := Open(config.LogConfig{Level: "debug"})
	require.NoError(t, err)
	require.NotNil(t, logger)
	require.NoError(t, closer.Close())
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "toggler.log")
	logger, closer, err := Open(config.LogConfig{Level: "info", File: path})
	require.NoError(t, err)

	logger.Info("machine started", "state", "active")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "machine started")
	assert.Contains(t, string(data), "state=active")
}
