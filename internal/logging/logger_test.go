package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNewLogger(t *testing.T) {
	t.Run("strips time and attaches run id", func(t *testing.T) {
		t.Setenv("SAFECOIN_LOG_LEVEL", "")
		var buf bytes.Buffer
		logger := newLogger(&buf, false)

		logger.Info("contract information updated", "contract", "SafeCoin")

		out := buf.String()
		assert.NotContains(t, out, "time=")
		assert.Contains(t, out, "run_id=")
		assert.Contains(t, out, "contract=SafeCoin")
	})

	t.Run("debug flag enables debug records", func(t *testing.T) {
		t.Setenv("SAFECOIN_LOG_LEVEL", "error")
		var buf bytes.Buffer
		logger := newLogger(&buf, true)

		logger.Debug("linking libraries")

		assert.Contains(t, buf.String(), "linking libraries")
	})

	t.Run("level from environment", func(t *testing.T) {
		t.Setenv("SAFECOIN_LOG_LEVEL", "warn")
		var buf bytes.Buffer
		logger := newLogger(&buf, false)

		logger.Info("hidden")
		logger.Warn("shown")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "shown")
	})
}
