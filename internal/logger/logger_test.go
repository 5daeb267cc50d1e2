package logger

import (
	"context"
	"log/slog"
	"testing"
)

func TestNewLevelParsing(t *testing.T) {
	tests := []struct {
		level   string
		enabled slog.Level
		muted   slog.Level
	}{
		{"debug", slog.LevelDebug, slog.LevelDebug - 1},
		{"info", slog.LevelInfo, slog.LevelDebug},
		{"warn", slog.LevelWarn, slog.LevelInfo},
		{"error", slog.LevelError, slog.LevelWarn},
		{"unknown", slog.LevelInfo, slog.LevelDebug},
		{"", slog.LevelInfo, slog.LevelDebug},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			l := New(tt.level)
			if !l.Enabled(context.Background(), tt.enabled) {
				t.Errorf("level %v should be enabled for %q", tt.enabled, tt.level)
			}
			if l.Enabled(context.Background(), tt.muted) {
				t.Errorf("level %v should be muted for %q", tt.muted, tt.level)
			}
		})
	}
}
