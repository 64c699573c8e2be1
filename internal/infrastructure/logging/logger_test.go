package logging

import (
	"log/slog"
	"testing"

	"github.com/ailuropoda0/deviot-gateway-go/internal/infrastructure/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewDoesNotPanic(t *testing.T) {
	cfgs := []config.LoggingConfig{
		{Level: "debug", Format: "text", Output: "stderr"},
		{Level: "info", Format: "json", Output: "stdout"},
		{Level: "", Format: "", Output: ""},
	}

	for _, cfg := range cfgs {
		log := New(cfg, "test")
		if log == nil || log.Logger == nil {
			t.Fatalf("New(%+v) returned nil logger", cfg)
		}
		log.Debug("debug message")
		log.Info("info message", "key", "value")
	}
}

func TestWithAddsAttributes(t *testing.T) {
	log := Default()
	child := log.With("component", "test")
	if child == nil || child.Logger == log.Logger {
		t.Error("With() should return a distinct logger")
	}
	child.Info("message from child")
}
