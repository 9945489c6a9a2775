package config

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != ":3000" {
		t.Fatalf("expected default addr :3000, got %q", cfg.HTTPAddr)
	}
	if cfg.Chat.RatePerSec != 5 || cfg.Chat.Burst != 10 {
		t.Fatalf("expected chat limits 5/10, got %v/%d", cfg.Chat.RatePerSec, cfg.Chat.Burst)
	}
	if cfg.WebSocket.SendBuffer != 64 {
		t.Fatalf("expected send buffer 64, got %d", cfg.WebSocket.SendBuffer)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("expected shutdown timeout 10s, got %v", cfg.ShutdownTimeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", "127.0.0.1:9000")
	t.Setenv("CHAT_BURST", "3")
	t.Setenv("SHUTDOWN_TIMEOUT", "250ms")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != "127.0.0.1:9000" {
		t.Fatalf("expected overridden addr, got %q", cfg.HTTPAddr)
	}
	if cfg.Chat.Burst != 3 {
		t.Fatalf("expected burst 3, got %d", cfg.Chat.Burst)
	}
	if cfg.ShutdownTimeout != 250*time.Millisecond {
		t.Fatalf("expected 250ms, got %v", cfg.ShutdownTimeout)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
		want string
	}{
		{name: "not a number", key: "CHAT_BURST", val: "many", want: "parse env:"},
		{name: "zero send buffer", key: "WS_SEND_BUFFER", val: "0", want: "WS_SEND_BUFFER"},
		{name: "negative max message", key: "WS_MAX_MESSAGE_BYTES", val: "-1", want: "WS_MAX_MESSAGE_BYTES"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestNewLoggerLevel(t *testing.T) {
	logger := Config{LogLevel: "debug"}.NewLogger()
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("expected debug level to be enabled")
	}

	logger = Config{LogLevel: "bogus"}.NewLogger()
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("expected invalid level to fall back to info")
	}
}
