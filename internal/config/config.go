package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type Chat struct {
	RatePerSec float64 `env:"CHAT_RATE_PER_SEC" envDefault:"5"`
	Burst      int     `env:"CHAT_BURST" envDefault:"10"`
}

type WebSocket struct {
	SendBuffer      int   `env:"WS_SEND_BUFFER" envDefault:"64"`
	MaxMessageBytes int64 `env:"WS_MAX_MESSAGE_BYTES" envDefault:"65536"`
}

type Config struct {
	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":3000"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"text"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	Chat      Chat
	WebSocket WebSocket
}

// Load reads the process configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.WebSocket.SendBuffer <= 0 {
		return Config{}, fmt.Errorf("WS_SEND_BUFFER must be positive, got %d", cfg.WebSocket.SendBuffer)
	}
	if cfg.WebSocket.MaxMessageBytes <= 0 {
		return Config{}, fmt.Errorf("WS_MAX_MESSAGE_BYTES must be positive, got %d", cfg.WebSocket.MaxMessageBytes)
	}
	return cfg, nil
}

// NewLogger builds the process logger from LOG_LEVEL and LOG_FORMAT.
func (c Config) NewLogger() *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	if strings.EqualFold(c.LogFormat, "json") {
		h = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		h = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(h)
}
