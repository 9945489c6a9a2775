package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	httpapi "github.com/bongibault-romain/trading-game-server/internal/api/http"
	"github.com/bongibault-romain/trading-game-server/internal/api/ws"
	"github.com/bongibault-romain/trading-game-server/internal/config"
	"github.com/bongibault-romain/trading-game-server/internal/inventory"
	"github.com/bongibault-romain/trading-game-server/internal/metrics"
	"github.com/bongibault-romain/trading-game-server/internal/ratelimit"
	"github.com/bongibault-romain/trading-game-server/internal/room"
	"github.com/bongibault-romain/trading-game-server/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	items, err := inventory.NewDefaultGenerator()
	if err != nil {
		return err
	}

	hub := ws.NewHub(ws.Options{
		SendBuffer:      cfg.WebSocket.SendBuffer,
		MaxMessageBytes: cfg.WebSocket.MaxMessageBytes,
		Logger:          logger,
		Metrics:         m,
	})
	rm := room.NewManager(store.NewMemoryStore(), items, hub,
		room.WithChatLimiter(ratelimit.New(cfg.Chat.RatePerSec, cfg.Chat.Burst)),
		room.WithMetrics(m),
		room.WithLogger(logger),
	)
	hub.SetRoomManager(rm)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: httpapi.NewRouter(rm, hub, reg, logger),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	err = srv.Shutdown(shutdownCtx)
	// Upgraded connections are hijacked and not tracked by the server.
	hub.Close()
	return err
}
