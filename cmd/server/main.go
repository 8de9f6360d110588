package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/divvyup/divvyup/internal/auth"
	"github.com/divvyup/divvyup/internal/config"
	"github.com/divvyup/divvyup/internal/metrics"
	"github.com/divvyup/divvyup/internal/notify"
	"github.com/divvyup/divvyup/internal/storage/sqlite"
	"github.com/divvyup/divvyup/pkg/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logging.Setup(cfg.LogLevel)

	if err := metrics.Setup(prometheus.DefaultRegisterer); err != nil {
		return err
	}

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	router := newRouter(routerParams{
		Store:         store,
		JWTManager:    auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL),
		Hub:           notify.NewHub(),
		JoinRateLimit: cfg.JoinRateLimit,
	})

	// Wrap with h2c for HTTP/2 without TLS (required for Connect streaming)
	// Request contexts derive from baseCtx so open WatchSettlement streams
	// end when shutdown begins.
	baseCtx, cancelRequests := context.WithCancel(context.Background())
	defer cancelRequests()

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           h2c.NewHandler(router, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Connect server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	cancelRequests()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
