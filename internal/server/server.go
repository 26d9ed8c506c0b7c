// Package server boots lodge's infrastructure and runs the HTTP listener
// until the process is asked to stop.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiranjanraj/lodge/config"
	"github.com/shashiranjanraj/lodge/internal/kernel"
	"github.com/shashiranjanraj/lodge/pkg/auth"
	"github.com/shashiranjanraj/lodge/pkg/cache"
	"github.com/shashiranjanraj/lodge/pkg/database"
	"github.com/shashiranjanraj/lodge/pkg/logger"
	"github.com/shashiranjanraj/lodge/pkg/storage"
)

const shutdownGrace = 10 * time.Second

// Boot loads config and connects the database, cache and storage. The
// returned kernel is ready to serve.
func Boot() (*kernel.HTTPKernel, error) {
	if err := config.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := logger.Setup(); err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	if err := database.Connect(); err != nil {
		return nil, err
	}
	// A missing Redis degrades to the in-process store.
	_ = cache.Connect()
	if err := storage.Connect(); err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	gw, err := auth.NewGateway(database.DB)
	if err != nil {
		return nil, fmt.Errorf("auth gateway: %w", err)
	}
	return kernel.NewHTTPKernel(database.DB, gw, storage.Default())
}

// Start boots the application and serves until SIGINT or SIGTERM, then
// drains in-flight requests.
func Start() error {
	defer logger.Close()

	k, err := Boot()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return Serve(ctx, ":"+config.AppPort(), k.Handler())
}

// Serve runs handler on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("lodge listening", "addr", addr, "env", config.AppEnv())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down", "grace", shutdownGrace)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
