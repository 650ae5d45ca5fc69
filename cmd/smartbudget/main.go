package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"smartbudget-go/internal/app"
	"smartbudget-go/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	os.Exit(run(logger.NewFromEnv()))
}

func run(log logger.Logger) int {
	log.Info("smartbudget: starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(log)
	if err != nil {
		log.Critical("smartbudget: init failed", "err", err)
		return 1
	}

	srv := application.HTTPServer()
	log.Info("http: listening", "addr", srv.Addr)

	serverErrCh := make(chan error, 1)
	go func() {
		defer close(serverErrCh)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
	}()

	exitCode := 0
	select {
	case <-ctx.Done():
		log.Info("smartbudget: shutdown signal received")
	case err := <-serverErrCh:
		if err != nil {
			log.Critical("http: server failed", "addr", srv.Addr, "err", err)
			exitCode = 1
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("http: graceful shutdown failed", "err", err)
		exitCode = 1
	}

	if err := application.Close(); err != nil {
		log.Error("smartbudget: close failed", "err", err)
		exitCode = 1
	}

	if exitCode == 0 {
		log.Info("smartbudget: stopped")
	}
	return exitCode
}
