// photofeedd serves a local photo feed plus the render-host endpoints
// (filter posts, activity long-poll) so photogroove runs without any
// remote services.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/racingicemen/photogroove/internal/feedserver"
	"github.com/racingicemen/photogroove/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	bind := flag.String("bind", "127.0.0.1:7711", "listen address")
	dir := flag.String("dir", "", "serve photos from this directory (optional; default is a built-in sample feed)")
	debug := flag.Bool("debug", false, "verbose logging")
	flag.Parse()

	logger, err := logging.NewStderr(*debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "photofeedd: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	srv, err := feedserver.New(feedserver.Options{
		Dir:    *dir,
		Logger: logger,
	})
	if err != nil {
		logger.Error("init feed server", zap.Error(err))
		return 1
	}

	httpServer := &http.Server{
		Addr:              *bind,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("bind", *bind), zap.String("dir", *dir))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("shutdown", zap.Error(err))
		}
		logger.Info("stopped")
		return 0
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("serve", zap.Error(err))
			return 1
		}
		return 0
	}
}
