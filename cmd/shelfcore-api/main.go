// shelfcore-api serves the public read-only API for the site frontend.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shelfcore/internal/aggregate"
	"shelfcore/internal/catalog"
	"shelfcore/internal/config"
	"shelfcore/internal/httpapi"
	"shelfcore/internal/infra/persistence"
	"shelfcore/internal/observability"
)

func main() {
	logger := log.New(os.Stderr, "shelfcore-api ", log.LstdFlags)
	if err := run(logger); err != nil {
		logger.Fatal(err)
	}
}

func run(logger *log.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	store, err := persistence.Open(ctx, cfg.PersistenceOptions())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	metrics := observability.New()
	svc := catalog.New(store, nil, logger)
	agg := aggregate.New(svc, logger)
	handler := httpapi.NewHandler(agg, metrics, logger)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Printf("listening on %s", cfg.HTTPAddr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
