// shelfcore-bot runs the Telegram admin bot that manages the site content.
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

	"shelfcore/internal/catalog"
	"shelfcore/internal/chat"
	"shelfcore/internal/chat/telegram"
	"shelfcore/internal/config"
	"shelfcore/internal/infra/blob"
	"shelfcore/internal/infra/persistence"
	"shelfcore/internal/observability"
)

func main() {
	logger := log.New(os.Stderr, "shelfcore-bot ", log.LstdFlags)
	if err := run(logger); err != nil && !errors.Is(err, context.Canceled) {
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

	assets, err := blob.Open(ctx, cfg.BlobOptions())
	if err != nil {
		return err
	}

	metrics := observability.New()
	svc := catalog.New(store, assets, logger)
	engine := chat.NewEngine(chat.BuildFlows(svc, logger), logger)
	bot, err := telegram.New(cfg.Telegram.Token, engine, cfg.Telegram.AdminIDs, metrics, logger)
	if err != nil {
		return err
	}

	if cfg.MetricsAddr != "" {
		go serveMetrics(ctx, cfg.MetricsAddr, metrics, logger)
	}

	return bot.Run(ctx)
}

func serveMetrics(ctx context.Context, addr string, metrics *observability.Metrics, logger *log.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()
	logger.Printf("metrics on %s", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Printf("metrics server: %v", err)
	}
}
