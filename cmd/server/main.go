package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/blocksearch/internal/api"
	"github.com/dgallion1/blocksearch/internal/config"
	"github.com/dgallion1/blocksearch/internal/embed"
	"github.com/dgallion1/blocksearch/internal/library"
	"github.com/dgallion1/blocksearch/internal/pipeline"
	"github.com/joho/godotenv"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Embedding backend with latency tracking.
	stats := embed.NewCallStats(time.Hour)
	encoder := embed.NewOllamaEncoder(cfg.OllamaURL, cfg.EmbedModel, cfg.EmbedBatchSize)
	encoder.Stats = stats

	// Document library; reload anything persisted from a previous run.
	lib, err := library.New(cfg.DataDir)
	if err != nil {
		log.Error("library init failed", "error", err)
		os.Exit(1)
	}
	loaded, loadErrs := lib.LoadAll(encoder)
	for docID, err := range loadErrs {
		log.Warn("skipping persisted document", "doc_id", docID, "error", err)
	}
	if len(loaded) > 0 {
		log.Info("restored documents", "count", len(loaded))
	}

	// Ingestion pipeline.
	orch := pipeline.NewOrchestrator(cfg, encoder, lib, log)
	orch.Start(ctx)

	// HTTP server.
	srv := api.NewServer(orch, lib, stats, log, cfg)
	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting blocksearch", "port", cfg.Port, "model", cfg.EmbedModel)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
