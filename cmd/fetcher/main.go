package main

import (
	"context"
	"os"

	"marketfetcher/config"
	"marketfetcher/internal/fetch"
	"marketfetcher/internal/ingest"
	"marketfetcher/logger"
	"marketfetcher/pkg/httpclient"
	"marketfetcher/pkg/storage/sqlite"

	"go.uber.org/zap"
)

// Usage: fetcher [market ...]
// With no arguments every registered market is fetched.
func main() {
	// viper config
	cfg := config.Load()

	// zap logger
	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer log.Sync()

	// sqlite store
	store, err := sqlite.Initialize(cfg.SQLite)
	if err != nil {
		log.Fatal("failed to open store", zap.Error(err))
	}
	defer store.Close()

	client := httpclient.New(cfg.API.Timeout, cfg.API.MaxRetries, log)
	token := cfg.NFusion.ResolveToken(cfg.Log.Environment)
	fetchers := fetch.NewFetchers(client, token)

	orchestrator := ingest.New(fetchers, store, log, cfg.API.Concurrency)

	var names []string
	if len(os.Args) > 1 {
		names = os.Args[1:]
	}

	records, inserted, err := orchestrator.Run(context.Background(), names)
	if err != nil {
		log.Fatal("ingestion run failed", zap.Error(err))
	}

	log.Info("run complete",
		zap.Int("fetched", len(records)),
		zap.Int64("inserted", inserted),
		zap.String("db", cfg.SQLite.Path),
	)
}
