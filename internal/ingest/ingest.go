// Package ingest runs the batch pipeline: fetch every requested market,
// normalize, and maintain the store.
package ingest

import (
	"context"
	"sync"

	"marketfetcher/internal/fetch"
	"marketfetcher/internal/markets"
	"marketfetcher/pkg/storage/sqlite"

	"go.uber.org/zap"
)

// Store is the persistence seam the orchestrator writes through.
type Store interface {
	Maintain(ctx context.Context, records []sqlite.MarketRecord) (int64, error)
}

type Orchestrator struct {
	fetchers    map[markets.Source]fetch.Fetcher
	store       Store
	logger      *zap.Logger
	concurrency int
}

func New(fetchers map[markets.Source]fetch.Fetcher, store Store, logger *zap.Logger, concurrency int) *Orchestrator {
	if concurrency < 1 {
		concurrency = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		fetchers:    fetchers,
		store:       store,
		logger:      logger,
		concurrency: concurrency,
	}
}

// FetchAll fetches the requested markets (nil means every registered market)
// and returns the concatenated records in request order. One market's failure
// never aborts the others: unknown names and fetch errors are logged and
// yield zero records.
func (o *Orchestrator) FetchAll(ctx context.Context, names []string) []sqlite.MarketRecord {
	if names == nil {
		names = markets.ListAll()
	}

	// Results are slotted by request position so aggregation order does not
	// depend on completion order.
	results := make([][]sqlite.MarketRecord, len(names))

	sem := make(chan struct{}, o.concurrency)
	var wg sync.WaitGroup

	for i, name := range names {
		cfg, err := markets.Resolve(name)
		if err != nil {
			o.logger.Warn("unknown market requested", zap.String("market", name))
			continue
		}

		fetcher, ok := o.fetchers[cfg.Source]
		if !ok {
			o.logger.Warn("no fetcher for source",
				zap.String("market", name),
				zap.String("source", string(cfg.Source)),
			)
			continue
		}

		wg.Add(1)
		sem <- struct{}{}

		go func(slot int, cfg markets.Config) {
			defer wg.Done()
			defer func() { <-sem }()

			o.logger.Info("fetching market", zap.String("market", cfg.Name))

			records, err := fetcher.Fetch(ctx, cfg)
			if err != nil {
				o.logger.Error("failed to fetch market",
					zap.String("market", cfg.Name),
					zap.Error(err),
				)
				return
			}
			if len(records) == 0 {
				o.logger.Warn("no data for market", zap.String("market", cfg.Name))
				return
			}

			results[slot] = records
		}(i, cfg)
	}

	wg.Wait()

	var all []sqlite.MarketRecord
	for _, records := range results {
		all = append(all, records...)
	}
	return all
}

// Run executes one full ingestion cycle: fetch, merge, collapse duplicates.
// It returns the fetched records and the number of rows newly inserted.
// Store failures are fatal and surface unmodified.
func (o *Orchestrator) Run(ctx context.Context, names []string) ([]sqlite.MarketRecord, int64, error) {
	records := o.FetchAll(ctx, names)
	if len(records) == 0 {
		o.logger.Info("nothing fetched, store untouched")
		return records, 0, nil
	}

	inserted, err := o.store.Maintain(ctx, records)
	if err != nil {
		return records, 0, err
	}

	o.logger.Info("store maintained",
		zap.Int("fetched", len(records)),
		zap.Int64("inserted", inserted),
	)
	return records, inserted, nil
}
