// Package fetch converts the raw payloads of the upstream API families into
// canonical market records.
package fetch

import (
	"context"

	"marketfetcher/internal/markets"
	"marketfetcher/pkg/httpclient"
	"marketfetcher/pkg/storage/sqlite"
)

// Fetcher retrieves and normalizes the rows of one market. Implementations
// return an empty slice, not an error, when the source has no data.
type Fetcher interface {
	Fetch(ctx context.Context, cfg markets.Config) ([]sqlite.MarketRecord, error)
}

// NewFetchers builds the source-kind dispatch table. All TGJU variants share
// one fetcher parameterized by the source tag.
func NewFetchers(client *httpclient.Client, nfusionToken string) map[markets.Source]Fetcher {
	tgju := &TGJUFetcher{Client: client}

	return map[markets.Source]Fetcher{
		markets.SourceTSETMC:        &TSETMCFetcher{Client: client},
		markets.SourceTGJUIndex:     tgju,
		markets.SourceTGJUStock:     tgju,
		markets.SourceTGJUIndicator: tgju,
		markets.SourceNFusion:       &NFusionFetcher{Client: client, Token: nfusionToken},
	}
}
