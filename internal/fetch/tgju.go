package fetch

import (
	"context"
	"fmt"
	"net/url"

	"marketfetcher/internal/markets"
	"marketfetcher/pkg/httpclient"
	"marketfetcher/pkg/jdate"
	"marketfetcher/pkg/storage/sqlite"
)

// TGJUFetcher serves the three TGJU source kinds. Each kind returns rows as
// positional arrays with a different column layout:
//
//	index:     [jalali, closing, lowest, highest]
//	stock:     [jalali, a, b, closing, c]
//	indicator: [opening, lowest, highest, closing, ..., jalali]
//
// Cells are HTML fragments or locale-formatted numbers and go through the
// value parser.
type TGJUFetcher struct {
	Client *httpclient.Client
}

type tgjuPayload struct {
	Data [][]any `json:"data"`
}

func (f *TGJUFetcher) Fetch(ctx context.Context, cfg markets.Config) ([]sqlite.MarketRecord, error) {
	var payload tgjuPayload
	if err := f.Client.GetJSON(ctx, cfg.URL, queryParams(cfg.Source), &payload); err != nil {
		return nil, fmt.Errorf("tgju %s: %w", cfg.Name, err)
	}

	if len(payload.Data) == 0 {
		return nil, nil
	}

	records := make([]sqlite.MarketRecord, 0, len(payload.Data))
	for _, row := range payload.Data {
		dateCell, closingCell, ok := pickCells(cfg.Source, row)
		if !ok {
			continue
		}

		rawDate, ok := CleanValue(dateCell)
		if !ok {
			continue
		}
		date, err := jdate.Parse(rawDate)
		if err != nil {
			continue
		}

		var closing *float64
		if cleaned, ok := CleanValue(closingCell); ok {
			if n, ok := ParseNumber(cleaned); ok {
				closing = &n
			}
		}

		records = append(records, sqlite.MarketRecord{
			Closing:    closing,
			JalaliDate: date.String(),
			MarketType: cfg.Name,
		})
	}

	return records, nil
}

// queryParams returns the variant-specific query string. Indicator data is
// requested with convert_to_ad=1 so the upstream delivers its dates already
// converted.
func queryParams(source markets.Source) url.Values {
	params := url.Values{}
	params.Set("order_dir", "asc")
	params.Set("lang", "fa")

	switch source {
	case markets.SourceTGJUIndex:
		params.Set("market", "index")
	case markets.SourceTGJUStock:
		params.Set("market", "stock")
	case markets.SourceTGJUIndicator:
		params.Set("convert_to_ad", "1")
	}

	return params
}

// pickCells selects the date and closing cells for the variant's layout.
func pickCells(source markets.Source, row []any) (dateCell, closingCell any, ok bool) {
	switch source {
	case markets.SourceTGJUIndex:
		if len(row) < 2 {
			return nil, nil, false
		}
		return row[0], row[1], true
	case markets.SourceTGJUStock:
		if len(row) < 4 {
			return nil, nil, false
		}
		return row[0], row[3], true
	case markets.SourceTGJUIndicator:
		if len(row) < 5 {
			return nil, nil, false
		}
		return row[len(row)-1], row[3], true
	default:
		return nil, nil, false
	}
}
