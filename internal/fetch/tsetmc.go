package fetch

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"marketfetcher/internal/markets"
	"marketfetcher/pkg/httpclient"
	"marketfetcher/pkg/jdate"
	"marketfetcher/pkg/storage/sqlite"
)

// TSETMCFetcher reads daily closing prices from the Tehran Stock Exchange
// CDN. Rows arrive with typed numeric fields; dEven is a Gregorian YYYYMMDD
// integer that must be converted to the Jalali calendar.
type TSETMCFetcher struct {
	Client *httpclient.Client
}

type tsetmcPayload struct {
	ClosingPriceDaily []tsetmcRow `json:"closingPriceDaily"`
}

type tsetmcRow struct {
	PClosing *float64 `json:"pClosing"`
	DEven    int64    `json:"dEven"`
}

func (f *TSETMCFetcher) Fetch(ctx context.Context, cfg markets.Config) ([]sqlite.MarketRecord, error) {
	url := strings.Replace(cfg.URL, "{id}", cfg.InstrumentID, 1)

	var payload tsetmcPayload
	if err := f.Client.GetJSON(ctx, url, nil, &payload); err != nil {
		return nil, fmt.Errorf("tsetmc %s: %w", cfg.Name, err)
	}

	if len(payload.ClosingPriceDaily) == 0 {
		return nil, nil
	}

	records := make([]sqlite.MarketRecord, 0, len(payload.ClosingPriceDaily))
	for _, row := range payload.ClosingPriceDaily {
		deven := strconv.FormatInt(row.DEven, 10)
		if len(deven) < 8 {
			continue
		}

		year, errY := strconv.Atoi(deven[:4])
		month, errM := strconv.Atoi(deven[4:6])
		day, errD := strconv.Atoi(deven[6:8])
		if errY != nil || errM != nil || errD != nil {
			continue
		}

		records = append(records, sqlite.MarketRecord{
			Closing:    row.PClosing,
			JalaliDate: jdate.FromGregorian(year, month, day).String(),
			MarketType: cfg.Name,
		})
	}

	return records, nil
}
