package fetch

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"marketfetcher/internal/markets"
	"marketfetcher/pkg/httpclient"
	"marketfetcher/pkg/jdate"
	"marketfetcher/pkg/storage/sqlite"
)

// NFusionFetcher reads the silver price history from the NFusion Solutions
// widget API. The endpoint wants a form-encoded POST with a bearer token;
// interval start dates are Gregorian ISO timestamps.
type NFusionFetcher struct {
	Client *httpclient.Client
	Token  string
}

type nfusionSeries struct {
	Intervals []nfusionInterval `json:"intervals"`
}

type nfusionInterval struct {
	Start string   `json:"start"`
	Last  *float64 `json:"last"`
}

func (f *NFusionFetcher) Fetch(ctx context.Context, cfg markets.Config) ([]sqlite.MarketRecord, error) {
	form := url.Values{}
	form.Set("clientId", "6e98ae99-d878-43a2-81f0-a2528bd3d47e")
	form.Set("instance", "09f630d9-619e-43cb-ad6c-941f16ecc1ec")
	form.Set("customId", "")
	form.Set("widgetVersion", "1")
	form.Set("widgetType", "chart")
	form.Set("symbols", "silver")
	form.Set("currency", "USD")
	form.Set("unitOfMeasure", "toz")
	form.Set("timeframeType", "year")

	headers := map[string]string{
		"Authorization": "Bearer " + f.Token,
	}

	var payload []nfusionSeries
	if err := f.Client.PostForm(ctx, cfg.URL, form, headers, &payload); err != nil {
		return nil, fmt.Errorf("nfusion %s: %w", cfg.Name, err)
	}

	if len(payload) == 0 || len(payload[0].Intervals) == 0 {
		return nil, nil
	}

	intervals := payload[0].Intervals
	records := make([]sqlite.MarketRecord, 0, len(intervals))
	for _, interval := range intervals {
		date, ok := isoToJalali(interval.Start)
		if !ok {
			continue
		}

		records = append(records, sqlite.MarketRecord{
			Closing:    interval.Last,
			JalaliDate: date,
			MarketType: cfg.Name,
		})
	}

	return records, nil
}

// isoToJalali converts the date prefix of an ISO timestamp ("2024-03-20T...")
// to the Jalali YYYY/MM/DD form.
func isoToJalali(start string) (string, bool) {
	if len(start) < 10 {
		return "", false
	}

	parts := strings.SplitN(start[:10], "-", 3)
	if len(parts) != 3 {
		return "", false
	}

	year, errY := strconv.Atoi(parts[0])
	month, errM := strconv.Atoi(parts[1])
	day, errD := strconv.Atoi(parts[2])
	if errY != nil || errM != nil || errD != nil {
		return "", false
	}

	return jdate.FromGregorian(year, month, day).String(), true
}
