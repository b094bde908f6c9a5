// Package markets holds the static catalog of tracked instruments and the
// API source each one is fetched from.
package markets

import (
	"errors"
	"fmt"
)

// Source identifies which API family serves a market.
type Source string

const (
	SourceTSETMC        Source = "tsetmc"
	SourceTGJUIndex     Source = "tgju_index"
	SourceTGJUStock     Source = "tgju_stock"
	SourceTGJUIndicator Source = "tgju_indicator"
	SourceNFusion       Source = "nfusion"
)

// Config describes one market: where to fetch it and how. InstrumentID is
// only set for TSETMC markets, whose URL template carries an {id} slot.
type Config struct {
	Name         string
	URL          string
	Source       Source
	InstrumentID string
}

// ErrUnknownMarket is returned by Resolve for names not in the catalog.
var ErrUnknownMarket = errors.New("unknown market")

const (
	tsetmcURL         = "https://cdn.tsetmc.com/api/ClosingPrice/GetClosingPriceDailyList/{id}/0"
	tgjuInstrumentURL = "https://api.tgju.org/v1/stocks/instrument/history-data/"
	tgjuIndicatorURL  = "https://api.tgju.org/v1/market/indicator/summary-table-data/"
	nfusionURL        = "https://widget.nfusionsolutions.com/api/v1/Data/history"
)

// catalog lists every tracked market in its canonical order. ListAll
// preserves this order for callers.
var catalog = []Config{
	// TSETMC funds
	{Name: "Sandoghe-Aiar", URL: tsetmcURL, Source: SourceTSETMC, InstrumentID: "34144395039913458"},
	{Name: "Salam", URL: tsetmcURL, Source: SourceTSETMC, InstrumentID: "70541934393301867"},
	{Name: "Energy", URL: tsetmcURL, Source: SourceTSETMC, InstrumentID: "49641108336531623"},
	{Name: "Synergy", URL: tsetmcURL, Source: SourceTSETMC, InstrumentID: "15001802434062073"},
	// TGJU indexes
	{Name: "Bourse", URL: tgjuInstrumentURL + "%D8%B4-%DA%A9%D9%84-%D8%A8%D9%88%D8%B1%D8%B3", Source: SourceTGJUIndex},
	{Name: "Fara-Bourse", URL: tgjuInstrumentURL + "%D8%B4-%DA%A9%D9%84-%D9%81%D8%B1%D8%A7%D8%A8%D9%88%D8%B1%D8%B3", Source: SourceTGJUIndex},
	{Name: "Bourse-Khodro", URL: tgjuInstrumentURL + "%D8%B4-%D8%AE%D9%88%D8%AF%D8%B1%D9%88%D8%B3%D8%A7%D8%B2%DB%8C", Source: SourceTGJUIndex},
	// TGJU stocks
	{Name: "Khesapa", URL: tgjuInstrumentURL + "خساپا", Source: SourceTGJUStock},
	{Name: "Khodro", URL: tgjuInstrumentURL + "خودرو", Source: SourceTGJUStock},
	// TGJU indicators
	{Name: "Dollar", URL: tgjuIndicatorURL + "price_dollar_rl", Source: SourceTGJUIndicator},
	{Name: "Coin", URL: tgjuIndicatorURL + "sekee", Source: SourceTGJUIndicator},
	{Name: "Nim-Coin", URL: tgjuIndicatorURL + "nim", Source: SourceTGJUIndicator},
	{Name: "Coin-Gerami", URL: tgjuIndicatorURL + "gerami", Source: SourceTGJUIndicator},
	{Name: "Bitcoin", URL: tgjuIndicatorURL + "crypto-bitcoin", Source: SourceTGJUIndicator},
	{Name: "Rob-Coin", URL: tgjuIndicatorURL + "rob", Source: SourceTGJUIndicator},
	// NFusion
	{Name: "Silver", URL: nfusionURL, Source: SourceNFusion},
}

var byName = func() map[string]Config {
	m := make(map[string]Config, len(catalog))
	for _, cfg := range catalog {
		m[cfg.Name] = cfg
	}
	return m
}()

// Resolve returns the configuration for a market name.
func Resolve(name string) (Config, error) {
	cfg, ok := byName[name]
	if !ok {
		return Config{}, fmt.Errorf("%w: %s", ErrUnknownMarket, name)
	}
	return cfg, nil
}

// ListAll returns every registered market name in catalog order.
func ListAll() []string {
	names := make([]string, len(catalog))
	for i, cfg := range catalog {
		names[i] = cfg.Name
	}
	return names
}
