package analytics

import (
	"testing"

	"marketfetcher/pkg/jdate"
	"marketfetcher/pkg/storage/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

var (
	rangeStart = jdate.Date{Year: 1395, Month: 1, Day: 1}
	rangeEnd   = jdate.Date{Year: 1410, Month: 1, Day: 1}
)

func TestEnrichComponents(t *testing.T) {
	records := []sqlite.MarketRecord{
		{ID: 1, Closing: f(100), JalaliDate: "1403/01/15", MarketType: "Dollar"},
	}

	enriched, err := Enrich(records, rangeStart, rangeEnd)
	require.NoError(t, err)
	require.Len(t, enriched, 1)

	e := enriched[0]
	assert.Equal(t, "Dollar", e.Market)
	assert.Equal(t, 1403, e.JalaliYear)
	assert.Equal(t, 1, e.JalaliMonth)
	assert.Equal(t, "1403-01", e.JalaliYearMonth)
	assert.Equal(t, "بهار", e.JalaliSeason)
	assert.NotEmpty(t, e.JalaliWeekday)

	// 1403/01/15 falls in early April 2024; seasons are quarter buckets
	// (months 1-3 -> spring), so April lands in summer.
	assert.Equal(t, 2024, e.GregorianYear)
	assert.Equal(t, 4, e.GregorianMonth)
	assert.Equal(t, "2024-04", e.GregorianYearMonth)
	assert.Equal(t, "summer", e.GregorianSeason)
}

func TestEnrichFiltersDateRange(t *testing.T) {
	records := []sqlite.MarketRecord{
		{ID: 1, Closing: f(1), JalaliDate: "1394/12/29", MarketType: "Coin"}, // before start
		{ID: 2, Closing: f(2), JalaliDate: "1400/06/01", MarketType: "Coin"},
		{ID: 3, Closing: f(3), JalaliDate: "1410/01/01", MarketType: "Coin"}, // end is exclusive
	}

	enriched, err := Enrich(records, rangeStart, rangeEnd)
	require.NoError(t, err)
	require.Len(t, enriched, 1)
	assert.Equal(t, 1400, enriched[0].JalaliYear)
}

func TestEnrichRejectsMalformedDate(t *testing.T) {
	records := []sqlite.MarketRecord{
		{ID: 7, Closing: f(1), JalaliDate: "not-a-date", MarketType: "Coin"},
	}

	_, err := Enrich(records, rangeStart, rangeEnd)
	require.Error(t, err)
}

func TestSeason(t *testing.T) {
	// quarter mapping: months 1-3, 4-6, 7-9, 10-12
	assert.Equal(t, "بهار", Season(1, jalaliSeasons))
	assert.Equal(t, "تابستان", Season(4, jalaliSeasons))
	assert.Equal(t, "پاییز", Season(9, jalaliSeasons))
	assert.Equal(t, "زمستان", Season(12, jalaliSeasons))

	assert.Equal(t, "spring", Season(1, gregorianSeasons))
	assert.Equal(t, "spring", Season(3, gregorianSeasons))
	assert.Equal(t, "summer", Season(4, gregorianSeasons))
	assert.Equal(t, "winter", Season(12, gregorianSeasons))
}

func TestPeriodLabel(t *testing.T) {
	assert.Equal(t, "1401-1402-1403", PeriodLabel(1401, 3))
	assert.Equal(t, "1402-1403", PeriodLabel(1402, 2))
	assert.Equal(t, "1400-1401-1402-1403", PeriodLabel(1403, 4))
}
