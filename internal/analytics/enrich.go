// Package analytics derives descriptive views over stored market records:
// date enrichment, yearly growth, rankings, and seasonal influence.
package analytics

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"marketfetcher/pkg/jdate"
	"marketfetcher/pkg/storage/sqlite"
)

var (
	jalaliSeasons    = [4]string{"بهار", "تابستان", "پاییز", "زمستان"}
	gregorianSeasons = [4]string{"spring", "summer", "autumn", "winter"}
)

// Enriched is one observation annotated with the date components both
// calendars contribute.
type Enriched struct {
	Market  string
	Closing *float64

	JalaliDate      jdate.Date
	JalaliYear      int
	JalaliMonth     int
	JalaliYearMonth string
	JalaliSeason    string
	JalaliWeekday   string

	GregorianDate      time.Time
	GregorianYear      int
	GregorianMonth     int
	GregorianYearMonth string
	GregorianSeason    string
	GregorianWeekday   string
}

// Enrich annotates stored records with calendar components and filters them
// to the half-open Jalali range [start, end). A malformed stored date is a
// corruption of our own table and is reported as an error.
func Enrich(records []sqlite.MarketRecord, start, end jdate.Date) ([]Enriched, error) {
	out := make([]Enriched, 0, len(records))

	for _, r := range records {
		d, err := jdate.Parse(r.JalaliDate)
		if err != nil {
			return nil, fmt.Errorf("record %d (%s): %w", r.ID, r.MarketType, err)
		}

		if d.Before(start) || !d.Before(end) {
			continue
		}

		g := d.Gregorian()
		out = append(out, Enriched{
			Market:  r.MarketType,
			Closing: r.Closing,

			JalaliDate:      d,
			JalaliYear:      d.Year,
			JalaliMonth:     d.Month,
			JalaliYearMonth: fmt.Sprintf("%04d-%02d", d.Year, d.Month),
			JalaliSeason:    Season(d.Month, jalaliSeasons),
			JalaliWeekday:   d.Weekday(),

			GregorianDate:      g,
			GregorianYear:      g.Year(),
			GregorianMonth:     int(g.Month()),
			GregorianYearMonth: g.Format("2006-01"),
			GregorianSeason:    Season(int(g.Month()), gregorianSeasons),
			GregorianWeekday:   g.Weekday().String(),
		})
	}

	return out, nil
}

// Season maps a month (1-12) onto one of four season names.
func Season(month int, seasons [4]string) string {
	return seasons[(month-1)/3]
}

// PeriodLabel groups a year into its fixed span-year bucket, e.g.
// PeriodLabel(1401, 3) = "1401-1402-1403".
func PeriodLabel(year, span int) string {
	base := (year / span) * span
	parts := make([]string, span)
	for i := 0; i < span; i++ {
		parts[i] = strconv.Itoa(base + i)
	}
	return strings.Join(parts, "-")
}
