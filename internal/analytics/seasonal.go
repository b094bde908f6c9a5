package analytics

import (
	"math"
	"sort"
)

// SeasonalInfluence is the share one season contributes to a market-year,
// measured over seasonal mean closings.
type SeasonalInfluence struct {
	Market           string
	Year             int
	Season           string
	MeanClosing      float64
	InfluencePercent int
}

// SeasonalInfluences computes, for every (market, year, season), the seasonal
// mean closing and its integer percentage of the market-year's total across
// seasons. Output is ordered by market, year, then season of the Jalali
// calendar.
func SeasonalInfluences(enriched []Enriched) []SeasonalInfluence {
	type key struct {
		market string
		year   int
		season string
	}
	type agg struct {
		sum   float64
		count int
	}

	cells := map[key]*agg{}
	for _, e := range enriched {
		if e.Closing == nil {
			continue
		}
		k := key{market: e.Market, year: e.JalaliYear, season: e.JalaliSeason}
		a := cells[k]
		if a == nil {
			a = &agg{}
			cells[k] = a
		}
		a.sum += *e.Closing
		a.count++
	}

	type yearKey struct {
		market string
		year   int
	}
	totals := map[yearKey]float64{}
	means := map[key]float64{}
	for k, a := range cells {
		mean := a.sum / float64(a.count)
		means[k] = mean
		totals[yearKey{k.market, k.year}] += mean
	}

	seasonOrder := map[string]int{}
	for i, s := range jalaliSeasons {
		seasonOrder[s] = i
	}

	out := make([]SeasonalInfluence, 0, len(means))
	for k, mean := range means {
		total := totals[yearKey{k.market, k.year}]
		percent := 0
		if total != 0 {
			percent = int(math.Trunc(mean / total * 100))
		}
		out = append(out, SeasonalInfluence{
			Market:           k.market,
			Year:             k.year,
			Season:           k.season,
			MeanClosing:      mean,
			InfluencePercent: percent,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Market != out[j].Market {
			return out[i].Market < out[j].Market
		}
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return seasonOrder[out[i].Season] < seasonOrder[out[j].Season]
	})
	return out
}
