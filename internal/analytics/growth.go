package analytics

import "sort"

// GrowthPoint is the mean closing of one market-year and its percent change
// against the previous year. Rate is nil for a market's first observed year.
type GrowthPoint struct {
	Market      string
	Year        int
	MeanClosing float64
	Rate        *float64
}

// RankedGrowth is a growth point with its dense rank within the year
// (1 = strongest growth).
type RankedGrowth struct {
	GrowthPoint
	Rank int
}

// GrowthRates computes yearly mean closings per market and the year-over-year
// percent change. Null closings are ignored; a market-year with no priced
// observations is dropped. The result is ordered by market, then year.
func GrowthRates(enriched []Enriched) []GrowthPoint {
	type yearAgg struct {
		sum   float64
		count int
	}

	agg := map[string]map[int]*yearAgg{}
	for _, e := range enriched {
		if e.Closing == nil {
			continue
		}
		years := agg[e.Market]
		if years == nil {
			years = map[int]*yearAgg{}
			agg[e.Market] = years
		}
		a := years[e.JalaliYear]
		if a == nil {
			a = &yearAgg{}
			years[e.JalaliYear] = a
		}
		a.sum += *e.Closing
		a.count++
	}

	var points []GrowthPoint
	for market, years := range agg {
		yearList := make([]int, 0, len(years))
		for year := range years {
			yearList = append(yearList, year)
		}
		sort.Ints(yearList)

		var prev *float64
		for _, year := range yearList {
			a := years[year]
			mean := a.sum / float64(a.count)

			point := GrowthPoint{Market: market, Year: year, MeanClosing: mean}
			if prev != nil && *prev != 0 {
				rate := (mean - *prev) / *prev * 100
				point.Rate = &rate
			}
			prevCopy := mean
			prev = &prevCopy

			points = append(points, point)
		}
	}

	sort.Slice(points, func(i, j int) bool {
		if points[i].Market != points[j].Market {
			return points[i].Market < points[j].Market
		}
		return points[i].Year < points[j].Year
	})
	return points
}

// Rankings dense-ranks markets within each year by growth rate, strongest
// first. Points without a rate (first observed year) and excluded years are
// skipped. Output is ordered by year, then rank.
func Rankings(points []GrowthPoint, excludeYears []int) []RankedGrowth {
	excluded := make(map[int]bool, len(excludeYears))
	for _, year := range excludeYears {
		excluded[year] = true
	}

	byYear := map[int][]GrowthPoint{}
	for _, p := range points {
		if p.Rate == nil || excluded[p.Year] {
			continue
		}
		byYear[p.Year] = append(byYear[p.Year], p)
	}

	years := make([]int, 0, len(byYear))
	for year := range byYear {
		years = append(years, year)
	}
	sort.Ints(years)

	var ranked []RankedGrowth
	for _, year := range years {
		group := byYear[year]
		sort.Slice(group, func(i, j int) bool {
			if *group[i].Rate != *group[j].Rate {
				return *group[i].Rate > *group[j].Rate
			}
			return group[i].Market < group[j].Market
		})

		rank := 0
		var lastRate float64
		for i, p := range group {
			if i == 0 || *p.Rate != lastRate {
				rank++
			}
			lastRate = *p.Rate
			ranked = append(ranked, RankedGrowth{GrowthPoint: p, Rank: rank})
		}
	}
	return ranked
}

// TopMarkets returns at most n entries per year from an already-ranked list.
func TopMarkets(ranked []RankedGrowth, n int) []RankedGrowth {
	counts := map[int]int{}
	var top []RankedGrowth
	for _, r := range ranked {
		if counts[r.Year] >= n {
			continue
		}
		counts[r.Year]++
		top = append(top, r)
	}
	return top
}
