// Package war computes per-year replacement levels and each song's
// cumulative value above that baseline.
package war

import (
	"math"
	"sort"

	"github.com/okian/jamstats/internal/domain/scoring"
	"github.com/okian/jamstats/internal/domain/types"
)

// ReplacementPercentile is the PVS percentile defining the yearly scoring
// floor below which a performance is replacement-level.
const ReplacementPercentile = 20

// Percentile computes the p-th percentile with linear interpolation at
// fractional rank (p/100)x(n-1) between the bounding order statistics.
// Empty input returns 0; a single element returns itself. montanaflynn's
// Percentile is nearest-rank, which does not satisfy this contract.
func Percentile(values []float64, p float64) float64 {
	switch len(values) {
	case 0:
		return 0
	case 1:
		return values[0]
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	rank := (p / 100) * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo < 0 {
		lo = 0
	}
	if hi > len(sorted)-1 {
		hi = len(sorted) - 1
	}
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// ReplacementLevels computes the per-year 20th percentile of PVS values.
func ReplacementLevels(perfs []scoring.Performance) map[int]float64 {
	byYear := make(map[int][]float64)
	for _, p := range perfs {
		y := p.Track.Year()
		byYear[y] = append(byYear[y], p.PVS)
	}
	out := make(map[int]float64, len(byYear))
	for year, values := range byYear {
		out[year] = Percentile(values, ReplacementPercentile)
	}
	return out
}

// Compute aggregates WAR per song: the sum over its performances of
// (PVS - replacement level for that year), with per-play and per-show
// normalizations, a year breakdown, and the peak contribution year.
// Negative contributions are the intended value-above-baseline semantic.
func Compute(perfs []scoring.Performance, replacement map[int]float64) map[string]types.WARStats {
	type acc struct {
		total     float64
		plays     int
		shows     map[string]struct{}
		byYear    map[int]float64
		yearOrder []int
	}

	accs := make(map[string]*acc)
	for _, p := range perfs {
		song := p.Track.Song
		a, ok := accs[song]
		if !ok {
			a = &acc{shows: make(map[string]struct{}), byYear: make(map[int]float64)}
			accs[song] = a
		}
		year := p.Track.Year()
		contribution := p.PVS - replacement[year]

		a.total += contribution
		a.plays++
		a.shows[p.Track.ShowDate] = struct{}{}
		if _, seen := a.byYear[year]; !seen {
			a.yearOrder = append(a.yearOrder, year)
		}
		a.byYear[year] += contribution
	}

	out := make(map[string]types.WARStats, len(accs))
	for song, a := range accs {
		ws := types.WARStats{
			Song:      song,
			CareerWAR: round2(a.total),
			ByYear:    make(map[int]float64, len(a.byYear)),
		}
		if a.plays > 0 {
			ws.WARPerPlay = round2(a.total / float64(a.plays))
		}
		if len(a.shows) > 0 {
			ws.WARPerShow = round2(a.total / float64(len(a.shows)))
		}

		// Peak year ties break toward the first year encountered in record
		// iteration order, matching the accumulation's insertion order.
		for i, year := range a.yearOrder {
			contribution := round2(a.byYear[year])
			ws.ByYear[year] = contribution
			if i == 0 || contribution > ws.PeakYearWAR {
				ws.PeakYear = year
				ws.PeakYearWAR = contribution
			}
		}
		out[song] = ws
	}
	return out
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
