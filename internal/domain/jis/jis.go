// Package jis normalizes PVS onto a 0-10 impact scale and aggregates it
// per song.
package jis

import (
	"math"

	"github.com/montanaflynn/stats"

	"github.com/okian/jamstats/internal/domain/scoring"
	"github.com/okian/jamstats/internal/domain/types"
)

// Scale bounds and the degenerate-range midpoint.
const (
	scaleMax = 10.0
	midpoint = 5.0
)

// Normalize maps a PVS onto [0, 10] against the global min and max of the
// filtered set, clamped and rounded to 2 decimals. A degenerate range
// (max equals min) normalizes to the midpoint 5.
func Normalize(pvs, min, max float64) float64 {
	if max == min {
		return midpoint
	}
	score := scaleMax * (pvs - min) / (max - min)
	if score < 0 {
		score = 0
	}
	if score > scaleMax {
		score = scaleMax
	}
	return round2(score)
}

// Compute finds the global PVS range across the entire filtered
// performance set, normalizes every performance, and reports per-song
// mean, peak and population-stddev volatility.
func Compute(perfs []scoring.Performance) map[string]types.JISStats {
	if len(perfs) == 0 {
		return map[string]types.JISStats{}
	}

	values := make([]float64, 0, len(perfs))
	for _, p := range perfs {
		values = append(values, p.PVS)
	}
	min, _ := stats.Min(values)
	max, _ := stats.Max(values)

	bySong := make(map[string][]float64)
	for _, p := range perfs {
		song := p.Track.Song
		bySong[song] = append(bySong[song], Normalize(p.PVS, min, max))
	}

	out := make(map[string]types.JISStats, len(bySong))
	for song, scores := range bySong {
		mean, _ := stats.Mean(scores)
		peak, _ := stats.Max(scores)
		volatility, _ := stats.StandardDeviation(scores) // population form
		out[song] = types.JISStats{
			Song:          song,
			AvgJIS:        round2(mean),
			PeakJIS:       round2(peak),
			JISVolatility: round2(volatility),
			Performances:  len(scores),
		}
	}
	return out
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
