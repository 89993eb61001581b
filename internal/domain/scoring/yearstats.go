package scoring

import (
	"math"

	"github.com/montanaflynn/stats"

	"github.com/okian/jamstats/internal/domain/model"
)

// YearStats holds one calendar year's duration distribution, used only to
// z-score individual performances within their year. Mean and deviation
// are population figures rounded to the nearest whole second.
type YearStats struct {
	Mean   float64
	StdDev float64
	Count  int
}

// ZScore places a duration against the year's distribution. A zero
// deviation yields exactly 0 by policy, guarding the division.
func (y YearStats) ZScore(durationSeconds int) float64 {
	if y.StdDev == 0 {
		return 0
	}
	return (float64(durationSeconds) - y.Mean) / y.StdDev
}

// YearDurations groups records by the show date's year and computes each
// year's duration mean and population standard deviation.
func YearDurations(tracks []model.Track) map[int]YearStats {
	byYear := make(map[int][]float64)
	for _, t := range tracks {
		y := t.Year()
		byYear[y] = append(byYear[y], float64(t.DurationSeconds))
	}

	out := make(map[int]YearStats, len(byYear))
	for year, durations := range byYear {
		mean, _ := stats.Mean(durations)
		// StandardDeviation is the population form, not Bessel-corrected.
		dev, _ := stats.StandardDeviation(durations)
		out[year] = YearStats{
			Mean:   math.Round(mean),
			StdDev: math.Round(dev),
			Count:  len(durations),
		}
	}
	return out
}
