package counting

import (
	"math"

	"github.com/montanaflynn/stats"

	"github.com/okian/jamstats/internal/domain/model"
	"github.com/okian/jamstats/internal/domain/types"
)

// Rates normalizes a song's counting stats into per-play and per-show
// rates. totalShows is the distinct show count of the whole filtered set.
// Zero denominators degrade to zero rates.
func Rates(cs types.CountingStats, songTracks []model.Track, totalShows int) types.RateStats {
	rs := types.RateStats{Song: cs.Song}

	if cs.TimesPlayed > 0 {
		plays := float64(cs.TimesPlayed)
		rs.JamchartRate = round3(float64(cs.JamchartCount) / plays)
		rs.LongPlayRate = round3(float64(cs.PlaysOver20Min) / plays)
		rs.MarathonRate = round3(float64(cs.PlaysOver25Min) / plays)
	}
	if totalShows > 0 {
		rs.PlaysPerShow = round3(float64(cs.TimesPlayed) / float64(totalShows))
		rs.ShowCoverage = round3(float64(cs.ShowsAppeared) / float64(totalShows))
	}

	if len(songTracks) > 0 {
		minutes := make([]float64, 0, len(songTracks))
		for _, t := range songTracks {
			minutes = append(minutes, t.DurationMinutes())
		}
		mean, _ := stats.Mean(minutes)
		median, _ := stats.Median(minutes)
		rs.AvgDuration = round1(mean)
		rs.MedianDuration = round1(median)
	}
	return rs
}

func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}
