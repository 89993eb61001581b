// Package counting derives per-song raw counts and rarity gaps from the
// filtered record set.
package counting

import (
	"math"
	"sort"

	"github.com/okian/jamstats/internal/domain/model"
	"github.com/okian/jamstats/internal/domain/showindex"
	"github.com/okian/jamstats/internal/domain/types"
)

// Duration thresholds, in seconds (records carry seconds; the thresholds
// are the 20- and 25-minute marks).
const (
	LongPlaySeconds = 20 * 60
	MarathonSeconds = 25 * 60
)

// SongDate is the composite accumulator key for per-performance gap
// lookups: one song on one show date.
type SongDate struct {
	Song string
	Date string
}

// Appearances returns, per song, the distinct show dates it appeared on,
// sorted by show ordinal. Repeats of a song within one show collapse to a
// single appearance.
func Appearances(tracks []model.Track, ix *showindex.Index) map[string][]string {
	seen := make(map[SongDate]struct{}, len(tracks))
	out := make(map[string][]string)
	for _, t := range tracks {
		key := SongDate{Song: t.Song, Date: t.ShowDate}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out[t.Song] = append(out[t.Song], t.ShowDate)
	}
	for song, dates := range out {
		sort.Slice(dates, func(i, j int) bool {
			return ix.Ordinal(dates[i]) < ix.Ordinal(dates[j])
		})
		out[song] = dates
	}
	return out
}

// Gaps returns the show-ordinal gap preceding every non-first appearance,
// keyed by song and date. First appearances carry no entry; callers
// default to 0.
func Gaps(appearances map[string][]string, ix *showindex.Index) map[SongDate]int {
	out := make(map[SongDate]int)
	for song, dates := range appearances {
		for i := 1; i < len(dates); i++ {
			out[SongDate{Song: song, Date: dates[i]}] = ix.Ordinal(dates[i]) - ix.Ordinal(dates[i-1])
		}
	}
	return out
}

// Compute builds per-song counting stats over the filtered set. A song
// with a single appearance has zero gaps and zero bustout counts; that is
// the defined edge case, not an error.
func Compute(tracks []model.Track, ix *showindex.Index) map[string]types.CountingStats {
	appearances := Appearances(tracks, ix)

	out := make(map[string]types.CountingStats, len(appearances))
	for song, dates := range appearances {
		cs := types.CountingStats{Song: song, ShowsAppeared: len(dates)}

		gapSum := 0
		for i := 1; i < len(dates); i++ {
			gap := ix.Ordinal(dates[i]) - ix.Ordinal(dates[i-1])
			gapSum += gap
			if gap > cs.MaxShowsBetweenPlays {
				cs.MaxShowsBetweenPlays = gap
			}
			if gap >= BustoutGap {
				cs.BustoutCount++
			}
			if gap >= MajorGap {
				cs.MegaBustoutCount++
			}
		}
		if len(dates) > 1 {
			cs.AvgShowsBetweenPlays = round1(float64(gapSum) / float64(len(dates)-1))
		}
		out[song] = cs
	}

	totalSeconds := make(map[string]int, len(out))
	for _, t := range tracks {
		cs := out[t.Song]
		cs.TimesPlayed++
		if t.Jamchart {
			cs.JamchartCount++
		}
		if t.DurationSeconds >= LongPlaySeconds {
			cs.PlaysOver20Min++
		}
		if t.DurationSeconds >= MarathonSeconds {
			cs.PlaysOver25Min++
		}
		totalSeconds[t.Song] += t.DurationSeconds
		out[t.Song] = cs
	}
	for song, secs := range totalSeconds {
		cs := out[song]
		cs.TotalMinutes = round1(float64(secs) / 60.0)
		out[song] = cs
	}
	return out
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
