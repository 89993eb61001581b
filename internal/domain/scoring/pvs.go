// Package scoring computes the Performance Value Score: a per-performance
// composite of six terms summed without normalization or clamping.
package scoring

import (
	"github.com/okian/jamstats/internal/domain/counting"
	"github.com/okian/jamstats/internal/domain/model"
	"github.com/okian/jamstats/internal/domain/runs"
	"github.com/okian/jamstats/internal/domain/showindex"
)

// PVS term weights.
const (
	lengthWeight  = 1.5
	jamchartBonus = 1.5
	longPlayBonus = 0.5
	marathonBonus = 1.0
)

// Performance is one scored record with its component breakdown.
type Performance struct {
	Track model.Track
	PVS   float64

	Length      float64 // 1.5 x duration z-score within the year
	JamBonus    float64 // jamchart flag plus duration-threshold bonuses
	Bustout     float64 // tier bonus of the gap since the prior appearance
	SetLeverage float64 // position-in-set leverage
	RunLeverage float64 // show run-type leverage
	Rarity      float64 // 1 - plays/total within the year
}

// songYear is the composite accumulator key for yearly play counts.
type songYear struct {
	song string
	year int
}

// Scorer holds the cross-cutting derived indices one filtered record set
// needs for scoring: show ordinals, run types, yearly duration stats,
// per-song gap lookups and yearly play volumes. Construct once per
// pipeline run; Scorer retains no state between runs.
type Scorer struct {
	index     *showindex.Index
	years     map[int]YearStats
	runTypes  map[string]runs.RunType
	gaps      map[counting.SongDate]int
	bounds    map[ShowSet]Bounds
	songPlays map[songYear]int
	yearPlays map[int]int
}

// NewScorer derives all scoring context from the filtered record set.
func NewScorer(tracks []model.Track, ix *showindex.Index) *Scorer {
	s := &Scorer{
		index:     ix,
		years:     YearDurations(tracks),
		runTypes:  runs.ClassifyAll(tracks),
		gaps:      counting.Gaps(counting.Appearances(tracks, ix), ix),
		bounds:    SetBounds(tracks),
		songPlays: make(map[songYear]int),
		yearPlays: make(map[int]int),
	}
	for _, t := range tracks {
		y := t.Year()
		s.songPlays[songYear{song: t.Song, year: y}]++
		s.yearPlays[y]++
	}
	return s
}

// Score computes the six components for one record and their sum.
func (s *Scorer) Score(t model.Track) Performance {
	year := t.Year()

	p := Performance{Track: t}
	p.Length = lengthWeight * s.years[year].ZScore(t.DurationSeconds)

	if t.Jamchart {
		p.JamBonus += jamchartBonus
	}
	if t.DurationSeconds >= counting.LongPlaySeconds {
		p.JamBonus += longPlayBonus
	}
	if t.DurationSeconds >= counting.MarathonSeconds {
		p.JamBonus += marathonBonus
	}

	// First appearances and same-show repeats have no gap entry and score 0.
	p.Bustout = counting.BustoutBonus(s.gaps[counting.SongDate{Song: t.Song, Date: t.ShowDate}])

	p.SetLeverage = SetLeverage(t, s.bounds)
	p.RunLeverage = s.runTypes[t.ShowDate].Leverage()
	p.Rarity = Rarity(s.songPlays[songYear{song: t.Song, year: year}], s.yearPlays[year])

	p.PVS = p.Length + p.JamBonus + p.Bustout + p.SetLeverage + p.RunLeverage + p.Rarity
	return p
}

// ScoreAll scores every record, preserving input order.
func (s *Scorer) ScoreAll(tracks []model.Track) []Performance {
	out := make([]Performance, 0, len(tracks))
	for _, t := range tracks {
		out = append(out, s.Score(t))
	}
	return out
}
