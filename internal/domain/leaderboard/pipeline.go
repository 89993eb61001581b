package leaderboard

import (
	"sort"

	"github.com/okian/jamstats/internal/domain/counting"
	"github.com/okian/jamstats/internal/domain/jis"
	"github.com/okian/jamstats/internal/domain/model"
	"github.com/okian/jamstats/internal/domain/scoring"
	"github.com/okian/jamstats/internal/domain/showindex"
	"github.com/okian/jamstats/internal/domain/tours"
	"github.com/okian/jamstats/internal/domain/types"
	"github.com/okian/jamstats/internal/domain/war"
)

// Compute runs the full pipeline once: pre-filter, derived indices,
// counting stats, PVS, replacement/WAR, JIS, rates, assembly and
// qualification. Entries come back ranked by career WAR descending with
// song name breaking ties.
func Compute(tracks []model.Track, f model.Filter) []types.Entry {
	filtered := FilterTracks(tracks, f)
	if len(filtered) == 0 {
		return []types.Entry{}
	}
	entries := assemble(filtered, f)
	rank(entries)
	return entries
}

// assemble executes the scoring stages over an already-filtered record
// set and returns qualified, unranked entries.
func assemble(filtered []model.Track, f model.Filter) []types.Entry {
	ix := showindex.New(filtered)
	countingStats := counting.Compute(filtered, ix)

	scorer := scoring.NewScorer(filtered, ix)
	perfs := scorer.ScoreAll(filtered)

	warStats := war.Compute(perfs, war.ReplacementLevels(perfs))
	jisStats := jis.Compute(perfs)

	bySong := make(map[string][]model.Track)
	for _, t := range filtered {
		bySong[t.Song] = append(bySong[t.Song], t)
	}

	entries := make([]types.Entry, 0, len(countingStats))
	for song, cs := range countingStats {
		e := types.Entry{
			Song:     song,
			Counting: cs,
			Rates:    counting.Rates(cs, bySong[song], ix.Count()),
		}
		// Shared input makes missing blocks unreachable in practice; the
		// zero-valued fallbacks are a documented default, not a crash path.
		if ws, ok := warStats[song]; ok {
			e.WAR = ws
		} else {
			e.WAR = types.ZeroWAR(song)
		}
		if js, ok := jisStats[song]; ok {
			e.JIS = js
		} else {
			e.JIS = types.ZeroJIS(song)
		}
		entries = append(entries, e)
	}
	return ApplyQualifications(entries, f)
}

// rank orders entries by career WAR descending, then song name, and
// assigns 1-based ranks.
func rank(entries []types.Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].WAR.CareerWAR != entries[j].WAR.CareerWAR {
			return entries[i].WAR.CareerWAR > entries[j].WAR.CareerWAR
		}
		return entries[i].Song < entries[j].Song
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
}

// ComputeAggregated buckets the filtered set by the configured
// aggregation mode and re-runs the scoring stages independently per
// bucket, tagging each entry with its aggregation key. Career mode is a
// pass-through that tags entries with just the song name.
func ComputeAggregated(tracks []model.Track, f model.Filter) []types.Entry {
	switch f.Aggregation {
	case model.AggregationByYear:
		return aggregateByYear(tracks, f)
	case model.AggregationByTour:
		return aggregateByTour(tracks, f)
	default:
		entries := Compute(tracks, f)
		for i := range entries {
			entries[i].Key = &types.AggregationKey{Song: entries[i].Song}
		}
		return entries
	}
}

func aggregateByYear(tracks []model.Track, f model.Filter) []types.Entry {
	filtered := FilterTracks(tracks, f)
	if len(filtered) == 0 {
		return []types.Entry{}
	}

	buckets := make(map[int][]model.Track)
	for _, t := range filtered {
		buckets[t.Year()] = append(buckets[t.Year()], t)
	}
	years := make([]int, 0, len(buckets))
	for y := range buckets {
		years = append(years, y)
	}
	sort.Ints(years)

	var out []types.Entry
	for _, year := range years {
		entries := assemble(buckets[year], f)
		rank(entries)
		for i := range entries {
			entries[i].Key = &types.AggregationKey{Song: entries[i].Song, Year: year}
		}
		out = append(out, entries...)
	}
	return out
}

func aggregateByTour(tracks []model.Track, f model.Filter) []types.Entry {
	filtered := FilterTracks(tracks, f)
	if len(filtered) == 0 {
		return []types.Entry{}
	}

	segments := tours.Segment(filtered, f.TourGapDays)
	byDate := tours.ByDate(segments)

	buckets := make(map[string][]model.Track, len(segments))
	for _, t := range filtered {
		tour := byDate[t.ShowDate]
		if tour == nil {
			continue
		}
		buckets[tour.ID] = append(buckets[tour.ID], t)
	}

	var out []types.Entry
	for _, tour := range segments {
		entries := assemble(buckets[tour.ID], f)
		rank(entries)
		for i := range entries {
			entries[i].Key = &types.AggregationKey{
				Song:      entries[i].Song,
				TourID:    tour.ID,
				TourLabel: tour.Label,
			}
		}
		out = append(out, entries...)
	}
	return out
}
