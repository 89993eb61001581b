// Package leaderboard wires the statistics pipeline into ranked,
// filterable leaderboards with career, by-year and by-tour aggregation.
package leaderboard

import (
	"strconv"
	"strings"

	"github.com/okian/jamstats/internal/domain/location"
	"github.com/okian/jamstats/internal/domain/model"
	"github.com/okian/jamstats/internal/domain/runs"
	"github.com/okian/jamstats/internal/domain/scoring"
	"github.com/okian/jamstats/internal/domain/types"
)

// splitSetLabels maps set-split selectors to the literal set labels they
// filter on.
var splitSetLabels = map[string]string{
	model.SplitSet1:   "Set 1",
	model.SplitSet2:   "Set 2",
	model.SplitSet3:   "Set 3",
	model.SplitEncore: "Encore",
}

// FilterTracks applies the pre-filters in sequence: year range, set
// label, venue/region/country, venue-run position, and finally the
// opener/closer positional split. The positional split recomputes
// per-(show,set) bounds over records that already passed the earlier
// filters; the venue-run position is judged against the full schedule.
func FilterTracks(tracks []model.Track, f model.Filter) []model.Track {
	var venueRuns map[string]runs.VenueRun
	if wantRunPosition(f.RunPosition) {
		venueRuns = runs.VenueRuns(tracks)
	}

	out := make([]model.Track, 0, len(tracks))
	for _, t := range tracks {
		if !yearInRange(t, f) {
			continue
		}
		if label, ok := splitSetLabels[f.SetSplit]; ok && t.Set != label {
			continue
		}
		if f.Venue != "" && t.Venue != f.Venue {
			continue
		}
		if f.Region != "" {
			code, ok := location.Region(t.Location)
			if !ok || code != f.Region {
				continue
			}
		}
		if !countryMatch(t, f.Country) {
			continue
		}
		if venueRuns != nil && !runPositionMatch(venueRuns[t.ShowDate], f.RunPosition) {
			continue
		}
		out = append(out, t)
	}

	if f.SetSplit == model.SplitOpener || f.SetSplit == model.SplitCloser {
		out = positionalSplit(out, f.SetSplit)
	}
	return out
}

func yearInRange(t model.Track, f model.Filter) bool {
	y := t.Year()
	if f.YearStart != 0 && y < f.YearStart {
		return false
	}
	if f.YearEnd != 0 && y > f.YearEnd {
		return false
	}
	return true
}

// countryMatch buckets on the region-code heuristic: a parsable trailing
// region code counts as US, anything else as international.
func countryMatch(t model.Track, country string) bool {
	switch country {
	case "", model.CountryAll:
		return true
	case model.CountryUS:
		_, ok := location.Region(t.Location)
		return ok
	case model.CountryInternational:
		_, ok := location.Region(t.Location)
		return !ok
	default:
		return true
	}
}

func wantRunPosition(pos string) bool {
	return pos != "" && pos != model.RunPositionAll
}

// runPositionMatch keeps shows at the requested slot of a multi-night
// venue run: opener, closer, or an exact night ("night2", "night3", ...).
func runPositionMatch(vr runs.VenueRun, pos string) bool {
	switch pos {
	case model.RunPositionOpener:
		return vr.Opener
	case model.RunPositionCloser:
		return vr.Closer
	default:
		if n, ok := strings.CutPrefix(pos, "night"); ok {
			night, err := strconv.Atoi(n)
			return err == nil && vr.Night == night
		}
		return true
	}
}

// positionalSplit keeps records sitting at their set's min (opener) or
// max (closer) position, with bounds computed over the already-filtered
// records.
func positionalSplit(tracks []model.Track, split string) []model.Track {
	bounds := scoring.SetBounds(tracks)
	out := make([]model.Track, 0, len(tracks))
	for _, t := range tracks {
		b := bounds[scoring.ShowSet{Date: t.ShowDate, Set: t.Set}]
		switch split {
		case model.SplitOpener:
			if t.Position == b.Min {
				out = append(out, t)
			}
		case model.SplitCloser:
			if t.Position == b.Max {
				out = append(out, t)
			}
		}
	}
	return out
}

// ApplyQualifications keeps entries meeting every minimum threshold.
func ApplyQualifications(entries []types.Entry, f model.Filter) []types.Entry {
	out := make([]types.Entry, 0, len(entries))
	for _, e := range entries {
		if e.Counting.TimesPlayed < f.MinTimesPlayed {
			continue
		}
		if e.Counting.ShowsAppeared < f.MinShowsAppeared {
			continue
		}
		if e.Counting.JamchartCount < f.MinJamchartCount {
			continue
		}
		if e.Counting.TotalMinutes < f.MinTotalMinutes {
			continue
		}
		out = append(out, e)
	}
	return out
}
