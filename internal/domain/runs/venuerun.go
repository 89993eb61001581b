package runs

import (
	"sort"

	"github.com/okian/jamstats/internal/domain/model"
)

// VenueRun describes one show's place inside a multi-night stand:
// consecutive calendar-day shows at the identical venue string.
type VenueRun struct {
	Venue     string
	RunLength int
	Night     int // 1-based position within the run
	Opener    bool
	Closer    bool
}

// VenueRuns extracts unique (date, venue) pairs, sorts them by date, and
// greedily groups maximal runs where each show is exactly one calendar day
// after the previous at the same venue. Breaking either condition starts a
// new run. A single-night stand is both opener and closer.
func VenueRuns(tracks []model.Track) map[string]VenueRun {
	type show struct {
		date  string
		venue string
	}

	seen := make(map[string]struct{}, len(tracks))
	shows := make([]show, 0, len(tracks))
	for _, t := range tracks {
		if _, ok := seen[t.ShowDate]; ok {
			continue
		}
		seen[t.ShowDate] = struct{}{}
		shows = append(shows, show{date: t.ShowDate, venue: t.Venue})
	}
	sort.Slice(shows, func(i, j int) bool { return shows[i].date < shows[j].date })

	out := make(map[string]VenueRun, len(shows))
	for start := 0; start < len(shows); {
		end := start + 1
		for end < len(shows) &&
			shows[end].venue == shows[start].venue &&
			model.DaysBetween(shows[end-1].date, shows[end].date) == 1 {
			end++
		}
		length := end - start
		for i := start; i < end; i++ {
			night := i - start + 1
			out[shows[i].date] = VenueRun{
				Venue:     shows[start].venue,
				RunLength: length,
				Night:     night,
				Opener:    night == 1,
				Closer:    night == length,
			}
		}
		start = end
	}
	return out
}
