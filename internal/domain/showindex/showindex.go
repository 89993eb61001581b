// Package showindex builds a chronological ordinal index over show dates.
package showindex

import (
	"sort"

	"github.com/okian/jamstats/internal/domain/model"
)

// Index maps each unique show date to a dense zero-based chronological
// ordinal. Ordinals, not calendar days, are the unit of "gap" everywhere
// in the pipeline.
type Index struct {
	ordinals map[string]int
	dates    []string
}

// New builds an index from the given records. Dates are deduplicated and
// sorted lexicographically, which matches chronological order for the
// fixed-width "YYYY-MM-DD" form. An empty input yields an empty index.
func New(tracks []model.Track) *Index {
	seen := make(map[string]struct{}, len(tracks))
	for _, t := range tracks {
		seen[t.ShowDate] = struct{}{}
	}

	dates := make([]string, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	ordinals := make(map[string]int, len(dates))
	for i, d := range dates {
		ordinals[d] = i
	}
	return &Index{ordinals: ordinals, dates: dates}
}

// Ordinal returns the chronological ordinal for date. Unknown dates fall
// back to 0 rather than failing.
func (ix *Index) Ordinal(date string) int {
	n, ok := ix.ordinals[date]
	if !ok {
		return 0
	}
	return n
}

// Contains reports whether date is part of the index.
func (ix *Index) Contains(date string) bool {
	_, ok := ix.ordinals[date]
	return ok
}

// Dates returns the sorted unique show dates. Callers must not mutate
// the returned slice.
func (ix *Index) Dates() []string {
	return ix.dates
}

// Count returns the number of distinct shows.
func (ix *Index) Count() int {
	return len(ix.dates)
}
