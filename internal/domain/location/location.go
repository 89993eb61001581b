// Package location parses free-text location strings into region codes.
package location

import (
	"sort"
	"strings"

	"github.com/okian/jamstats/internal/domain/model"
)

// Region extracts a two-letter region code from a comma-separated
// location string: the last segment, trimmed, when it is exactly two
// uppercase letters. Two-letter country abbreviations are
// indistinguishable from US state codes under this heuristic; that
// ambiguity is accepted.
func Region(loc string) (string, bool) {
	if loc == "" {
		return "", false
	}
	parts := strings.Split(loc, ",")
	last := strings.TrimSpace(parts[len(parts)-1])
	if len(last) != 2 {
		return "", false
	}
	for i := 0; i < 2; i++ {
		if last[i] < 'A' || last[i] > 'Z' {
			return "", false
		}
	}
	return last, true
}

// Regions returns the sorted distinct region codes present in tracks.
func Regions(tracks []model.Track) []string {
	seen := make(map[string]struct{})
	for _, t := range tracks {
		if code, ok := Region(t.Location); ok {
			seen[code] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for code := range seen {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// Venues returns the sorted distinct venue names present in tracks.
func Venues(tracks []model.Track) []string {
	seen := make(map[string]struct{})
	for _, t := range tracks {
		if t.Venue != "" {
			seen[t.Venue] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
