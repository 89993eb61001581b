// Package tours segments show dates into tours by calendar-day gap.
package tours

import (
	"fmt"
	"sort"
	"strings"

	"github.com/okian/jamstats/internal/domain/model"
)

// DefaultGapDays is the maximum day gap between consecutive shows of one
// tour; a strictly larger gap starts a new tour.
const DefaultGapDays = 5

// Tour is a contiguous cluster of show dates with a season/year label.
type Tour struct {
	ID        string
	Label     string
	StartDate string
	EndDate   string
	ShowCount int
	Dates     []string
}

// yearEndDay reports whether a date falls on Dec 28-31, inclusive.
func yearEndDay(date string) bool {
	if len(date) < 10 || date[5:7] != "12" {
		return false
	}
	return date[8:10] >= "28" && date[8:10] <= "31"
}

// seasonLabel derives the tour label from its boundary dates. A tour
// touching the year-end window on either side is the New Year's Run of
// its start year; otherwise the start month maps to a season.
func seasonLabel(startDate, endDate string) string {
	year := model.DateYear(startDate)
	if yearEndDay(endDate) || yearEndDay(startDate) {
		return fmt.Sprintf("New Year's Run %d", year)
	}

	month := ""
	if len(startDate) >= 7 {
		month = startDate[5:7]
	}
	season := "Winter Tour" // December and malformed months fall through here
	switch month {
	case "01", "02", "03":
		season = "Winter Tour"
	case "04", "05":
		season = "Spring Tour"
	case "06", "07", "08":
		season = "Summer Tour"
	case "09", "10", "11":
		season = "Fall Tour"
	}
	return fmt.Sprintf("%s %d", season, year)
}

// slug lowercases a label and collapses non-alphanumeric runs to single
// hyphens, trimming any trailing hyphen.
func slug(label string) string {
	var b strings.Builder
	hyphen := false
	for _, r := range strings.ToLower(label) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			hyphen = false
		default:
			if !hyphen && b.Len() > 0 {
				b.WriteByte('-')
				hyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// Segment groups the records' unique show dates into tours. gapDays <= 0
// falls back to DefaultGapDays. Tours sharing a label are disambiguated
// with a 1-based parenthetical occurrence suffix on every holder,
// including the first.
func Segment(tracks []model.Track, gapDays int) []Tour {
	if gapDays <= 0 {
		gapDays = DefaultGapDays
	}

	seen := make(map[string]struct{}, len(tracks))
	dates := make([]string, 0, len(tracks))
	for _, t := range tracks {
		if _, ok := seen[t.ShowDate]; ok {
			continue
		}
		seen[t.ShowDate] = struct{}{}
		dates = append(dates, t.ShowDate)
	}
	sort.Strings(dates)
	if len(dates) == 0 {
		return nil
	}

	var out []Tour
	start := 0
	for i := 1; i <= len(dates); i++ {
		if i < len(dates) && model.DaysBetween(dates[i-1], dates[i]) <= gapDays {
			continue
		}
		member := append([]string(nil), dates[start:i]...)
		tour := Tour{
			StartDate: member[0],
			EndDate:   member[len(member)-1],
			ShowCount: len(member),
			Dates:     member,
		}
		tour.Label = seasonLabel(tour.StartDate, tour.EndDate)
		out = append(out, tour)
		start = i
	}

	// Disambiguate duplicate labels with an occurrence counter.
	counts := make(map[string]int, len(out))
	for _, t := range out {
		counts[t.Label]++
	}
	occurrence := make(map[string]int, len(out))
	for i := range out {
		base := out[i].Label
		if counts[base] > 1 {
			occurrence[base]++
			out[i].Label = fmt.Sprintf("%s (%d)", base, occurrence[base])
		}
		out[i].ID = slug(out[i].Label)
	}
	return out
}

// ByDate builds a date-to-tour lookup for bucketing. The returned tours
// are shared, not copied.
func ByDate(list []Tour) map[string]*Tour {
	out := make(map[string]*Tour)
	for i := range list {
		for _, d := range list[i].Dates {
			out[d] = &list[i]
		}
	}
	return out
}
