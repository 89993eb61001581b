// Package model contains domain models passed between layers.
package model

import (
	"strconv"
	"time"
)

// Track represents a single performance of a song: one song, played once,
// at one position, in one set, on one show date. Records are immutable;
// every derived structure is recomputed from scratch per pipeline run.
type Track struct {
	Song            string // song title
	ShowDate        string // calendar day, fixed-width "YYYY-MM-DD"
	Set             string // set label, e.g. "Set 1", "Encore"
	Position        int    // 1-indexed position within the set
	DurationSeconds int    // performance length in seconds
	Jamchart        bool   // celebrated ("jamchart") performance flag
	Venue           string // free-text venue name
	Location        string // free-text location, e.g. "Boston, MA"
}

// Year returns the 4-digit year prefix of the show date, or 0 when the
// date is too short to carry one. Malformed dates are an upstream data
// quality problem; the pipeline does not validate them.
func (t Track) Year() int {
	return DateYear(t.ShowDate)
}

// DurationMinutes converts the track length to minutes.
func (t Track) DurationMinutes() float64 {
	return float64(t.DurationSeconds) / 60.0
}

// DateYear extracts the year from a fixed-width "YYYY-MM-DD" date string.
func DateYear(date string) int {
	if len(date) < 4 {
		return 0
	}
	y, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return y
}

// DateLayout is the fixed-width calendar-day form used by show dates.
const DateLayout = "2006-01-02"

// DaysBetween returns the calendar-day distance from a to b. Malformed
// dates yield 0; upstream guarantees the shape.
func DaysBetween(a, b string) int {
	ta, err := time.Parse(DateLayout, a)
	if err != nil {
		return 0
	}
	tb, err := time.Parse(DateLayout, b)
	if err != nil {
		return 0
	}
	return int(tb.Sub(ta).Hours() / 24)
}
