package model

import (
	"fmt"
)

// Set split selectors accepted by the pre-filter.
const (
	SplitAll    = "all"
	SplitSet1   = "set1"
	SplitSet2   = "set2"
	SplitSet3   = "set3"
	SplitEncore = "encore"
	SplitOpener = "opener"
	SplitCloser = "closer"
)

// Country buckets accepted by the pre-filter.
const (
	CountryAll           = "all"
	CountryUS            = "us"
	CountryInternational = "international"
)

// Aggregation modes for the leaderboard.
const (
	AggregationCareer = "career"
	AggregationByYear = "byYear"
	AggregationByTour = "byTour"
)

// Venue-run position selectors.
const (
	RunPositionAll    = "all"
	RunPositionOpener = "opener"
	RunPositionCloser = "closer"
)

// Default qualification thresholds.
const (
	DefaultMinTimesPlayed   = 5
	DefaultMinShowsAppeared = 3
)

// Filter configures one leaderboard computation: record pre-filters plus
// post-assembly qualification thresholds.
type Filter struct {
	YearStart int // inclusive; 0 means unbounded
	YearEnd   int // inclusive; 0 means unbounded

	SetSplit    string // all|set1|set2|set3|encore|opener|closer
	Venue       string // exact venue-name match when non-empty
	Region      string // exact two-letter region code when non-empty
	Country     string // all|us|international
	RunPosition string // all|opener|closer|night2|night3|...

	MinTimesPlayed   int
	MinShowsAppeared int
	MinJamchartCount int
	MinTotalMinutes  float64

	Aggregation string // career|byYear|byTour

	// TourGapDays widens or narrows tour segmentation for byTour
	// aggregation; 0 means the standard gap.
	TourGapDays int
}

// Fingerprint returns a stable key covering every field that can change a
// computed leaderboard. Two filters with equal fingerprints produce
// identical results over the same dataset.
func (f Filter) Fingerprint() string {
	return fmt.Sprintf("%d|%d|%s|%s|%s|%s|%s|%d|%d|%d|%g|%s|%d",
		f.YearStart, f.YearEnd,
		f.SetSplit, f.Venue, f.Region, f.Country, f.RunPosition,
		f.MinTimesPlayed, f.MinShowsAppeared, f.MinJamchartCount, f.MinTotalMinutes,
		f.Aggregation, f.TourGapDays,
	)
}

// DefaultFilter returns the filter used when a caller supplies nothing:
// the whole career, all sets, with the standard qualification floor.
func DefaultFilter() Filter {
	return Filter{
		SetSplit:         SplitAll,
		Country:          CountryAll,
		RunPosition:      RunPositionAll,
		MinTimesPlayed:   DefaultMinTimesPlayed,
		MinShowsAppeared: DefaultMinShowsAppeared,
		Aggregation:      AggregationCareer,
	}
}
