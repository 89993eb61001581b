// Package runs classifies shows into run types and multi-night venue runs.
package runs

import (
	"strings"

	"github.com/okian/jamstats/internal/domain/model"
)

// RunType is a closed set of mutually exclusive show classifications.
type RunType int

// Run types. RunRegular is deliberately the zero value so that missing
// lookups degrade to a regular show. Classification priority lives in
// Classify's evaluation order, not here.
const (
	RunRegular      RunType = iota
	RunHolidayNight         // historic holiday night
	RunYearEnd              // Dec 28-31 year-end run
	RunSportsPark           // ballpark one-off
	RunFestival             // multi-day festival site
	RunFlagship             // flagship arena
)

// Leverage multipliers per run type, consumed by the PVS run-leverage term.
const (
	holidayLeverage    = 1.5
	festivalLeverage   = 1.25
	yearEndLeverage    = 1.0
	flagshipLeverage   = 1.0
	sportsParkLeverage = 0.75
	regularLeverage    = 0.0
)

// String returns the canonical label for a run type.
func (rt RunType) String() string {
	switch rt {
	case RunHolidayNight:
		return "holiday"
	case RunYearEnd:
		return "year_end"
	case RunSportsPark:
		return "sports_park"
	case RunFestival:
		return "festival"
	case RunFlagship:
		return "flagship"
	default:
		return "regular"
	}
}

// Leverage returns the fixed scoring multiplier for a run type.
func (rt RunType) Leverage() float64 {
	switch rt {
	case RunHolidayNight:
		return holidayLeverage
	case RunYearEnd:
		return yearEndLeverage
	case RunSportsPark:
		return sportsParkLeverage
	case RunFestival:
		return festivalLeverage
	case RunFlagship:
		return flagshipLeverage
	default:
		return regularLeverage
	}
}

// holidayNights are specific calendar days celebrated as historic holiday
// shows: the costume-set Halloween nights plus the millennium set.
var holidayNights = map[string]struct{}{
	"1994-10-31": {},
	"1995-10-31": {},
	"1996-10-31": {},
	"1998-10-31": {},
	"2013-10-31": {},
	"2014-10-31": {},
	"2016-10-31": {},
	"2018-10-31": {},
	"2021-10-31": {},
	"1999-12-31": {},
}

// festivalSites are venue substrings identifying the band's destination
// festival grounds and festival brands.
var festivalSites = []string{
	"watkins glen",
	"big cypress",
	"loring",
	"coventry",
	"magnaball",
	"superball",
	"festival 8",
	"lemonwheel",
	"clifford ball",
	"great went",
	"curveball",
	"mondegreen",
}

const (
	sportsParkVenue = "fenway park"
	flagshipVenue   = "madison square garden"
)

// yearEndWindow reports whether a "YYYY-MM-DD" date falls in the trailing
// four days of December, both bounds inclusive.
func yearEndWindow(date string) bool {
	if len(date) < 10 || date[5:7] != "12" {
		return false
	}
	day := date[8:10]
	return day >= "28" && day <= "31"
}

// Classify labels one show by short-circuit rule evaluation in fixed
// priority order.
func Classify(date, venue string) RunType {
	if _, ok := holidayNights[date]; ok {
		return RunHolidayNight
	}
	if yearEndWindow(date) {
		return RunYearEnd
	}
	v := strings.ToLower(venue)
	if strings.Contains(v, sportsParkVenue) {
		return RunSportsPark
	}
	for _, site := range festivalSites {
		if strings.Contains(v, site) {
			return RunFestival
		}
	}
	if strings.Contains(v, flagshipVenue) {
		return RunFlagship
	}
	return RunRegular
}

// ClassifyAll classifies every unique show date once and returns a
// date-to-run-type map. The first record seen for a date supplies its
// venue; records on the same date share one.
func ClassifyAll(tracks []model.Track) map[string]RunType {
	out := make(map[string]RunType)
	for _, t := range tracks {
		if _, ok := out[t.ShowDate]; ok {
			continue
		}
		out[t.ShowDate] = Classify(t.ShowDate, t.Venue)
	}
	return out
}
