// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/okian/jamstats/internal/domain/model"
)

// Enum values accepted by the filter query parameters.
var (
	validSetSplits = map[string]bool{
		model.SplitAll:    true,
		model.SplitSet1:   true,
		model.SplitSet2:   true,
		model.SplitSet3:   true,
		model.SplitEncore: true,
		model.SplitOpener: true,
		model.SplitCloser: true,
	}
	validCountries = map[string]bool{
		model.CountryAll:           true,
		model.CountryUS:            true,
		model.CountryInternational: true,
	}
	validAggregations = map[string]bool{
		model.AggregationCareer: true,
		model.AggregationByYear: true,
		model.AggregationByTour: true,
	}
)

// parseFilter builds a model.Filter from the request query, starting from
// the defaults and overriding only the parameters present.
func parseFilter(q url.Values) (model.Filter, error) {
	f := model.DefaultFilter()

	var err error
	if f.YearStart, err = intParam(q, "year_start", f.YearStart); err != nil {
		return f, err
	}
	if f.YearEnd, err = intParam(q, "year_end", f.YearEnd); err != nil {
		return f, err
	}
	if f.MinTimesPlayed, err = intParam(q, "min_times_played", f.MinTimesPlayed); err != nil {
		return f, err
	}
	if f.MinShowsAppeared, err = intParam(q, "min_shows_appeared", f.MinShowsAppeared); err != nil {
		return f, err
	}
	if f.MinJamchartCount, err = intParam(q, "min_jamchart_count", f.MinJamchartCount); err != nil {
		return f, err
	}
	if f.MinTotalMinutes, err = floatParam(q, "min_total_minutes", f.MinTotalMinutes); err != nil {
		return f, err
	}
	if f.TourGapDays, err = intParam(q, "tour_gap_days", f.TourGapDays); err != nil {
		return f, err
	}
	if f.TourGapDays < 0 {
		return f, errors.New("tour_gap_days must not be negative")
	}

	if v := q.Get("set_split"); v != "" {
		if !validSetSplits[v] {
			return f, fmt.Errorf("invalid set_split %q", v)
		}
		f.SetSplit = v
	}
	if v := q.Get("country"); v != "" {
		if !validCountries[v] {
			return f, fmt.Errorf("invalid country %q", v)
		}
		f.Country = v
	}
	if v := q.Get("aggregation"); v != "" {
		if !validAggregations[v] {
			return f, fmt.Errorf("invalid aggregation %q", v)
		}
		f.Aggregation = v
	}
	if v := q.Get("run_position"); v != "" {
		if err := validateRunPosition(v); err != nil {
			return f, err
		}
		f.RunPosition = v
	}

	f.Venue = q.Get("venue")
	f.Region = q.Get("region")

	if f.YearStart != 0 && f.YearEnd != 0 && f.YearEnd < f.YearStart {
		return f, errors.New("year_end must not precede year_start")
	}

	return f, nil
}

// validateRunPosition accepts the fixed selectors plus exact-night forms
// like "night2".
func validateRunPosition(v string) error {
	switch v {
	case model.RunPositionAll, model.RunPositionOpener, model.RunPositionCloser:
		return nil
	}
	if n, ok := strings.CutPrefix(v, "night"); ok {
		if night, err := strconv.Atoi(n); err == nil && night >= 1 {
			return nil
		}
	}
	return fmt.Errorf("invalid run_position %q", v)
}

func intParam(q url.Values, name string, fallback int) (int, error) {
	v := q.Get(name)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback, fmt.Errorf("invalid %s %q", name, v)
	}
	return n, nil
}

func floatParam(q url.Values, name string, fallback float64) (float64, error) {
	v := q.Get(name)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback, fmt.Errorf("invalid %s %q", name, v)
	}
	return n, nil
}
