package scoring

import (
	"strings"

	"github.com/okian/jamstats/internal/domain/model"
)

// Set-leverage constants: base by position, multiplier by set number, and
// a flat damping factor applied to the product.
const (
	encoreBase = 1.0
	closerBase = 0.75
	openerBase = 0.5
	middleBase = 0.0

	set2Multiplier = 1.2
	set3Multiplier = 1.3

	leverageDamping = 0.75
)

// ShowSet identifies one set within one show.
type ShowSet struct {
	Date string
	Set  string
}

// Bounds are the min and max 1-indexed positions seen in a set.
type Bounds struct {
	Min int
	Max int
}

// SetBounds computes per-(show,set) position bounds in a single pass.
func SetBounds(tracks []model.Track) map[ShowSet]Bounds {
	out := make(map[ShowSet]Bounds)
	for _, t := range tracks {
		key := ShowSet{Date: t.ShowDate, Set: t.Set}
		b, ok := out[key]
		if !ok {
			out[key] = Bounds{Min: t.Position, Max: t.Position}
			continue
		}
		if t.Position < b.Min {
			b.Min = t.Position
		}
		if t.Position > b.Max {
			b.Max = t.Position
		}
		out[key] = b
	}
	return out
}

// SetPosition is a record's place within its set.
type SetPosition int

// Positions. Opener is checked before closer, so the only song of a
// single-song set classifies as the opener.
const (
	PositionMiddle SetPosition = iota
	PositionOpener
	PositionCloser
)

// ClassifyPosition places a record within its set's bounds.
func ClassifyPosition(t model.Track, bounds map[ShowSet]Bounds) SetPosition {
	b, ok := bounds[ShowSet{Date: t.ShowDate, Set: t.Set}]
	if !ok {
		return PositionMiddle
	}
	switch {
	case t.Position == b.Min:
		return PositionOpener
	case t.Position == b.Max:
		return PositionCloser
	default:
		return PositionMiddle
	}
}

// IsEncoreSet reports whether a set label names an encore.
func IsEncoreSet(set string) bool {
	return strings.Contains(strings.ToLower(set), "encore")
}

// setMultiplier scales leverage by the set number.
func setMultiplier(set string) float64 {
	switch set {
	case "Set 2":
		return set2Multiplier
	case "Set 3":
		return set3Multiplier
	default:
		return 1.0
	}
}

// SetLeverage computes the set-position leverage term: an encore set gets
// the full base regardless of position, a closer 0.75, an opener 0.5 and
// a middle slot nothing, scaled by set number and damped.
func SetLeverage(t model.Track, bounds map[ShowSet]Bounds) float64 {
	base := middleBase
	if IsEncoreSet(t.Set) {
		base = encoreBase
	} else {
		switch ClassifyPosition(t, bounds) {
		case PositionOpener:
			base = openerBase
		case PositionCloser:
			base = closerBase
		}
	}
	return base * setMultiplier(t.Set) * leverageDamping
}
