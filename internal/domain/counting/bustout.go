package counting

// Tier is a closed, ordered set of rarity tiers keyed by the show-count
// gap since a song's previous performance.
type Tier int

// Tiers, least to most severe.
const (
	TierNone Tier = iota
	TierBustout
	TierSignificant
	TierMajor
	TierHistoric
)

// Inclusive lower bounds for each tier, in show ordinals.
const (
	BustoutGap     = 25
	SignificantGap = 50
	MajorGap       = 100
	HistoricGap    = 250
)

// Scoring bonus per tier, consumed by the PVS bustout term.
const (
	bustoutBonus     = 0.5
	significantBonus = 1.0
	majorBonus       = 1.5
	historicBonus    = 2.5
)

// TierFor classifies a show-count gap, most severe tier first.
func TierFor(gap int) Tier {
	switch {
	case gap >= HistoricGap:
		return TierHistoric
	case gap >= MajorGap:
		return TierMajor
	case gap >= SignificantGap:
		return TierSignificant
	case gap >= BustoutGap:
		return TierBustout
	default:
		return TierNone
	}
}

// Bonus returns the fixed scoring bonus for a tier.
func (t Tier) Bonus() float64 {
	switch t {
	case TierHistoric:
		return historicBonus
	case TierMajor:
		return majorBonus
	case TierSignificant:
		return significantBonus
	case TierBustout:
		return bustoutBonus
	default:
		return 0
	}
}

// BustoutBonus maps a gap straight to its tier bonus.
func BustoutBonus(gap int) float64 {
	return TierFor(gap).Bonus()
}

// String returns the tier name.
func (t Tier) String() string {
	switch t {
	case TierHistoric:
		return "historic"
	case TierMajor:
		return "major"
	case TierSignificant:
		return "significant"
	case TierBustout:
		return "bustout"
	default:
		return "none"
	}
}
