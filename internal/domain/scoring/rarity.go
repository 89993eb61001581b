package scoring

// Rarity is higher for songs played less often relative to the year's
// total performance volume: 1 - plays/total, or 0 with no data.
func Rarity(songPlaysInYear, totalPerformancesInYear int) float64 {
	if totalPerformancesInYear == 0 {
		return 0
	}
	return 1 - float64(songPlaysInYear)/float64(totalPerformancesInYear)
}
