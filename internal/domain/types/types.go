// Package types contains common types used across the application.
package types

// CountingStats holds a song's raw counting numbers over the filtered set.
// Gap figures are measured in show ordinals, not calendar days.
type CountingStats struct {
	Song                 string  `json:"song"`
	TimesPlayed          int     `json:"times_played"`
	ShowsAppeared        int     `json:"shows_appeared"`
	JamchartCount        int     `json:"jamchart_count"`
	PlaysOver20Min       int     `json:"plays_over_20min"`
	PlaysOver25Min       int     `json:"plays_over_25min"`
	TotalMinutes         float64 `json:"total_minutes"`
	BustoutCount         int     `json:"bustout_count"`
	MegaBustoutCount     int     `json:"mega_bustout_count"`
	MaxShowsBetweenPlays int     `json:"max_shows_between_plays"`
	AvgShowsBetweenPlays float64 `json:"avg_shows_between_plays"`
}

// RateStats are counting stats normalized into per-play / per-show rates.
type RateStats struct {
	Song           string  `json:"song"`
	JamchartRate   float64 `json:"jamchart_rate"`   // jamcharts per play
	PlaysPerShow   float64 `json:"plays_per_show"`  // plays per distinct show in the filtered set
	ShowCoverage   float64 `json:"show_coverage"`   // shows appeared / total shows
	AvgDuration    float64 `json:"avg_duration"`    // minutes
	MedianDuration float64 `json:"median_duration"` // minutes
	LongPlayRate   float64 `json:"long_play_rate"`  // 20-minute-plus plays per play
	MarathonRate   float64 `json:"marathon_rate"`   // 25-minute-plus plays per play
}

// WARStats is a song's cumulative value above the yearly replacement level.
type WARStats struct {
	Song        string          `json:"song"`
	CareerWAR   float64         `json:"career_war"`
	WARPerPlay  float64         `json:"war_per_play"`
	WARPerShow  float64         `json:"war_per_show"`
	PeakYear    int             `json:"peak_year"`
	PeakYearWAR float64         `json:"peak_year_war"`
	ByYear      map[int]float64 `json:"by_year"`
}

// JISStats aggregates a song's 0-10 normalized impact scores.
type JISStats struct {
	Song          string  `json:"song"`
	AvgJIS        float64 `json:"avg_jis"`
	PeakJIS       float64 `json:"peak_jis"`
	JISVolatility float64 `json:"jis_volatility"`
	Performances  int     `json:"performances"`
}

// AggregationKey tags a leaderboard entry with the bucket it was computed
// in. Year is set for byYear mode, TourID/TourLabel for byTour mode.
type AggregationKey struct {
	Song      string `json:"song"`
	Year      int    `json:"year,omitempty"`
	TourID    string `json:"tour_id,omitempty"`
	TourLabel string `json:"tour_label,omitempty"`
}

// Entry is one leaderboard row: the join of a song's stat blocks.
type Entry struct {
	Rank     int             `json:"rank"`
	Song     string          `json:"song"`
	Counting CountingStats   `json:"counting"`
	Rates    RateStats       `json:"rates"`
	WAR      WARStats        `json:"war"`
	JIS      JISStats        `json:"jis"`
	Key      *AggregationKey `json:"key,omitempty"`
}

// ServiceStats is the operational snapshot served by GET /stats.
type ServiceStats struct {
	Started            bool `json:"started"`
	WorkerCount        int  `json:"worker_count"`
	QueueSize          int  `json:"queue_size"`
	QueueLength        int  `json:"queue_length"`
	CacheSize          int  `json:"cache_size"`
	CachedLeaderboards int  `json:"cached_leaderboards"`
	DatasetTracks      int  `json:"dataset_tracks"`
	DatasetShows       int  `json:"dataset_shows"`
	DatasetSongs       int  `json:"dataset_songs"`
}

// ZeroWAR is the explicit zero-valued fallback used during entry assembly
// when a song has no WAR record. Tests assert on this shape directly.
func ZeroWAR(song string) WARStats {
	return WARStats{Song: song, ByYear: map[int]float64{}}
}

// ZeroJIS is the explicit zero-valued fallback used during entry assembly
// when a song has no JIS record.
func ZeroJIS(song string) JISStats {
	return JISStats{Song: song}
}
