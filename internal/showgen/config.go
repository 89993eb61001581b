package showgen

import "time"

// Config holds the knobs for one corpus run.
type Config struct {
	BaseURL    string        // base URL of the service
	NumShows   int           // shows to generate
	BatchSize  int           // tracks per ingestion batch
	TopN       int           // leaderboard entries to fetch
	Workers    int           // concurrent submission workers
	Timeout    time.Duration // per-request HTTP timeout
	OutputFile string        // where the generated corpus lands
	Verbose    bool          // debug-level logging
}

// TrackRecord mirrors the ingestion payload shape.
type TrackRecord struct {
	Song            string `json:"song"`
	ShowDate        string `json:"show_date"`
	Set             string `json:"set"`
	Position        int    `json:"position"`
	DurationSeconds int    `json:"duration_seconds"`
	Jamchart        bool   `json:"jamchart,omitempty"`
	Venue           string `json:"venue"`
	Location        string `json:"location"`
}

// Entry is the subset of a leaderboard row the run inspects.
type Entry struct {
	Rank     int    `json:"rank"`
	Song     string `json:"song"`
	Counting struct {
		TimesPlayed   int     `json:"times_played"`
		ShowsAppeared int     `json:"shows_appeared"`
		JamchartCount int     `json:"jamchart_count"`
		TotalMinutes  float64 `json:"total_minutes"`
	} `json:"counting"`
	WAR struct {
		CareerWAR float64 `json:"career_war"`
	} `json:"war"`
	JIS struct {
		AvgJIS float64 `json:"avg_jis"`
	} `json:"jis"`
}

// AckResponse is the body of a 202 from POST /tracks.
type AckResponse struct {
	Status  string `json:"status"`
	BatchID string `json:"batch_id"`
	Tracks  int    `json:"tracks"`
}

// Stats accumulates what happened across a run.
type Stats struct {
	ShowsGenerated     int
	TracksGenerated    int
	BatchesSubmitted   int
	BatchesAccepted    int
	BatchesThrottled   int
	BatchesFailed      int
	TracksAccepted     int
	LeaderboardEntries int
	SongsChecked       int
	StartTime          time.Time
	EndTime            time.Time
	Duration           time.Duration
}
