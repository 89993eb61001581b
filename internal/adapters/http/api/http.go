// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/jamstats/internal/domain/model"
	"github.com/okian/jamstats/internal/domain/types"
	"github.com/okian/jamstats/pkg/metrics"
)

// Dependencies is the service surface the HTTP handlers call into.
type Dependencies interface {
	// Enqueue pushes a track batch for async ingestion. A non-nil
	// error means the batch was not accepted.
	Enqueue(ctx context.Context, b model.Batch) error

	// Read operations expose leaderboard data.
	Leaderboard(ctx context.Context, f model.Filter) ([]Entry, error)
	Song(ctx context.Context, name string, f model.Filter) (Entry, error)
}

// Entry mirrors the read shape returned by leaderboard queries.
type Entry = types.Entry

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	tracksHandler      *TracksHandler
	leaderboardHandler *LeaderboardHandler
	songsHandler       *SongsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLimit int) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		tracksHandler:      NewTracksHandler(deps),
		leaderboardHandler: NewLeaderboardHandler(deps, maxLimit),
		songsHandler:       NewSongsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Business routes share the metrics middleware; /metrics stays raw.
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/tracks", MetricsMiddleware(s.tracksHandler.HandlePostTracks, "tracks"))
	mux.HandleFunc("/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
	mux.HandleFunc("/songs/", MetricsMiddleware(s.songsHandler.HandleGetSong, "songs"))
}

// trackRequest mirrors the ingestion schema for a single performance record.
type trackRequest struct {
	Song            string  `json:"song"`
	ShowDate        string  `json:"show_date"`
	Set             string  `json:"set"`
	Position        int     `json:"position"`
	DurationSeconds float64 `json:"duration_seconds"`
	Jamchart        bool    `json:"jamchart"`
	Venue           string  `json:"venue"`
	Location        string  `json:"location"`
}

func (t trackRequest) validate() error {
	switch {
	case strings.TrimSpace(t.Song) == "":
		return errors.New("missing song")
	case strings.TrimSpace(t.ShowDate) == "":
		return errors.New("missing show_date")
	case t.Position < 1:
		return errors.New("position must be >= 1")
	case t.DurationSeconds < 0:
		return errors.New("duration_seconds must not be negative")
	}
	if _, err := time.Parse(model.DateLayout, t.ShowDate); err != nil {
		return errors.New("invalid show_date; must be YYYY-MM-DD")
	}
	return nil
}

func (t trackRequest) toModel() model.Track {
	return model.Track{
		Song:            t.Song,
		ShowDate:        t.ShowDate,
		Set:             t.Set,
		Position:        t.Position,
		DurationSeconds: int(t.DurationSeconds),
		Jamchart:        t.Jamchart,
		Venue:           t.Venue,
		Location:        t.Location,
	}
}

type ackResponse struct {
	Status  string `json:"status"`
	BatchID string `json:"batch_id"`
	Tracks  int    `json:"tracks"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// isNotFound matches upstream not-found errors by message so the API
// can map them to 404 without importing every producing package.
func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "not found")
}
