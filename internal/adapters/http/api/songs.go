// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/okian/jamstats/internal/domain/model"
)

// SongDependencies defines the interface for single-song lookups.
type SongDependencies interface {
	Song(ctx context.Context, name string, f model.Filter) (Entry, error)
}

// SongsHandler handles single-song stat requests.
type SongsHandler struct {
	deps SongDependencies
}

// NewSongsHandler creates a new songs handler.
func NewSongsHandler(deps SongDependencies) *SongsHandler {
	return &SongsHandler{deps: deps}
}

// HandleGetSong handles GET /songs/{name} requests. The same filter
// query parameters as /leaderboard apply.
func (h *SongsHandler) HandleGetSong(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_song"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	// Extract path parameter after /songs/
	path := strings.TrimPrefix(r.URL.Path, "/songs/")
	if path == "" || strings.Contains(path, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	name, err := url.PathUnescape(path)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	f, err := parseFilter(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	entry, err := h.deps.Song(r.Context(), name, f)
	if err != nil {
		// Unknown songs are a 404, everything else a 500.
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, entry)
}
