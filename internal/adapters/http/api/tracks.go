// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/okian/jamstats/internal/domain/model"
)

// TrackDependencies defines the interface for ingestion dependencies.
type TrackDependencies interface {
	Enqueue(ctx context.Context, b model.Batch) error
}

// TracksHandler handles track ingestion requests.
type TracksHandler struct {
	deps TrackDependencies
}

// NewTracksHandler creates a new tracks handler.
func NewTracksHandler(deps TrackDependencies) *TracksHandler {
	return &TracksHandler{deps: deps}
}

// batchRequest mirrors the ingestion schema for POST /tracks.
type batchRequest struct {
	Tracks []trackRequest `json:"tracks"`
}

func (b batchRequest) validate() error {
	if len(b.Tracks) == 0 {
		return errors.New("missing tracks")
	}
	for i, t := range b.Tracks {
		if err := t.validate(); err != nil {
			return fmt.Errorf("track %d: %w", i, err)
		}
	}
	return nil
}

// decodeBatch accepts both ingestion shapes: a bare JSON array of
// records, or the same array wrapped in a {"tracks": [...]} envelope.
func decodeBatch(body []byte) (batchRequest, error) {
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var tracks []trackRequest
		if err := json.Unmarshal(trimmed, &tracks); err != nil {
			return batchRequest{}, err
		}
		return batchRequest{Tracks: tracks}, nil
	}
	var req batchRequest
	if err := json.Unmarshal(trimmed, &req); err != nil {
		return batchRequest{}, err
	}
	return req, nil
}

// HandlePostTracks handles POST /tracks requests.
func (h *TracksHandler) HandlePostTracks(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_tracks"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	req, err := decodeBatch(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	batch := model.Batch{
		ID:     uuid.NewString(),
		Tracks: make([]model.Track, 0, len(req.Tracks)),
	}
	for _, t := range req.Tracks {
		batch.Tracks = append(batch.Tracks, t.toModel())
	}

	// Try to enqueue for async ingestion
	if err := h.deps.Enqueue(r.Context(), batch); err != nil {
		writeError(w, http.StatusTooManyRequests, "backpressure", WrapKind(op, ErrBackpressure, err))
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{
		Status:  "accepted",
		BatchID: batch.ID,
		Tracks:  len(batch.Tracks),
	})
}
