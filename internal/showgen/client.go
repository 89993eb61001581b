package showgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// client talks to a running jamstats service.
type client struct {
	http    *http.Client
	baseURL string
}

func newClient(baseURL string, timeout time.Duration) *client {
	return &client{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// getJSON fetches path and decodes the 200 response into out. A nil out
// discards the body, which suits liveness probes.
func (c *client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("GET %s: HTTP %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// health confirms the service answers its liveness probe.
func (c *client) health(ctx context.Context) error {
	return c.getJSON(ctx, "/healthz", nil)
}

// leaderboard fetches the top n entries.
func (c *client) leaderboard(ctx context.Context, n int) ([]Entry, error) {
	var entries []Entry
	if err := c.getJSON(ctx, fmt.Sprintf("/leaderboard?limit=%d", n), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// song fetches a single song's career entry.
func (c *client) song(ctx context.Context, name string) (Entry, error) {
	var e Entry
	err := c.getJSON(ctx, "/songs/"+url.PathEscape(name), &e)
	return e, err
}

// submitOutcome classifies one batch submission.
type submitOutcome int

const (
	outcomeAccepted submitOutcome = iota
	outcomeThrottled
	outcomeFailed
)

// submitResult pairs the outcome with the track count the service
// acknowledged.
type submitResult struct {
	outcome submitOutcome
	tracks  int
}

// batchRequest is the POST /tracks payload.
type batchRequest struct {
	Tracks []TrackRecord `json:"tracks"`
}

// submit posts one ingestion batch and classifies the response.
func (c *client) submit(ctx context.Context, tracks []TrackRecord) submitResult {
	payload, err := json.Marshal(batchRequest{Tracks: tracks})
	if err != nil {
		return submitResult{outcome: outcomeFailed}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/tracks", bytes.NewReader(payload))
	if err != nil {
		return submitResult{outcome: outcomeFailed}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return submitResult{outcome: outcomeFailed}
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusAccepted:
		// The ack reports how many tracks the service took; fall back
		// to the batch size when the body does not parse.
		var ack AckResponse
		if err := json.NewDecoder(resp.Body).Decode(&ack); err == nil && ack.Tracks > 0 {
			return submitResult{outcome: outcomeAccepted, tracks: ack.Tracks}
		}
		return submitResult{outcome: outcomeAccepted, tracks: len(tracks)}
	case http.StatusTooManyRequests:
		return submitResult{outcome: outcomeThrottled}
	default:
		return submitResult{outcome: outcomeFailed}
	}
}

// drainPollInterval paces waitForDrain's /stats polls.
const drainPollInterval = 250 * time.Millisecond

// serviceStats is the subset of GET /stats the tool reads.
type serviceStats struct {
	QueueLength   int `json:"queue_length"`
	DatasetTracks int `json:"dataset_tracks"`
}

// waitForDrain polls /stats until the ingestion queue empties and the
// dataset stops growing, or the deadline passes. Hitting the deadline
// is not an error: verification downstream flags any shortfall.
func (c *client) waitForDrain(ctx context.Context, deadline time.Duration) error {
	expire := time.After(deadline)
	ticker := time.NewTicker(drainPollInterval)
	defer ticker.Stop()

	lastTracks := -1
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-expire:
			return nil
		case <-ticker.C:
			var st serviceStats
			if err := c.getJSON(ctx, "/stats", &st); err != nil {
				continue
			}
			if st.QueueLength == 0 && st.DatasetTracks == lastTracks {
				return nil
			}
			lastTracks = st.DatasetTracks
		}
	}
}
