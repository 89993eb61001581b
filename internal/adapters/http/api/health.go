// Package api declares HTTP contracts and route registration helpers.
package api

import "net/http"

// HealthHandler answers liveness probes.
type HealthHandler struct{}

// NewHealthHandler creates a new health handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// healthResponse is the GET /healthz body.
type healthResponse struct {
	Status string `json:"status"`
}

// HandleHealth handles GET /healthz requests with a small JSON liveness
// body. Prometheus metrics are served separately on /metrics.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}
