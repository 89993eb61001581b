// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/okian/jamstats/pkg/metrics"
)

// MetricsMiddleware wraps a handler and records request count, latency
// and error vectors under the given endpoint label.
func MetricsMiddleware(next http.HandlerFunc, endpoint string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		elapsedMs := float64(time.Since(start).Milliseconds())
		code := strconv.Itoa(sw.status)

		metrics.RecordHTTPRequest(endpoint, r.Method, code, elapsedMs)

		if sw.status >= http.StatusBadRequest {
			metrics.RecordHTTPError(endpoint, r.Method, classifyStatus(sw.status))
		}
	}
}

// classifyStatus maps an error status code to the kind label on the
// HTTP error vector.
func classifyStatus(status int) string {
	switch {
	case status >= http.StatusInternalServerError:
		return "server_error"
	case status == http.StatusTooManyRequests:
		return "rate_limit"
	case status == http.StatusNotFound:
		return "not_found"
	default:
		return "client_error"
	}
}

// statusWriter records the status code written by the wrapped handler.
// Handlers that never call WriteHeader count as 200.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	if err != nil {
		return n, fmt.Errorf("write response: %w", err)
	}
	return n, nil
}
