package observability

import (
	"encoding/json"
	"net/http"
	"time"
)

// HealthStatus represents the health status of the service
type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

// FeedCheck reports whether a brand's feed credentials are present. The
// service stays up with a missing feed (requests to it 500 individually),
// but the health endpoint surfaces the gap for operators.
type FeedCheck struct {
	Brand      string
	Configured bool
}

// HealthChecker manages health checks for the service
type HealthChecker struct {
	feeds []FeedCheck
}

// NewHealthChecker creates a new HealthChecker
func NewHealthChecker(feeds []FeedCheck) *HealthChecker {
	return &HealthChecker{feeds: feeds}
}

// Check performs health checks and returns the status
func (h *HealthChecker) Check() HealthStatus {
	checks := make(map[string]string)
	overallStatus := "healthy"

	for _, feed := range h.feeds {
		if feed.Configured {
			checks["feed_"+feed.Brand] = "configured"
		} else {
			checks["feed_"+feed.Brand] = "missing credentials"
			overallStatus = "degraded"
		}
	}

	return HealthStatus{
		Status:    overallStatus,
		Timestamp: time.Now(),
		Checks:    checks,
	}
}

// HealthHandler returns an HTTP handler for health checks
func (h *HealthChecker) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := h.Check()

		w.Header().Set("Content-Type", "application/json")
		if status.Status != "healthy" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}

		json.NewEncoder(w).Encode(status)
	}
}
