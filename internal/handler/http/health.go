package http

import (
	"context"
	"net/http"
	"time"

	"github.com/Aywac/tawzifak1122/internal/handler/http/respond"
)

// Pinger verifies backing-store connectivity for readiness checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthResponse is the body of the health and readiness endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp string                 `json:"timestamp"`
	Checks    map[string]CheckStatus `json:"checks,omitempty"`
	Version   string                 `json:"version,omitempty"`
}

// CheckStatus is the outcome of a single dependency check.
type CheckStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthHandler reports process and Firestore health.
type HealthHandler struct {
	Store   Pinger
	Version string
}

// ServeHTTP checks Firestore connectivity and returns 200 when healthy,
// 503 otherwise.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]CheckStatus)
	healthy := true

	if h.Store != nil {
		if err := h.Store.Ping(ctx); err != nil {
			checks["firestore"] = CheckStatus{Status: "unhealthy", Message: err.Error()}
			healthy = false
		} else {
			checks["firestore"] = CheckStatus{Status: "healthy"}
		}
	} else {
		checks["firestore"] = CheckStatus{Status: "unhealthy", Message: "not configured"}
		healthy = false
	}

	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	}
	code := http.StatusOK
	if !healthy {
		resp.Status = "unhealthy"
		code = http.StatusServiceUnavailable
	}
	respond.JSON(w, code, resp)
}

// LiveHandler answers liveness probes: the process is up and serving.
func LiveHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, http.StatusOK, HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	})
}
