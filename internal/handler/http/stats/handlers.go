// Package stats serves the /stats endpoint exposing the global entity
// counters shown on the homepage.
package stats

import (
	"net/http"

	apphttp "github.com/Aywac/tawzifak1122/internal/handler/http"
	"github.com/Aywac/tawzifak1122/internal/handler/http/respond"
	statsUC "github.com/Aywac/tawzifak1122/internal/usecase/stats"
)

type GetHandler struct{ Svc *statsUC.Service }

// ServeHTTP returns the counters. The read never fails: backend errors
// surface as all-zero counters. The freshly read values also refresh the
// Prometheus business gauges.
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s := h.Svc.Get(r.Context())
	apphttp.UpdateGlobalStats(s)
	respond.JSON(w, http.StatusOK, s)
}

// Register wires the /stats route.
func Register(mux *http.ServeMux, svc *statsUC.Service) {
	mux.Handle("GET    /stats", GetHandler{svc})
}
