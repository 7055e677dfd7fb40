package listing

import (
	"log/slog"
	"net/http"

	"github.com/Aywac/tawzifak1122/internal/domain/entity"
	apphttp "github.com/Aywac/tawzifak1122/internal/handler/http"
	"github.com/Aywac/tawzifak1122/internal/handler/http/auth"
	listingUC "github.com/Aywac/tawzifak1122/internal/usecase/listing"
)

// Register wires the /jobs (job offers) and /workers (job seekers) routes.
// Reads are public; mutations require a bearer token and ownership of the
// listing.
func Register(mux *http.ServeMux, svc *listingUC.Service, searchLimiter *apphttp.RateLimiter, logger *slog.Logger) {
	mux.Handle("GET    /jobs", ListHandler{
		Svc:           svc,
		PostType:      entity.PostTypeSeekingWorker,
		SearchLimiter: searchLimiter,
		Logger:        logger,
	})
	mux.Handle("GET    /workers", ListHandler{
		Svc:           svc,
		PostType:      entity.PostTypeSeekingJob,
		SearchLimiter: searchLimiter,
		Logger:        logger,
	})

	mux.Handle("GET    /jobs/{id}", GetHandler{svc})
	mux.Handle("GET    /workers/{id}", GetHandler{svc})

	mux.Handle("POST   /jobs", auth.Require(CreateHandler{Svc: svc, PostType: entity.PostTypeSeekingWorker}))
	mux.Handle("POST   /workers", auth.Require(CreateHandler{Svc: svc, PostType: entity.PostTypeSeekingJob}))

	mux.Handle("PUT    /jobs/{id}", auth.Require(UpdateHandler{svc}))
	mux.Handle("PUT    /workers/{id}", auth.Require(UpdateHandler{svc}))

	mux.Handle("DELETE /jobs/{id}", auth.Require(DeleteHandler{svc}))
	mux.Handle("DELETE /workers/{id}", auth.Require(DeleteHandler{svc}))
}
