// Package immigration serves the /immigration routes, including the
// slug-based detail lookup used by published URLs. Reads are public,
// mutations are admin-only.
package immigration

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Aywac/tawzifak1122/internal/common/pagination"
	apphttp "github.com/Aywac/tawzifak1122/internal/handler/http"
	"github.com/Aywac/tawzifak1122/internal/handler/http/auth"
	"github.com/Aywac/tawzifak1122/internal/handler/http/respond"
	"github.com/Aywac/tawzifak1122/internal/observability/logging"
	immUC "github.com/Aywac/tawzifak1122/internal/usecase/immigration"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type createRequest struct {
	Title          string `json:"title" validate:"required,max=200"`
	TargetCountry  string `json:"targetCountry" validate:"required,max=100"`
	City           string `json:"city" validate:"omitempty,max=100"`
	ProgramType    string `json:"programType" validate:"omitempty,max=50"`
	TargetAudience string `json:"targetAudience" validate:"omitempty,max=200"`
	Description    string `json:"description" validate:"required,max=10000"`
}

type updateRequest struct {
	Title          *string `json:"title" validate:"omitempty,min=1,max=200"`
	TargetCountry  *string `json:"targetCountry" validate:"omitempty,min=1,max=100"`
	City           *string `json:"city" validate:"omitempty,max=100"`
	ProgramType    *string `json:"programType" validate:"omitempty,max=50"`
	TargetAudience *string `json:"targetAudience" validate:"omitempty,max=200"`
	Description    *string `json:"description" validate:"omitempty,min=1,max=10000"`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, immUC.ErrPostNotFound):
		return http.StatusNotFound
	case errors.Is(err, immUC.ErrInvalidPostID),
		errors.Is(err, immUC.ErrInvalidSlug),
		errors.Is(err, pagination.ErrInvalidCursor):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

type ListHandler struct {
	Svc           *immUC.Service
	SearchLimiter *apphttp.RateLimiter
	Logger        *slog.Logger
}

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	count, _ := strconv.Atoi(q.Get("count"))
	opts := immUC.ListOptions{
		Limit:       limit,
		Count:       count,
		SearchQuery: q.Get("q"),
		Cursor:      q.Get("cursor"),
		ExcludeID:   q.Get("exclude_id"),
	}

	if opts.SearchQuery != "" {
		if !h.SearchLimiter.AllowRequest(r) {
			respond.SafeError(w, http.StatusTooManyRequests, fmt.Errorf("rate limit exceeded: requests must be spaced out"))
			return
		}
		apphttp.RecordSearchScan("immigration")
	}

	page, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		logging.WithRequestID(r.Context(), h.Logger).Warn("immigration list rejected", slog.Any("error", err))
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, page)
}

type GetHandler struct{ Svc *immUC.Service }

func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p, err := h.Svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, p)
}

type GetBySlugHandler struct{ Svc *immUC.Service }

func (h GetBySlugHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p, err := h.Svc.GetBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, p)
}

type CreateHandler struct{ Svc *immUC.Service }

func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	if err := validate.Struct(req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	id, err := h.Svc.Create(r.Context(), immUC.CreateInput{
		Title:          req.Title,
		TargetCountry:  req.TargetCountry,
		City:           req.City,
		ProgramType:    req.ProgramType,
		TargetAudience: req.TargetAudience,
		Description:    req.Description,
	})
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusCreated, map[string]string{"id": id})
}

type UpdateHandler struct{ Svc *immUC.Service }

func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	if err := validate.Struct(req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	id := r.PathValue("id")
	err := h.Svc.Update(r.Context(), immUC.UpdateInput{
		ID:             id,
		Title:          req.Title,
		TargetCountry:  req.TargetCountry,
		City:           req.City,
		ProgramType:    req.ProgramType,
		TargetAudience: req.TargetAudience,
		Description:    req.Description,
	})
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"id": id})
}

type DeleteHandler struct{ Svc *immUC.Service }

func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Register wires the /immigration routes. The slug route is registered
// before the plain detail route so "slug" is never read as a document ID.
func Register(mux *http.ServeMux, svc *immUC.Service, searchLimiter *apphttp.RateLimiter, logger *slog.Logger) {
	mux.Handle("GET    /immigration", ListHandler{Svc: svc, SearchLimiter: searchLimiter, Logger: logger})
	mux.Handle("GET    /immigration/slug/{slug}", GetBySlugHandler{svc})
	mux.Handle("GET    /immigration/{id}", GetHandler{svc})
	mux.Handle("POST   /immigration", auth.RequireAdmin(CreateHandler{svc}))
	mux.Handle("PUT    /immigration/{id}", auth.RequireAdmin(UpdateHandler{svc}))
	mux.Handle("DELETE /immigration/{id}", auth.RequireAdmin(DeleteHandler{svc}))
}
