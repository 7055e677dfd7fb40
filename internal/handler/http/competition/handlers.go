// Package competition serves the /competitions routes. Competitions are
// editorial content: reads are public, mutations are admin-only.
package competition

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
	compUC "github.com/Aywac/tawzifak1122/internal/usecase/competition"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type createRequest struct {
	Title              string `json:"title" validate:"required,max=200"`
	Organizer          string `json:"organizer" validate:"required,max=200"`
	Location           string `json:"location" validate:"required,max=200"`
	CompetitionType    string `json:"competitionType" validate:"omitempty,max=100"`
	Description        string `json:"description" validate:"required,max=5000"`
	PositionsAvailable *int64 `json:"positionsAvailable" validate:"omitempty,min=1"`
}

type updateRequest struct {
	Title              *string `json:"title" validate:"omitempty,min=1,max=200"`
	Organizer          *string `json:"organizer" validate:"omitempty,min=1,max=200"`
	Location           *string `json:"location" validate:"omitempty,min=1,max=200"`
	CompetitionType    *string `json:"competitionType" validate:"omitempty,max=100"`
	Description        *string `json:"description" validate:"omitempty,min=1,max=5000"`
	PositionsAvailable *int64  `json:"positionsAvailable" validate:"omitempty,min=1"`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, compUC.ErrCompetitionNotFound):
		return http.StatusNotFound
	case errors.Is(err, compUC.ErrInvalidCompetitionID),
		errors.Is(err, pagination.ErrInvalidCursor):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

type ListHandler struct {
	Svc           *compUC.Service
	SearchLimiter *apphttp.RateLimiter
	Logger        *slog.Logger
}

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	count, _ := strconv.Atoi(q.Get("count"))
	opts := compUC.ListOptions{
		Limit:       limit,
		Count:       count,
		SearchQuery: q.Get("q"),
		Cursor:      q.Get("cursor"),
		Location:    q.Get("location"),
		ExcludeID:   q.Get("exclude_id"),
	}

	if opts.SearchQuery != "" || opts.Location != "" {
		if !h.SearchLimiter.AllowRequest(r) {
			respond.SafeError(w, http.StatusTooManyRequests, fmt.Errorf("rate limit exceeded: requests must be spaced out"))
			return
		}
		apphttp.RecordSearchScan("competitions")
	}

	page, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		logging.WithRequestID(r.Context(), h.Logger).Warn("competition list rejected", slog.Any("error", err))
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, page)
}

type GetHandler struct{ Svc *compUC.Service }

func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c, err := h.Svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, c)
}

type CreateHandler struct{ Svc *compUC.Service }

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

	id, err := h.Svc.Create(r.Context(), compUC.CreateInput{
		Title:              req.Title,
		Organizer:          req.Organizer,
		Location:           req.Location,
		CompetitionType:    req.CompetitionType,
		Description:        req.Description,
		PositionsAvailable: req.PositionsAvailable,
	})
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusCreated, map[string]string{"id": id})
}

type UpdateHandler struct{ Svc *compUC.Service }

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
	err := h.Svc.Update(r.Context(), compUC.UpdateInput{
		ID:                 id,
		Title:              req.Title,
		Organizer:          req.Organizer,
		Location:           req.Location,
		CompetitionType:    req.CompetitionType,
		Description:        req.Description,
		PositionsAvailable: req.PositionsAvailable,
	})
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"id": id})
}

type DeleteHandler struct{ Svc *compUC.Service }

func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Register wires the /competitions routes.
func Register(mux *http.ServeMux, svc *compUC.Service, searchLimiter *apphttp.RateLimiter, logger *slog.Logger) {
	mux.Handle("GET    /competitions", ListHandler{Svc: svc, SearchLimiter: searchLimiter, Logger: logger})
	mux.Handle("GET    /competitions/{id}", GetHandler{svc})
	mux.Handle("POST   /competitions", auth.RequireAdmin(CreateHandler{svc}))
	mux.Handle("PUT    /competitions/{id}", auth.RequireAdmin(UpdateHandler{svc}))
	mux.Handle("DELETE /competitions/{id}", auth.RequireAdmin(DeleteHandler{svc}))
}
