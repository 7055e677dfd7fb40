// Package article serves the /articles routes. Articles are editorial
// content addressed by slug; reads are public, mutations are admin-only.
package article

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Aywac/tawzifak1122/internal/common/pagination"
	"github.com/Aywac/tawzifak1122/internal/handler/http/auth"
	"github.com/Aywac/tawzifak1122/internal/handler/http/respond"
	"github.com/Aywac/tawzifak1122/internal/observability/logging"
	artUC "github.com/Aywac/tawzifak1122/internal/usecase/article"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type createRequest struct {
	Title string `json:"title" validate:"required,max=200"`
	Slug  string `json:"slug" validate:"omitempty,max=250"`
	Body  string `json:"body" validate:"required"`
	Date  string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

type updateRequest struct {
	Title *string `json:"title" validate:"omitempty,min=1,max=200"`
	Slug  *string `json:"slug" validate:"omitempty,min=1,max=250"`
	Body  *string `json:"body" validate:"omitempty,min=1"`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, artUC.ErrArticleNotFound):
		return http.StatusNotFound
	case errors.Is(err, artUC.ErrInvalidArticleID),
		errors.Is(err, artUC.ErrInvalidSlug),
		errors.Is(err, pagination.ErrInvalidCursor):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

type ListHandler struct {
	Svc    *artUC.Service
	Logger *slog.Logger
}

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	count, _ := strconv.Atoi(q.Get("count"))

	page, err := h.Svc.List(r.Context(), artUC.ListOptions{
		Limit:  limit,
		Count:  count,
		Cursor: q.Get("cursor"),
	})
	if err != nil {
		logging.WithRequestID(r.Context(), h.Logger).Warn("article list rejected", slog.Any("error", err))
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, page)
}

type GetHandler struct{ Svc *artUC.Service }

func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a, err := h.Svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, a)
}

type GetBySlugHandler struct{ Svc *artUC.Service }

func (h GetBySlugHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a, err := h.Svc.GetBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, a)
}

type CreateHandler struct{ Svc *artUC.Service }

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

	id, err := h.Svc.Create(r.Context(), artUC.CreateInput{
		Title: req.Title,
		Slug:  req.Slug,
		Body:  req.Body,
		Date:  req.Date,
	})
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusCreated, map[string]string{"id": id})
}

type UpdateHandler struct{ Svc *artUC.Service }

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
	err := h.Svc.Update(r.Context(), artUC.UpdateInput{
		ID:    id,
		Title: req.Title,
		Slug:  req.Slug,
		Body:  req.Body,
	})
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"id": id})
}

type DeleteHandler struct{ Svc *artUC.Service }

func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Register wires the /articles routes.
func Register(mux *http.ServeMux, svc *artUC.Service, logger *slog.Logger) {
	mux.Handle("GET    /articles", ListHandler{Svc: svc, Logger: logger})
	mux.Handle("GET    /articles/slug/{slug}", GetBySlugHandler{svc})
	mux.Handle("GET    /articles/{id}", GetHandler{svc})
	mux.Handle("POST   /articles", auth.RequireAdmin(CreateHandler{svc}))
	mux.Handle("PUT    /articles/{id}", auth.RequireAdmin(UpdateHandler{svc}))
	mux.Handle("DELETE /articles/{id}", auth.RequireAdmin(DeleteHandler{svc}))
}
