// Package testimonial serves the /testimonials routes. Anyone may submit
// a testimonial; only admins may remove one.
package testimonial

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
	testiUC "github.com/Aywac/tawzifak1122/internal/usecase/testimonial"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type createRequest struct {
	Author  string `json:"author" validate:"required,max=100"`
	Content string `json:"content" validate:"required,max=2000"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, testiUC.ErrTestimonialNotFound):
		return http.StatusNotFound
	case errors.Is(err, testiUC.ErrInvalidTestimonialID),
		errors.Is(err, pagination.ErrInvalidCursor):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

type ListHandler struct {
	Svc    *testiUC.Service
	Logger *slog.Logger
}

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	count, _ := strconv.Atoi(q.Get("count"))

	page, err := h.Svc.List(r.Context(), testiUC.ListOptions{
		Limit:  limit,
		Count:  count,
		Cursor: q.Get("cursor"),
	})
	if err != nil {
		logging.WithRequestID(r.Context(), h.Logger).Warn("testimonial list rejected", slog.Any("error", err))
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, page)
}

type CreateHandler struct{ Svc *testiUC.Service }

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

	id, err := h.Svc.Create(r.Context(), testiUC.CreateInput{
		Author:  req.Author,
		Content: req.Content,
		Rating:  req.Rating,
	})
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusCreated, map[string]string{"id": id})
}

type DeleteHandler struct{ Svc *testiUC.Service }

func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Register wires the /testimonials routes.
func Register(mux *http.ServeMux, svc *testiUC.Service, logger *slog.Logger) {
	mux.Handle("GET    /testimonials", ListHandler{Svc: svc, Logger: logger})
	mux.Handle("POST   /testimonials", CreateHandler{svc})
	mux.Handle("DELETE /testimonials/{id}", auth.RequireAdmin(DeleteHandler{svc}))
}
