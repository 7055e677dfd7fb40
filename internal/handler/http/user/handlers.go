// Package user serves the profile and saved-ads routes. Every route
// requires a bearer token; profile access is restricted to the account
// owner or an admin, and the flat user list is admin-only.
package user

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Aywac/tawzifak1122/internal/common/pagination"
	"github.com/Aywac/tawzifak1122/internal/domain/entity"
	"github.com/Aywac/tawzifak1122/internal/handler/http/auth"
	"github.com/Aywac/tawzifak1122/internal/handler/http/respond"
	"github.com/Aywac/tawzifak1122/internal/observability/logging"
	userUC "github.com/Aywac/tawzifak1122/internal/usecase/user"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type ensureRequest struct {
	Name     string `json:"name" validate:"omitempty,max=100"`
	PhotoURL string `json:"photoURL" validate:"omitempty,url"`
}

type updateRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=100"`
	PhotoURL *string `json:"photoURL"`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, userUC.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, userUC.ErrInvalidUserID),
		errors.Is(err, userUC.ErrInvalidSavedAdType),
		errors.Is(err, pagination.ErrInvalidCursor):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// selfOrAdmin rejects callers addressing another user's profile without
// the admin flag. It writes the error response itself.
func selfOrAdmin(w http.ResponseWriter, r *http.Request, userID string) bool {
	id, _ := auth.FromContext(r.Context())
	if !id.CanManage(userID) {
		respond.JSON(w, http.StatusForbidden, map[string]string{"error": "forbidden"})
		return false
	}
	return true
}

type ListHandler struct {
	Svc    *userUC.Service
	Logger *slog.Logger
}

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))

	page, err := h.Svc.List(r.Context(), userUC.ListOptions{
		Limit:  limit,
		Cursor: q.Get("cursor"),
	})
	if err != nil {
		logging.WithRequestID(r.Context(), h.Logger).Warn("user list rejected", slog.Any("error", err))
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, page)
}

type GetHandler struct{ Svc *userUC.Service }

func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	if !selfOrAdmin(w, r, userID) {
		return
	}
	u, err := h.Svc.Get(r.Context(), userID)
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, u)
}

// EnsureHandler creates the caller's profile on first login. Repeat calls
// are no-ops.
type EnsureHandler struct{ Svc *userUC.Service }

func (h EnsureHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req ensureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	if err := validate.Struct(req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	id, _ := auth.FromContext(r.Context())
	err := h.Svc.Ensure(r.Context(), userUC.EnsureInput{
		ID:       id.Subject,
		Name:     req.Name,
		PhotoURL: req.PhotoURL,
	})
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"id": id.Subject})
}

type UpdateHandler struct{ Svc *userUC.Service }

func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	if !selfOrAdmin(w, r, userID) {
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	if err := validate.Struct(req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	err := h.Svc.Update(r.Context(), userUC.UpdateInput{
		ID:       userID,
		Name:     req.Name,
		PhotoURL: req.PhotoURL,
	})
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"id": userID})
}

type DeleteHandler struct{ Svc *userUC.Service }

func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type SavedAdsHandler struct{ Svc *userUC.Service }

func (h SavedAdsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	if !selfOrAdmin(w, r, userID) {
		return
	}
	saved, err := h.Svc.SavedAds(r.Context(), userID)
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, saved)
}

type ToggleSavedAdHandler struct{ Svc *userUC.Service }

func (h ToggleSavedAdHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	if !selfOrAdmin(w, r, userID) {
		return
	}

	adType := entity.SavedAdType(r.URL.Query().Get("type"))
	saved, err := h.Svc.ToggleSavedAd(r.Context(), userID, r.PathValue("adID"), adType)
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]bool{"saved": saved})
}

// Register wires the /users routes.
func Register(mux *http.ServeMux, svc *userUC.Service, logger *slog.Logger) {
	mux.Handle("GET    /users", auth.RequireAdmin(ListHandler{Svc: svc, Logger: logger}))
	mux.Handle("POST   /users", auth.Require(EnsureHandler{svc}))
	mux.Handle("GET    /users/{id}", auth.Require(GetHandler{svc}))
	mux.Handle("PUT    /users/{id}", auth.Require(UpdateHandler{svc}))
	mux.Handle("DELETE /users/{id}", auth.RequireAdmin(DeleteHandler{svc}))

	mux.Handle("GET    /users/{id}/saved-ads", auth.Require(SavedAdsHandler{svc}))
	mux.Handle("POST   /users/{id}/saved-ads/{adID}/toggle", auth.Require(ToggleSavedAdHandler{svc}))
}
