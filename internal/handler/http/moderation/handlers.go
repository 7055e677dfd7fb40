// Package moderation serves the public report and contact forms and
// their admin review routes.
package moderation

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Aywac/tawzifak1122/internal/handler/http/auth"
	"github.com/Aywac/tawzifak1122/internal/handler/http/respond"
	"github.com/Aywac/tawzifak1122/internal/observability/logging"
	modUC "github.com/Aywac/tawzifak1122/internal/usecase/moderation"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type reportRequest struct {
	AdID    string `json:"adId" validate:"required"`
	AdType  string `json:"adType" validate:"omitempty,oneof=job worker competition immigration"`
	Reason  string `json:"reason" validate:"required,max=200"`
	Details string `json:"details" validate:"omitempty,max=2000"`
}

type contactRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"omitempty,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

type idResponse struct {
	ID string `json:"id"`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, modUC.ErrReportNotFound),
		errors.Is(err, modUC.ErrContactNotFound):
		return http.StatusNotFound
	case errors.Is(err, modUC.ErrInvalidID):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

type SubmitReportHandler struct {
	Svc    *modUC.Service
	Logger *slog.Logger
}

func (h SubmitReportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	if err := validate.Struct(req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	id, err := h.Svc.SubmitReport(r.Context(), modUC.ReportInput{
		AdID:    req.AdID,
		AdType:  req.AdType,
		Reason:  req.Reason,
		Details: req.Details,
	})
	if err != nil {
		logging.WithRequestID(r.Context(), h.Logger).Warn("report rejected", slog.Any("error", err))
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusCreated, idResponse{ID: id})
}

type ListReportsHandler struct{ Svc *modUC.Service }

func (h ListReportsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	items, err := h.Svc.ListReports(r.Context())
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, items)
}

type DismissReportHandler struct{ Svc *modUC.Service }

func (h DismissReportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.DismissReport(r.Context(), r.PathValue("id")); err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type SubmitContactHandler struct {
	Svc    *modUC.Service
	Logger *slog.Logger
}

func (h SubmitContactHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	if err := validate.Struct(req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	id, err := h.Svc.SubmitContact(r.Context(), modUC.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		logging.WithRequestID(r.Context(), h.Logger).Warn("contact message rejected", slog.Any("error", err))
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusCreated, idResponse{ID: id})
}

type ListContactsHandler struct{ Svc *modUC.Service }

func (h ListContactsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	items, err := h.Svc.ListContacts(r.Context())
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, items)
}

type DeleteContactHandler struct{ Svc *modUC.Service }

func (h DeleteContactHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.DeleteContact(r.Context(), r.PathValue("id")); err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Register wires the moderation routes. Submissions are public; the
// review queues are admin-only.
func Register(mux *http.ServeMux, svc *modUC.Service, logger *slog.Logger) {
	mux.Handle("POST   /reports", SubmitReportHandler{Svc: svc, Logger: logger})
	mux.Handle("GET    /reports", auth.RequireAdmin(ListReportsHandler{svc}))
	mux.Handle("DELETE /reports/{id}", auth.RequireAdmin(DismissReportHandler{svc}))

	mux.Handle("POST   /contacts", SubmitContactHandler{Svc: svc, Logger: logger})
	mux.Handle("GET    /contacts", auth.RequireAdmin(ListContactsHandler{svc}))
	mux.Handle("DELETE /contacts/{id}", auth.RequireAdmin(DeleteContactHandler{svc}))
}
