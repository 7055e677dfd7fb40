package listing

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Aywac/tawzifak1122/internal/domain/entity"
	"github.com/Aywac/tawzifak1122/internal/handler/http/auth"
	"github.com/Aywac/tawzifak1122/internal/handler/http/respond"
	listingUC "github.com/Aywac/tawzifak1122/internal/usecase/listing"
)

type CreateHandler struct {
	Svc      *listingUC.Service
	PostType entity.PostType
}

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

	// The owner is always the authenticated caller, never a body field.
	id, _ := auth.FromContext(r.Context())

	newID, err := h.Svc.Create(r.Context(), listingUC.CreateInput{
		Title:         req.Title,
		Description:   req.Description,
		CategoryID:    req.CategoryID,
		Country:       req.Country,
		City:          req.City,
		WorkType:      entity.WorkType(req.WorkType),
		CompanyName:   req.CompanyName,
		PostType:      h.PostType,
		OwnerID:       id.Subject,
		OwnerName:     req.OwnerName,
		OwnerPhotoURL: req.OwnerPhotoURL,
	})
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusCreated, idResponse{ID: newID})
}
