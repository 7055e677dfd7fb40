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

type UpdateHandler struct{ Svc *listingUC.Service }

func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	adID := r.PathValue("id")

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	if err := validate.Struct(req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	if !h.ownedByCaller(w, r, adID) {
		return
	}

	var workType *entity.WorkType
	if req.WorkType != nil {
		wt := entity.WorkType(*req.WorkType)
		workType = &wt
	}

	err := h.Svc.Update(r.Context(), listingUC.UpdateInput{
		ID:            adID,
		Title:         req.Title,
		Description:   req.Description,
		CategoryID:    req.CategoryID,
		Country:       req.Country,
		City:          req.City,
		WorkType:      workType,
		CompanyName:   req.CompanyName,
		OwnerName:     req.OwnerName,
		OwnerPhotoURL: req.OwnerPhotoURL,
	})
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, idResponse{ID: adID})
}

// ownedByCaller loads the listing and rejects callers who neither own it
// nor hold the admin flag. It writes the error response itself.
func (h UpdateHandler) ownedByCaller(w http.ResponseWriter, r *http.Request, adID string) bool {
	return checkOwnership(w, r, h.Svc, adID)
}

func checkOwnership(w http.ResponseWriter, r *http.Request, svc *listingUC.Service, adID string) bool {
	l, err := svc.Get(r.Context(), adID)
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return false
	}
	id, _ := auth.FromContext(r.Context())
	if !id.CanManage(l.OwnerID) {
		respond.JSON(w, http.StatusForbidden, map[string]string{"error": "forbidden"})
		return false
	}
	return true
}
