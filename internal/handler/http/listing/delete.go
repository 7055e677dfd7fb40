package listing

import (
	"net/http"

	"github.com/Aywac/tawzifak1122/internal/handler/http/respond"
	listingUC "github.com/Aywac/tawzifak1122/internal/usecase/listing"
)

type DeleteHandler struct{ Svc *listingUC.Service }

func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	adID := r.PathValue("id")

	if !checkOwnership(w, r, h.Svc, adID) {
		return
	}

	if err := h.Svc.Delete(r.Context(), adID); err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
