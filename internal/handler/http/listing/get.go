package listing

import (
	"net/http"

	"github.com/Aywac/tawzifak1122/internal/handler/http/respond"
	listingUC "github.com/Aywac/tawzifak1122/internal/usecase/listing"
)

type GetHandler struct{ Svc *listingUC.Service }

func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	l, err := h.Svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, l)
}
