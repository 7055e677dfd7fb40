// Package meta serves the static reference data behind the filter
// dropdowns. The lists are compiled in, so the responses carry a long
// client cache lifetime.
package meta

import (
	"net/http"

	"github.com/Aywac/tawzifak1122/internal/domain/entity"
	"github.com/Aywac/tawzifak1122/internal/handler/http/respond"
)

const cacheControl = "public, max-age=86400"

func CategoriesHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", cacheControl)
		respond.JSON(w, http.StatusOK, entity.Categories())
	})
}

func OrganizersHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", cacheControl)
		respond.JSON(w, http.StatusOK, entity.Organizers())
	})
}

// Register wires the reference-data routes.
func Register(mux *http.ServeMux) {
	mux.Handle("GET    /categories", CategoriesHandler())
	mux.Handle("GET    /organizers", OrganizersHandler())
}
