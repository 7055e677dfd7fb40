// Package feed serves the /feed.xml RSS document built from the article
// list, for search engines and feed readers.
package feed

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Aywac/tawzifak1122/internal/domain/entity"
	"github.com/Aywac/tawzifak1122/internal/handler/http/respond"
	"github.com/Aywac/tawzifak1122/internal/observability/logging"
	artUC "github.com/Aywac/tawzifak1122/internal/usecase/article"

	"github.com/gorilla/feeds"
)

// DefaultBaseURL is the public site root used in feed links when no
// override is configured.
const DefaultBaseURL = "https://www.tawzifak.com"

type Handler struct {
	Svc     *artUC.Service
	BaseURL string
	Logger  *slog.Logger
}

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	articles, err := h.Svc.ListForFeed(r.Context())
	if err != nil {
		logging.WithRequestID(r.Context(), h.Logger).Error("feed build failed", slog.Any("error", err))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	base := h.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}

	now := time.Now()
	f := &feeds.Feed{
		Title:       "توظيفك - مقالات ونصائح",
		Link:        &feeds.Link{Href: base},
		Description: "آخر المقالات والنصائح حول التوظيف والهجرة والمباريات",
		Created:     now,
	}
	for _, a := range articles {
		f.Items = append(f.Items, &feeds.Item{
			Id:          fmt.Sprintf("%s/articles/%s", base, a.Slug),
			Title:       a.Title,
			Link:        &feeds.Link{Href: fmt.Sprintf("%s/articles/%s", base, a.Slug)},
			Description: excerpt(a, 300),
			Created:     a.DisplayTime(now),
		})
	}

	rss, err := f.ToRss()
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	_, _ = w.Write([]byte(rss))
}

// excerpt truncates the article body on a rune boundary for the item
// description.
func excerpt(a *entity.Article, max int) string {
	runes := []rune(a.Body)
	if len(runes) <= max {
		return a.Body
	}
	return string(runes[:max]) + "…"
}

// Register wires the /feed.xml route.
func Register(mux *http.ServeMux, svc *artUC.Service, baseURL string, logger *slog.Logger) {
	mux.Handle("GET    /feed.xml", Handler{Svc: svc, BaseURL: baseURL, Logger: logger})
}
