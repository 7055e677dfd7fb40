// Package listing serves the /jobs and /workers route families. Both are
// backed by the same ads collection; the post type baked into each handler
// at registration picks the side.
package listing

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	apphttp "github.com/Aywac/tawzifak1122/internal/handler/http"
	"github.com/Aywac/tawzifak1122/internal/handler/http/respond"
	"github.com/Aywac/tawzifak1122/internal/domain/entity"
	"github.com/Aywac/tawzifak1122/internal/observability/logging"
	listingUC "github.com/Aywac/tawzifak1122/internal/usecase/listing"
)

type ListHandler struct {
	Svc      *listingUC.Service
	PostType entity.PostType
	// SearchLimiter meters requests carrying a search query; nil disables
	// metering. Plain keyset reads are never metered.
	SearchLimiter *apphttp.RateLimiter
	Logger        *slog.Logger
}

// parseListOptions reads the list query parameters shared by /jobs and
// /workers.
func parseListOptions(q url.Values) listingUC.ListOptions {
	limit, _ := strconv.Atoi(q.Get("limit"))
	count, _ := strconv.Atoi(q.Get("count"))
	return listingUC.ListOptions{
		Limit:       limit,
		Count:       count,
		SearchQuery: q.Get("q"),
		Cursor:      q.Get("cursor"),
		ExcludeID:   q.Get("exclude_id"),
		Country:     q.Get("country"),
		City:        q.Get("city"),
		CategoryID:  q.Get("category"),
		WorkType:    entity.WorkType(q.Get("work_type")),
	}
}

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	opts := parseListOptions(r.URL.Query())

	if opts.SearchQuery != "" {
		if !h.SearchLimiter.AllowRequest(r) {
			respond.SafeError(w, http.StatusTooManyRequests, fmt.Errorf("rate limit exceeded: requests must be spaced out"))
			return
		}
		apphttp.RecordSearchScan("ads")
	}

	page, err := h.Svc.List(r.Context(), h.PostType, opts)
	if err != nil {
		logging.WithRequestID(r.Context(), h.Logger).Warn("list rejected",
			slog.String("post_type", string(h.PostType)),
			slog.Any("error", err))
		respond.SafeError(w, statusFor(err), err)
		return
	}

	respond.JSON(w, http.StatusOK, page)
}
