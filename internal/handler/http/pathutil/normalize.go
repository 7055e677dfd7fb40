// Package pathutil normalizes request paths into route templates so that
// metrics labels stay low-cardinality. Document IDs and slugs are free-form
// strings, so every dynamic segment must collapse into a placeholder.
package pathutil

import (
	"regexp"
	"strings"
)

type pathPattern struct {
	pattern  *regexp.Regexp
	template string
}

// seg matches one non-empty path segment. IDs are Firestore document IDs
// and slugs may contain any unicode letters, so nothing narrower is safe.
const seg = `[^/]+`

// pathPatterns is evaluated in order, most specific first.
var pathPatterns = []pathPattern{
	{regexp.MustCompile(`^/articles/slug/` + seg + `$`), "/articles/slug/:slug"},
	{regexp.MustCompile(`^/immigration/slug/` + seg + `$`), "/immigration/slug/:slug"},
	{regexp.MustCompile(`^/users/` + seg + `/saved-ads/` + seg + `/toggle$`), "/users/:id/saved-ads/:adID/toggle"},
	{regexp.MustCompile(`^/users/` + seg + `/saved-ads$`), "/users/:id/saved-ads"},

	{regexp.MustCompile(`^/jobs/` + seg + `$`), "/jobs/:id"},
	{regexp.MustCompile(`^/workers/` + seg + `$`), "/workers/:id"},
	{regexp.MustCompile(`^/competitions/` + seg + `$`), "/competitions/:id"},
	{regexp.MustCompile(`^/immigration/` + seg + `$`), "/immigration/:id"},
	{regexp.MustCompile(`^/articles/` + seg + `$`), "/articles/:id"},
	{regexp.MustCompile(`^/testimonials/` + seg + `$`), "/testimonials/:id"},
	{regexp.MustCompile(`^/users/` + seg + `$`), "/users/:id"},
	{regexp.MustCompile(`^/reports/` + seg + `$`), "/reports/:id"},
	{regexp.MustCompile(`^/contacts/` + seg + `$`), "/contacts/:id"},
}

// NormalizePath maps a request path to its route template, e.g.
// /jobs/aF3xQ9 becomes /jobs/:id. Static paths pass through unchanged.
// Query strings and trailing slashes are stripped first.
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.pattern.MatchString(path) {
			return p.template
		}
	}
	return path
}
