// Package immigration provides use cases for immigration opportunity
// posts: cursor-paginated listing, fuzzy search, slug-based detail lookup
// and admin mutations.
package immigration

import "errors"

// Sentinel errors for immigration use case operations.
var (
	// ErrPostNotFound indicates that the requested immigration post was
	// not found.
	ErrPostNotFound = errors.New("immigration post not found")

	// ErrInvalidPostID indicates that the provided post ID is empty.
	ErrInvalidPostID = errors.New("invalid immigration post ID")

	// ErrInvalidSlug indicates that the provided slug is empty.
	ErrInvalidSlug = errors.New("invalid immigration post slug")
)
