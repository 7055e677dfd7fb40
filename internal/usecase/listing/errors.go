// Package listing provides use cases for classified ads: cursor-paginated
// listing, fallback fuzzy search, detail lookup and the owner-scoped
// mutations, with tag-based cache invalidation on every write.
package listing

import "errors"

// Sentinel errors for listing use case operations.
var (
	// ErrListingNotFound indicates that the requested listing was not found.
	ErrListingNotFound = errors.New("listing not found")

	// ErrInvalidListingID indicates that the provided listing ID is empty.
	ErrInvalidListingID = errors.New("invalid listing ID")

	// ErrInvalidPostType indicates an unknown post type discriminator.
	ErrInvalidPostType = errors.New("invalid post type")
)
