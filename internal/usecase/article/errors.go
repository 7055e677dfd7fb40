// Package article provides use cases for editorial articles: paginated
// listing, slug-based detail lookup, the syndication feed read and the
// admin mutations.
package article

import "errors"

// Sentinel errors for article use case operations.
var (
	// ErrArticleNotFound indicates that the requested article was not
	// found.
	ErrArticleNotFound = errors.New("article not found")

	// ErrInvalidArticleID indicates that the provided article ID is empty.
	ErrInvalidArticleID = errors.New("invalid article ID")

	// ErrInvalidSlug indicates that the provided slug is empty.
	ErrInvalidSlug = errors.New("invalid article slug")
)
