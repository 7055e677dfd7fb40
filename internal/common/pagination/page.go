package pagination

// Page is the result of a list-producing read.
type Page[T any] struct {
	// Data holds the items of this page, newest first.
	Data []T `json:"data"`
	// TotalCount is the number of matches before truncation. It is only
	// set on the fuzzy-search path; cursor-paginated reads leave it nil.
	TotalCount *int `json:"totalCount,omitempty"`
	// NextCursor is the opaque token resuming after the last item, or nil
	// when there are no more pages (or on the search path, which is not
	// incrementally paginable).
	NextCursor *string `json:"nextCursor"`
}

// EmptyPage returns the zero-value page used when a read fails and the
// error is swallowed.
func EmptyPage[T any]() Page[T] {
	zero := 0
	return Page[T]{Data: []T{}, TotalCount: &zero, NextCursor: nil}
}

// NewPage builds a cursor-paginated page. cursor may be empty to signal the
// final page.
func NewPage[T any](items []T, cursor string) Page[T] {
	p := Page[T]{Data: items}
	if cursor != "" {
		p.NextCursor = &cursor
	}
	return p
}

// NewSearchPage builds a page produced by the fallback fuzzy search:
// totalCount is the pre-truncation match count and no cursor exists.
func NewSearchPage[T any](items []T, totalCount int) Page[T] {
	return Page[T]{Data: items, TotalCount: &totalCount, NextCursor: nil}
}
