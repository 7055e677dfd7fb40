// Package competition provides use cases for recruitment competition
// announcements: cursor-paginated listing, fuzzy search with a location
// post-filter, detail lookup and admin mutations.
package competition

import "errors"

// Sentinel errors for competition use case operations.
var (
	// ErrCompetitionNotFound indicates that the requested competition was
	// not found.
	ErrCompetitionNotFound = errors.New("competition not found")

	// ErrInvalidCompetitionID indicates that the provided competition ID
	// is empty.
	ErrInvalidCompetitionID = errors.New("invalid competition ID")
)
