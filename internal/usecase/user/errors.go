// Package user provides use cases for account profiles and their saved
// ads: profile bootstrap on first login, profile updates propagated to
// the owner's published ads, the admin user list and the saved-ads
// aggregation across the three listing collections.
package user

import "errors"

// Sentinel errors for user use case operations.
var (
	// ErrUserNotFound indicates that the requested user was not found.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidUserID indicates that the provided user ID is empty.
	ErrInvalidUserID = errors.New("invalid user ID")

	// ErrInvalidSavedAdType indicates an unknown saved-ad type.
	ErrInvalidSavedAdType = errors.New("invalid saved ad type")
)
