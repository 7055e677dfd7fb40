package entity

import "time"

// User represents a platform account profile.
type User struct {
	ID        string    `firestore:"-" json:"id"`
	Name      string    `firestore:"name" json:"name"`
	PhotoURL  string    `firestore:"photoURL" json:"photoURL,omitempty"`
	Admin     bool      `firestore:"isAdmin" json:"isAdmin"`
	CreatedAt time.Time `firestore:"createdAt" json:"-"`
}

// SavedAdType tags a saved-ad reference with its source collection.
type SavedAdType string

const (
	SavedAdJob         SavedAdType = "job"
	SavedAdCompetition SavedAdType = "competition"
	SavedAdImmigration SavedAdType = "immigration"
)

// Valid reports whether the saved-ad type names a known source collection.
func (t SavedAdType) Valid() bool {
	switch t {
	case SavedAdJob, SavedAdCompetition, SavedAdImmigration:
		return true
	}
	return false
}

// SavedAd is an entry in a user's savedAds sub-collection referencing an ad
// in one of the three listing collections.
type SavedAd struct {
	AdID    string      `firestore:"-" json:"adId"`
	Type    SavedAdType `firestore:"type" json:"type"`
	SavedAt time.Time   `firestore:"savedAt" json:"-"`
}
