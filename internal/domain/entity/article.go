package entity

import "time"

// Article represents an editorial article looked up by its unique slug.
type Article struct {
	ID        string    `firestore:"-" json:"id"`
	Title     string    `firestore:"title" json:"title"`
	Slug      string    `firestore:"slug" json:"slug"`
	Body      string    `firestore:"body" json:"body"`
	// Date is a fallback display date for articles imported without a
	// server timestamp.
	Date      string    `firestore:"date" json:"date,omitempty"`
	CreatedAt time.Time `firestore:"createdAt" json:"-"`
	UpdatedAt time.Time `firestore:"updatedAt" json:"-"`

	Derived
}

// DisplayTime returns the article creation time, falling back to the
// imported display date and finally to now when neither is set.
func (a *Article) DisplayTime(now time.Time) time.Time {
	if !a.CreatedAt.IsZero() {
		return a.CreatedAt
	}
	if a.Date != "" {
		if t, err := time.Parse("2006-01-02", a.Date); err == nil {
			return t
		}
	}
	return now
}
