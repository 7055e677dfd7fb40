package entity

import "time"

// Competition represents a public recruitment competition announcement.
type Competition struct {
	ID                 string    `firestore:"-" json:"id"`
	Title              string    `firestore:"title" json:"title"`
	Organizer          string    `firestore:"organizer" json:"organizer"`
	Location           string    `firestore:"location" json:"location"`
	CompetitionType    string    `firestore:"competitionType" json:"competitionType"`
	Description        string    `firestore:"description" json:"description"`
	PositionsAvailable *int64    `firestore:"positionsAvailable" json:"positionsAvailable"`
	CreatedAt          time.Time `firestore:"createdAt" json:"-"`
	UpdatedAt          time.Time `firestore:"updatedAt" json:"-"`

	Derived
}
