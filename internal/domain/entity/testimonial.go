package entity

import "time"

// Testimonial represents a user review shown on the public testimonials
// page and the home carousel.
type Testimonial struct {
	ID        string    `firestore:"-" json:"id"`
	Author    string    `firestore:"author" json:"author"`
	Content   string    `firestore:"content" json:"content"`
	Rating    int       `firestore:"rating" json:"rating"`
	CreatedAt time.Time `firestore:"createdAt" json:"-"`

	Derived
}
