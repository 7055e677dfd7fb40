package entity

import "time"

// Report is an abuse report filed against a listing, reviewed by admins.
type Report struct {
	ID        string    `firestore:"-" json:"id"`
	AdID      string    `firestore:"adId" json:"adId"`
	AdType    string    `firestore:"adType" json:"adType"`
	Reason    string    `firestore:"reason" json:"reason"`
	Details   string    `firestore:"details" json:"details,omitempty"`
	CreatedAt time.Time `firestore:"createdAt" json:"-"`
}

// ContactMessage is a message submitted through the contact form.
type ContactMessage struct {
	ID        string    `firestore:"-" json:"id"`
	Name      string    `firestore:"name" json:"name"`
	Email     string    `firestore:"email" json:"email"`
	Subject   string    `firestore:"subject" json:"subject,omitempty"`
	Message   string    `firestore:"message" json:"message"`
	CreatedAt time.Time `firestore:"createdAt" json:"-"`
}
