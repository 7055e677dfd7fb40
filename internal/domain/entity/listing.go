// Package entity defines the core domain entities of the classifieds
// platform: listings, competitions, immigration posts, articles,
// testimonials, users and the global stats counters, together with the
// derived read-time fields and the static reference data (categories,
// organizers, program types).
package entity

import "time"

// PostType discriminates the two logical listing kinds stored in the
// single ads collection.
type PostType string

const (
	// PostTypeSeekingWorker marks a job offer published by an employer.
	PostTypeSeekingWorker PostType = "seeking_worker"
	// PostTypeSeekingJob marks a job-seeker announcement.
	PostTypeSeekingJob PostType = "seeking_job"
)

// Valid reports whether the post type is one of the two known discriminator
// values.
func (p PostType) Valid() bool {
	return p == PostTypeSeekingWorker || p == PostTypeSeekingJob
}

// WorkType describes the employment arrangement of a listing.
type WorkType string

const (
	WorkTypeFullTime  WorkType = "full_time"
	WorkTypePartTime  WorkType = "part_time"
	WorkTypeFreelance WorkType = "freelance"
	WorkTypeSeasonal  WorkType = "seasonal"
)

// Listing represents a classified ad in the ads collection: either a job
// offer (seeking_worker) or a job-seeker post (seeking_job).
type Listing struct {
	ID            string    `firestore:"-" json:"id"`
	Title         string    `firestore:"title" json:"title"`
	Description   string    `firestore:"description" json:"description"`
	CategoryID    string    `firestore:"categoryId" json:"categoryId"`
	CategoryName  string    `firestore:"categoryName" json:"categoryName"`
	Country       string    `firestore:"country" json:"country"`
	City          string    `firestore:"city" json:"city"`
	WorkType      WorkType  `firestore:"workType" json:"workType"`
	CompanyName   string    `firestore:"companyName" json:"companyName,omitempty"`
	PostType      PostType  `firestore:"postType" json:"postType"`
	OwnerID       string    `firestore:"userId" json:"userId"`
	OwnerName     string    `firestore:"ownerName" json:"ownerName,omitempty"`
	OwnerPhotoURL string    `firestore:"ownerPhotoURL" json:"ownerPhotoURL,omitempty"`
	Likes         int64     `firestore:"likes" json:"likes"`
	CreatedAt     time.Time `firestore:"createdAt" json:"-"`
	UpdatedAt     time.Time `firestore:"updatedAt" json:"-"`

	Derived
}

// CounterField returns the global stats counter this listing contributes to.
func (l *Listing) CounterField() string {
	if l.PostType == PostTypeSeekingJob {
		return "seekers"
	}
	return "jobs"
}
