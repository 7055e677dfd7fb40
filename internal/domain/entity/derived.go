package entity

import (
	"fmt"
	"time"
)

// newWindow is the age under which a post is flagged as new.
const newWindow = 24 * time.Hour

// Derived carries the read-time fields attached to every listing-like
// entity. They are computed on each read relative to "now" and are never
// persisted.
type Derived struct {
	PostedAt     string `firestore:"-" json:"postedAt"`
	CreatedAtISO string `firestore:"-" json:"createdAtISO"`
	IsNew        bool   `firestore:"-" json:"isNew"`
}

// ComputeDerived builds the derived fields for an entity created at the
// given time, evaluated against now.
func ComputeDerived(createdAt, now time.Time) Derived {
	return Derived{
		PostedAt:     FormatTimeAgo(createdAt, now),
		CreatedAtISO: createdAt.UTC().Format(time.RFC3339),
		IsNew:        now.Sub(createdAt) < newWindow,
	}
}

// FormatTimeAgo renders a localized relative-age string for the given
// timestamp. A zero timestamp renders as unknown.
func FormatTimeAgo(t, now time.Time) string {
	if t.IsZero() {
		return "غير معروف"
	}

	seconds := int64(now.Sub(t).Seconds())
	switch {
	case seconds > 31536000:
		return plural(seconds/31536000, "قبل سنة", "قبل %d سنوات")
	case seconds > 2592000:
		return plural(seconds/2592000, "قبل شهر", "قبل %d أشهر")
	case seconds > 86400:
		return plural(seconds/86400, "قبل يوم", "قبل %d أيام")
	case seconds > 3600:
		return plural(seconds/3600, "قبل ساعة", "قبل %d ساعات")
	case seconds > 60:
		return plural(seconds/60, "قبل دقيقة", "قبل %d دقائق")
	default:
		return "الآن"
	}
}

func plural(n int64, singular, format string) string {
	if n == 1 {
		return singular
	}
	return fmt.Sprintf(format, n)
}
