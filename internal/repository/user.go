package repository

import (
	"context"

	"github.com/Aywac/tawzifak1122/internal/common/pagination"
	"github.com/Aywac/tawzifak1122/internal/domain/entity"
)

// UserQuery describes one page read over the users collection.
type UserQuery struct {
	Cursor *pagination.Cursor
	Limit  int
}

// UserUpdate is a partial profile update; nil fields are left untouched.
// An empty-string PhotoURL clears the stored photo.
type UserUpdate struct {
	Name     *string
	PhotoURL *string
}

// UserRepository persists user profiles and their saved-ad references.
type UserRepository interface {
	ListPage(ctx context.Context, q UserQuery) ([]*entity.User, error)
	Get(ctx context.Context, id string) (*entity.User, error)
	// Create persists the profile and increments the users counter in one
	// atomic transaction.
	Create(ctx context.Context, u *entity.User) error
	Update(ctx context.Context, id string, upd UserUpdate) error
	// Delete removes the profile and decrements the users counter
	// atomically.
	Delete(ctx context.Context, id string) error

	// ListSavedAds returns the user's saved-ad references.
	ListSavedAds(ctx context.Context, userID string) ([]entity.SavedAd, error)
	// ToggleSavedAd saves the ad when absent and unsaves it when present.
	// Returns true when the ad ended up saved.
	ToggleSavedAd(ctx context.Context, userID, adID string, adType entity.SavedAdType) (bool, error)
}

// StatsRepository reads the global counters document.
type StatsRepository interface {
	Get(ctx context.Context) (*entity.GlobalStats, error)
}
