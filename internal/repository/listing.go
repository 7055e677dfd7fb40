// Package repository defines the persistence interfaces of the platform
// and the query option types shared between the usecases and the storage
// adapter.
package repository

import (
	"context"

	"github.com/Aywac/tawzifak1122/internal/common/pagination"
	"github.com/Aywac/tawzifak1122/internal/domain/entity"
)

// ListingFilters are the exact-match constraints of a listing query.
// Zero values mean "no constraint".
type ListingFilters struct {
	Country    string
	City       string
	CategoryID string
	WorkType   entity.WorkType
}

// ListingQuery describes one page read over the ads collection. The
// discriminator is always applied first; the remaining constraints follow
// in a stable order so cursors stay valid across calls with identical
// filters.
type ListingQuery struct {
	PostType entity.PostType
	Filters  ListingFilters
	Cursor   *pagination.Cursor
	Limit    int
}

// ListingUpdate is a partial update; nil fields are left untouched.
type ListingUpdate struct {
	Title         *string
	Description   *string
	CategoryID    *string
	CategoryName  *string
	Country       *string
	City          *string
	WorkType      *entity.WorkType
	CompanyName   *string
	OwnerName     *string
	OwnerPhotoURL *string
}

// ListingRepository persists classified ads.
type ListingRepository interface {
	// ListPage runs the keyset-paginated read described by q. Items come
	// back newest first, at most q.Limit of them.
	ListPage(ctx context.Context, q ListingQuery) ([]*entity.Listing, error)
	// ListAll loads the entire discriminator-filtered collection, newest
	// first. It backs the fallback fuzzy search and is bounded by the
	// total entity count, not a page size.
	ListAll(ctx context.Context, postType entity.PostType) ([]*entity.Listing, error)
	// ListByOwner returns all ads of one owner, newest first, regardless
	// of post type.
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Listing, error)
	// Get returns the listing or nil when it does not exist.
	Get(ctx context.Context, id string) (*entity.Listing, error)
	// GetMany resolves listings by ID, skipping missing ones.
	GetMany(ctx context.Context, ids []string) ([]*entity.Listing, error)
	// Create persists the listing and increments the matching stats
	// counter in one atomic transaction. Returns the new document ID.
	Create(ctx context.Context, l *entity.Listing) (string, error)
	// Update applies a partial update. Empty-string fields in the update
	// are persisted as deletions of the optional value.
	Update(ctx context.Context, id string, upd ListingUpdate) error
	// Delete removes the listing and decrements the matching stats
	// counter atomically. Returns entity.ErrNotFound when the listing does
	// not exist; the counter is left untouched in that case.
	Delete(ctx context.Context, id string) error
}
