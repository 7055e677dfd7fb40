package listing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Aywac/tawzifak1122/internal/cache"
	"github.com/Aywac/tawzifak1122/internal/common/pagination"
	"github.com/Aywac/tawzifak1122/internal/common/search"
	"github.com/Aywac/tawzifak1122/internal/domain/entity"
	"github.com/Aywac/tawzifak1122/internal/repository"
	"github.com/Aywac/tawzifak1122/internal/resilience/circuitbreaker"
)

// ListOptions are the read options of a listing list request.
type ListOptions struct {
	// Limit caps the page size; zero means the configured default.
	Limit int
	// Count requests a homepage preview of that many items. It wins over
	// Limit and Cursor and never produces a next cursor.
	Count int
	// SearchQuery switches the read to the fallback fuzzy search.
	SearchQuery string
	// Cursor resumes a previous page. Only valid with the same filters
	// that produced it.
	Cursor string
	// ExcludeID drops one listing from the result, for related-listings
	// sections on the detail page.
	ExcludeID string

	Country    string
	City       string
	CategoryID string
	WorkType   entity.WorkType
}

// CreateInput represents the input parameters for publishing a listing.
type CreateInput struct {
	Title         string
	Description   string
	CategoryID    string
	Country       string
	City          string
	WorkType      entity.WorkType
	CompanyName   string
	PostType      entity.PostType
	OwnerID       string
	OwnerName     string
	OwnerPhotoURL string
}

// UpdateInput represents the input parameters for updating a listing.
// Fields with nil values will not be updated.
type UpdateInput struct {
	ID            string
	Title         *string
	Description   *string
	CategoryID    *string
	Country       *string
	City          *string
	WorkType      *entity.WorkType
	CompanyName   *string
	OwnerName     *string
	OwnerPhotoURL *string
}

// Service provides the classified-ads use cases. Cache and Breaker are
// optional; a nil cache disables read caching and a nil breaker runs
// search scans unguarded.
type Service struct {
	Repo    repository.ListingRepository
	Cache   *cache.Tagged
	Breaker *circuitbreaker.CircuitBreaker
	Limits  pagination.Config
	Logger  *slog.Logger
}

// listingFields are the fields the fallback search matches against.
func listingFields(l *entity.Listing) []string {
	return []string{l.Title, l.Description, l.CategoryName, l.City, l.Country, l.CompanyName}
}

// List runs one list read: the fallback fuzzy search when a query is
// present, a keyset-paginated Firestore read otherwise. Read failures are
// logged and swallowed into an empty page; only invalid caller input is
// returned as an error.
func (s *Service) List(ctx context.Context, postType entity.PostType, opts ListOptions) (pagination.Page[*entity.Listing], error) {
	if !postType.Valid() {
		return pagination.EmptyPage[*entity.Listing](), ErrInvalidPostType
	}

	if opts.SearchQuery != "" {
		return s.searchList(ctx, postType, opts), nil
	}

	preview := opts.Count > 0
	limit := s.Limits.ClampLimit(opts.Limit, s.Limits.ListingLimit)
	if preview {
		limit = s.Limits.ClampLimit(opts.Count, s.Limits.ListingLimit)
	}

	var cursor *pagination.Cursor
	if !preview && opts.Cursor != "" {
		c, err := pagination.Decode(opts.Cursor)
		if err != nil {
			return pagination.EmptyPage[*entity.Listing](), err
		}
		cursor = &c
	}

	key, cacheable := s.listKey(postType, opts, limit, preview)
	if cacheable && s.Cache != nil {
		if v, ok := s.Cache.Get(key); ok {
			if page, ok := v.(pagination.Page[*entity.Listing]); ok {
				return page, nil
			}
		}
	}

	fetch := limit
	if opts.ExcludeID != "" {
		// One extra row keeps the page full after the exclusion.
		fetch++
	}

	items, err := s.Repo.ListPage(ctx, repository.ListingQuery{
		PostType: postType,
		Filters: repository.ListingFilters{
			Country:    opts.Country,
			City:       opts.City,
			CategoryID: opts.CategoryID,
			WorkType:   opts.WorkType,
		},
		Cursor: cursor,
		Limit:  fetch,
	})
	if err != nil {
		s.logger().Error("list listings failed", slog.String("postType", string(postType)), slog.Any("error", err))
		return pagination.EmptyPage[*entity.Listing](), nil
	}

	full := len(items) == fetch
	if opts.ExcludeID != "" {
		items = excludeListing(items, opts.ExcludeID)
	}
	if len(items) > limit {
		items = items[:limit]
	}

	var page pagination.Page[*entity.Listing]
	if preview || !full || len(items) == 0 {
		page = pagination.NewPage(items, "")
	} else {
		last := items[len(items)-1]
		page = pagination.NewPage(items, pagination.Cursor{ID: last.ID, CreatedAt: last.CreatedAt}.Encode())
	}

	if cacheable && s.Cache != nil {
		s.Cache.Put(key, page, s.listTags(postType, preview), 0)
	}
	return page, nil
}

// searchList is the fallback fuzzy search: full discriminator-filtered
// scan, similarity ranking, exact post-filters, truncation. totalCount is
// the number of matches before truncation and no cursor is ever produced.
func (s *Service) searchList(ctx context.Context, postType entity.PostType, opts ListOptions) pagination.Page[*entity.Listing] {
	items, err := s.scanAll(ctx, postType)
	if err != nil {
		s.logger().Error("listing search scan failed", slog.String("postType", string(postType)), slog.Any("error", err))
		return pagination.EmptyPage[*entity.Listing]()
	}

	matches := search.Rank(items, opts.SearchQuery, listingFields, search.DefaultThreshold)
	matches = filterListings(matches, opts)

	total := len(matches)
	limit := s.Limits.ClampLimit(opts.Limit, s.Limits.ListingLimit)
	if opts.Count > 0 {
		limit = s.Limits.ClampLimit(opts.Count, s.Limits.ListingLimit)
	}
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return pagination.NewSearchPage(matches, total)
}

func (s *Service) scanAll(ctx context.Context, postType entity.PostType) ([]*entity.Listing, error) {
	if s.Breaker == nil {
		return s.Repo.ListAll(ctx, postType)
	}
	v, err := s.Breaker.Execute(func() (interface{}, error) {
		return s.Repo.ListAll(ctx, postType)
	})
	if err != nil {
		return nil, err
	}
	return v.([]*entity.Listing), nil
}

// Get retrieves a single listing by ID.
// Returns ErrInvalidListingID if the ID is empty.
// Returns ErrListingNotFound if the listing does not exist.
func (s *Service) Get(ctx context.Context, id string) (*entity.Listing, error) {
	if id == "" {
		return nil, ErrInvalidListingID
	}

	key := "job:" + id
	if s.Cache != nil {
		if v, ok := s.Cache.Get(key); ok {
			if l, ok := v.(*entity.Listing); ok {
				return l, nil
			}
		}
	}

	l, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get listing: %w", err)
	}
	if l == nil {
		return nil, ErrListingNotFound
	}

	if s.Cache != nil {
		s.Cache.Put(key, l, []string{"job-" + id}, 0)
	}
	return l, nil
}

// ListByOwner returns all listings published by one owner, newest first.
func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Listing, error) {
	if ownerID == "" {
		return nil, ErrInvalidListingID
	}
	items, err := s.Repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list listings by owner: %w", err)
	}
	return items, nil
}

// Create publishes a new listing and returns its ID. The category name is
// resolved from the static category table, never trusted from the caller.
func (s *Service) Create(ctx context.Context, in CreateInput) (string, error) {
	if !in.PostType.Valid() {
		return "", ErrInvalidPostType
	}
	if in.Title == "" {
		return "", &entity.ValidationError{Field: "title", Message: "is required"}
	}
	if in.Description == "" {
		return "", &entity.ValidationError{Field: "description", Message: "is required"}
	}
	if in.OwnerID == "" {
		return "", &entity.ValidationError{Field: "userId", Message: "is required"}
	}

	l := &entity.Listing{
		Title:         in.Title,
		Description:   in.Description,
		CategoryID:    in.CategoryID,
		Country:       in.Country,
		City:          in.City,
		WorkType:      in.WorkType,
		CompanyName:   in.CompanyName,
		PostType:      in.PostType,
		OwnerID:       in.OwnerID,
		OwnerName:     in.OwnerName,
		OwnerPhotoURL: in.OwnerPhotoURL,
	}
	if c := entity.CategoryByID(in.CategoryID); c != nil {
		l.CategoryName = c.Name
	}

	id, err := s.Repo.Create(ctx, l)
	if err != nil {
		return "", fmt.Errorf("create listing: %w", err)
	}

	s.invalidate(append(s.listTags(in.PostType, true), "stats")...)
	return id, nil
}

// Update modifies an existing listing. Only non-nil fields are updated.
// Returns ErrListingNotFound if the listing does not exist.
func (s *Service) Update(ctx context.Context, in UpdateInput) error {
	if in.ID == "" {
		return ErrInvalidListingID
	}

	l, err := s.Repo.Get(ctx, in.ID)
	if err != nil {
		return fmt.Errorf("get listing: %w", err)
	}
	if l == nil {
		return ErrListingNotFound
	}

	if in.Title != nil && *in.Title == "" {
		return &entity.ValidationError{Field: "title", Message: "cannot be empty"}
	}
	if in.Description != nil && *in.Description == "" {
		return &entity.ValidationError{Field: "description", Message: "cannot be empty"}
	}

	upd := repository.ListingUpdate{
		Title:         in.Title,
		Description:   in.Description,
		CategoryID:    in.CategoryID,
		Country:       in.Country,
		City:          in.City,
		WorkType:      in.WorkType,
		CompanyName:   in.CompanyName,
		OwnerName:     in.OwnerName,
		OwnerPhotoURL: in.OwnerPhotoURL,
	}
	if in.CategoryID != nil {
		var name string
		if c := entity.CategoryByID(*in.CategoryID); c != nil {
			name = c.Name
		}
		upd.CategoryName = &name
	}

	if err := s.Repo.Update(ctx, in.ID, upd); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return ErrListingNotFound
		}
		return fmt.Errorf("update listing: %w", err)
	}

	s.invalidate(append(s.listTags(l.PostType, true), "job-"+in.ID)...)
	return nil
}

// Delete removes a listing. The matching stats counter is decremented by
// the repository transaction, so the stats tag is invalidated too.
// Returns ErrListingNotFound if the listing does not exist.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidListingID
	}

	l, err := s.Repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get listing: %w", err)
	}
	if l == nil {
		return ErrListingNotFound
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return ErrListingNotFound
		}
		return fmt.Errorf("delete listing: %w", err)
	}

	s.invalidate(append(s.listTags(l.PostType, true), "job-"+id, "stats")...)
	return nil
}

// tagPrefix maps the discriminator to its cache tag family.
func tagPrefix(postType entity.PostType) string {
	if postType == entity.PostTypeSeekingJob {
		return "seekers"
	}
	return "jobs"
}

// listTags returns the tags a cached list entry belongs to. Mutations
// always invalidate both so withHome is only meaningful on Put.
func (s *Service) listTags(postType entity.PostType, withHome bool) []string {
	prefix := tagPrefix(postType)
	tags := []string{prefix + "-list"}
	if withHome {
		tags = append(tags, prefix+"-home")
	}
	return tags
}

// listKey builds the cache key of a list read and reports whether the
// read is cacheable at all: pages resumed from a cursor or carrying an
// exclusion are always fetched fresh.
func (s *Service) listKey(postType entity.PostType, opts ListOptions, limit int, preview bool) (string, bool) {
	if opts.Cursor != "" && !preview {
		return "", false
	}
	if opts.ExcludeID != "" {
		return "", false
	}

	kind := "list"
	if preview {
		kind = "home"
	}
	key := fmt.Sprintf("%s:%s:%s:%s:%s:%s:%d",
		tagPrefix(postType), kind, opts.Country, opts.City, opts.CategoryID, opts.WorkType, limit)
	return key, true
}

func (s *Service) invalidate(tags ...string) {
	if s.Cache != nil {
		s.Cache.Invalidate(tags...)
	}
}

func (s *Service) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// filterListings applies the exact post-filters of the search path.
func filterListings(items []*entity.Listing, opts ListOptions) []*entity.Listing {
	out := items[:0:0]
	for _, l := range items {
		if opts.Country != "" && l.Country != opts.Country {
			continue
		}
		if opts.City != "" && l.City != opts.City {
			continue
		}
		if opts.CategoryID != "" && l.CategoryID != opts.CategoryID {
			continue
		}
		if opts.WorkType != "" && l.WorkType != opts.WorkType {
			continue
		}
		if opts.ExcludeID != "" && l.ID == opts.ExcludeID {
			continue
		}
		out = append(out, l)
	}
	return out
}

func excludeListing(items []*entity.Listing, id string) []*entity.Listing {
	out := items[:0:0]
	for _, l := range items {
		if l.ID != id {
			out = append(out, l)
		}
	}
	return out
}
