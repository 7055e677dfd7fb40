package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/Aywac/tawzifak1122/internal/cache"
	"github.com/Aywac/tawzifak1122/internal/common/pagination"
	"github.com/Aywac/tawzifak1122/internal/domain/entity"
	"github.com/Aywac/tawzifak1122/internal/repository"
)

// savedAdsChunk caps the IDs resolved per batch read so one user with a
// huge saved list cannot issue an unbounded single request.
const savedAdsChunk = 30

// ListOptions are the read options of the admin user list.
type ListOptions struct {
	Limit  int
	Cursor string
}

// EnsureInput carries the profile fields known at first login.
type EnsureInput struct {
	ID       string
	Name     string
	PhotoURL string
}

// UpdateInput represents a profile update. Fields with nil values will
// not be updated; an empty-string PhotoURL clears the stored photo.
type UpdateInput struct {
	ID       string
	Name     *string
	PhotoURL *string
}

// SavedAds groups a user's saved ads by their source collection, each
// resolved to full entities with missing (deleted) ads silently dropped.
type SavedAds struct {
	Jobs         []*entity.Listing         `json:"jobs"`
	Competitions []*entity.Competition     `json:"competitions"`
	Immigration  []*entity.ImmigrationPost `json:"immigration"`
}

// Service provides the user profile and saved-ads use cases.
type Service struct {
	Repo         repository.UserRepository
	Listings     repository.ListingRepository
	Competitions repository.CompetitionRepository
	Immigration  repository.ImmigrationRepository
	Cache        *cache.Tagged
	Limits       pagination.Config
	Logger       *slog.Logger
}

// Get retrieves a user profile by ID.
// Returns ErrUserNotFound if the user does not exist.
func (s *Service) Get(ctx context.Context, id string) (*entity.User, error) {
	if id == "" {
		return nil, ErrInvalidUserID
	}

	u, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// Ensure creates the profile document on first login. An existing profile
// is left untouched; only a fresh create moves the users counter.
func (s *Service) Ensure(ctx context.Context, in EnsureInput) error {
	if in.ID == "" {
		return ErrInvalidUserID
	}

	u, err := s.Repo.Get(ctx, in.ID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	if u != nil {
		return nil
	}

	err = s.Repo.Create(ctx, &entity.User{
		ID:       in.ID,
		Name:     in.Name,
		PhotoURL: in.PhotoURL,
	})
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	s.invalidate("stats")
	return nil
}

// Update modifies a profile and propagates the new display name and photo
// to every ad the user has published, so listings never show stale owner
// info. Propagation failures are logged, not returned: the profile update
// itself already succeeded.
func (s *Service) Update(ctx context.Context, in UpdateInput) error {
	if in.ID == "" {
		return ErrInvalidUserID
	}
	if in.Name != nil && *in.Name == "" {
		return &entity.ValidationError{Field: "name", Message: "cannot be empty"}
	}

	err := s.Repo.Update(ctx, in.ID, repository.UserUpdate{Name: in.Name, PhotoURL: in.PhotoURL})
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("update user: %w", err)
	}

	if in.Name != nil || in.PhotoURL != nil {
		s.propagateToAds(ctx, in)
	}
	return nil
}

func (s *Service) propagateToAds(ctx context.Context, in UpdateInput) {
	ads, err := s.Listings.ListByOwner(ctx, in.ID)
	if err != nil {
		s.logger().Error("list owner ads for profile sync failed",
			slog.String("userId", in.ID), slog.Any("error", err))
		return
	}

	tags := []string{"jobs-list", "jobs-home", "seekers-list", "seekers-home"}
	for _, ad := range ads {
		upd := repository.ListingUpdate{OwnerName: in.Name, OwnerPhotoURL: in.PhotoURL}
		if err := s.Listings.Update(ctx, ad.ID, upd); err != nil {
			s.logger().Error("profile sync to ad failed",
				slog.String("adId", ad.ID), slog.Any("error", err))
			continue
		}
		tags = append(tags, "job-"+ad.ID)
	}
	s.invalidate(tags...)
}

// Delete removes a profile, decrementing the users counter.
// Returns ErrUserNotFound if the user does not exist.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidUserID
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}

	s.invalidate("stats")
	return nil
}

// List returns one page of user profiles for the admin panel.
func (s *Service) List(ctx context.Context, opts ListOptions) (pagination.Page[*entity.User], error) {
	limit := s.Limits.ClampLimit(opts.Limit, s.Limits.UserLimit)

	var cursor *pagination.Cursor
	if opts.Cursor != "" {
		c, err := pagination.Decode(opts.Cursor)
		if err != nil {
			return pagination.EmptyPage[*entity.User](), err
		}
		cursor = &c
	}

	items, err := s.Repo.ListPage(ctx, repository.UserQuery{Cursor: cursor, Limit: limit})
	if err != nil {
		return pagination.EmptyPage[*entity.User](), fmt.Errorf("list users: %w", err)
	}

	if len(items) < limit || len(items) == 0 {
		return pagination.NewPage(items, ""), nil
	}
	last := items[len(items)-1]
	return pagination.NewPage(items, pagination.Cursor{ID: last.ID, CreatedAt: last.CreatedAt}.Encode()), nil
}

// SavedAds resolves the user's saved references to full entities. The
// three collections are fetched in parallel, chunked, with deleted ads
// silently dropped.
func (s *Service) SavedAds(ctx context.Context, userID string) (*SavedAds, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}

	refs, err := s.Repo.ListSavedAds(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list saved ads: %w", err)
	}

	byType := map[entity.SavedAdType][]string{}
	for _, ref := range refs {
		byType[ref.Type] = append(byType[ref.Type], ref.AdID)
	}

	g, gctx := errgroup.WithContext(ctx)

	// Each goroutine writes its own slot; the slices are only flattened
	// after Wait.
	jobChunks := chunk(byType[entity.SavedAdJob], savedAdsChunk)
	jobs := make([][]*entity.Listing, len(jobChunks))
	for i, ids := range jobChunks {
		g.Go(func() error {
			items, err := s.Listings.GetMany(gctx, ids)
			if err != nil {
				return fmt.Errorf("resolve saved jobs: %w", err)
			}
			jobs[i] = items
			return nil
		})
	}

	compChunks := chunk(byType[entity.SavedAdCompetition], savedAdsChunk)
	comps := make([][]*entity.Competition, len(compChunks))
	for i, ids := range compChunks {
		g.Go(func() error {
			items, err := s.Competitions.GetMany(gctx, ids)
			if err != nil {
				return fmt.Errorf("resolve saved competitions: %w", err)
			}
			comps[i] = items
			return nil
		})
	}

	immChunks := chunk(byType[entity.SavedAdImmigration], savedAdsChunk)
	imms := make([][]*entity.ImmigrationPost, len(immChunks))
	for i, ids := range immChunks {
		g.Go(func() error {
			items, err := s.Immigration.GetMany(gctx, ids)
			if err != nil {
				return fmt.Errorf("resolve saved immigration posts: %w", err)
			}
			imms[i] = items
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &SavedAds{}
	for _, items := range jobs {
		out.Jobs = append(out.Jobs, items...)
	}
	for _, items := range comps {
		out.Competitions = append(out.Competitions, items...)
	}
	for _, items := range imms {
		out.Immigration = append(out.Immigration, items...)
	}
	return out, nil
}

// ToggleSavedAd flips the saved state of one ad for the user and reports
// whether the ad ended up saved.
func (s *Service) ToggleSavedAd(ctx context.Context, userID, adID string, adType entity.SavedAdType) (bool, error) {
	if userID == "" || adID == "" {
		return false, ErrInvalidUserID
	}
	if !adType.Valid() {
		return false, ErrInvalidSavedAdType
	}

	saved, err := s.Repo.ToggleSavedAd(ctx, userID, adID, adType)
	if err != nil {
		return false, fmt.Errorf("toggle saved ad: %w", err)
	}
	return saved, nil
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

func chunk(ids []string, size int) [][]string {
	var out [][]string
	for len(ids) > size {
		out = append(out, ids[:size])
		ids = ids[size:]
	}
	if len(ids) > 0 {
		out = append(out, ids)
	}
	return out
}
