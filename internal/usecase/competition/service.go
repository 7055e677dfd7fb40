package competition

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

// ListOptions are the read options of a competition list request.
type ListOptions struct {
	Limit       int
	Count       int
	SearchQuery string
	Cursor      string
	// Location is a free-text location filter matched fuzzily against the
	// competition location with a tighter threshold than the main query.
	Location  string
	ExcludeID string
}

// CreateInput represents the input parameters for creating a competition.
type CreateInput struct {
	Title              string
	Organizer          string
	Location           string
	CompetitionType    string
	Description        string
	PositionsAvailable *int64
}

// UpdateInput represents the input parameters for updating a competition.
// Fields with nil values will not be updated.
type UpdateInput struct {
	ID                 string
	Title              *string
	Organizer          *string
	Location           *string
	CompetitionType    *string
	Description        *string
	PositionsAvailable *int64
}

// Service provides the competition use cases.
type Service struct {
	Repo    repository.CompetitionRepository
	Cache   *cache.Tagged
	Breaker *circuitbreaker.CircuitBreaker
	Limits  pagination.Config
	Logger  *slog.Logger
}

func competitionFields(c *entity.Competition) []string {
	return []string{c.Title, c.Organizer, c.Location, c.CompetitionType, c.Description}
}

// List runs one list read. A free-text query or a location filter routes
// the read through the in-memory fallback search; otherwise it is a
// keyset-paginated store read. Read failures are logged and swallowed
// into an empty page.
func (s *Service) List(ctx context.Context, opts ListOptions) (pagination.Page[*entity.Competition], error) {
	if opts.SearchQuery != "" || opts.Location != "" {
		return s.searchList(ctx, opts), nil
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
			return pagination.EmptyPage[*entity.Competition](), err
		}
		cursor = &c
	}

	key, cacheable := listKey(opts, limit, preview)
	if cacheable && s.Cache != nil {
		if v, ok := s.Cache.Get(key); ok {
			if page, ok := v.(pagination.Page[*entity.Competition]); ok {
				return page, nil
			}
		}
	}

	fetch := limit
	if opts.ExcludeID != "" {
		fetch++
	}

	items, err := s.Repo.ListPage(ctx, repository.CompetitionQuery{Cursor: cursor, Limit: fetch})
	if err != nil {
		s.logger().Error("list competitions failed", slog.Any("error", err))
		return pagination.EmptyPage[*entity.Competition](), nil
	}

	full := len(items) == fetch
	if opts.ExcludeID != "" {
		items = exclude(items, opts.ExcludeID)
	}
	if len(items) > limit {
		items = items[:limit]
	}

	var page pagination.Page[*entity.Competition]
	if preview || !full || len(items) == 0 {
		page = pagination.NewPage(items, "")
	} else {
		last := items[len(items)-1]
		page = pagination.NewPage(items, pagination.Cursor{ID: last.ID, CreatedAt: last.CreatedAt}.Encode())
	}

	if cacheable && s.Cache != nil {
		s.Cache.Put(key, page, listTags(preview), 0)
	}
	return page, nil
}

func (s *Service) searchList(ctx context.Context, opts ListOptions) pagination.Page[*entity.Competition] {
	items, err := s.scanAll(ctx)
	if err != nil {
		s.logger().Error("competition search scan failed", slog.Any("error", err))
		return pagination.EmptyPage[*entity.Competition]()
	}

	matches := search.Rank(items, opts.SearchQuery, competitionFields, search.DefaultThreshold)
	if opts.Location != "" {
		matches = search.Rank(matches, opts.Location, func(c *entity.Competition) []string {
			return []string{c.Location}
		}, search.LocationThreshold)
	}
	if opts.ExcludeID != "" {
		matches = exclude(matches, opts.ExcludeID)
	}

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

func (s *Service) scanAll(ctx context.Context) ([]*entity.Competition, error) {
	if s.Breaker == nil {
		return s.Repo.ListAll(ctx)
	}
	v, err := s.Breaker.Execute(func() (interface{}, error) {
		return s.Repo.ListAll(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]*entity.Competition), nil
}

// Get retrieves a single competition by ID.
// Returns ErrCompetitionNotFound if the competition does not exist.
func (s *Service) Get(ctx context.Context, id string) (*entity.Competition, error) {
	if id == "" {
		return nil, ErrInvalidCompetitionID
	}

	key := "comp:" + id
	if s.Cache != nil {
		if v, ok := s.Cache.Get(key); ok {
			if c, ok := v.(*entity.Competition); ok {
				return c, nil
			}
		}
	}

	c, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get competition: %w", err)
	}
	if c == nil {
		return nil, ErrCompetitionNotFound
	}

	if s.Cache != nil {
		s.Cache.Put(key, c, []string{"comp-" + id}, 0)
	}
	return c, nil
}

// Create persists a new competition and returns its ID. The competitions
// counter moves with it, so the stats tag is invalidated.
func (s *Service) Create(ctx context.Context, in CreateInput) (string, error) {
	if in.Title == "" {
		return "", &entity.ValidationError{Field: "title", Message: "is required"}
	}
	if in.Organizer == "" {
		return "", &entity.ValidationError{Field: "organizer", Message: "is required"}
	}
	// The submission form offers the fixed organizer list, so anything
	// else is a hand-crafted request.
	if entity.OrganizerByName(in.Organizer) == nil {
		return "", &entity.ValidationError{Field: "organizer", Message: "must be a known organizer"}
	}

	c := &entity.Competition{
		Title:              in.Title,
		Organizer:          in.Organizer,
		Location:           in.Location,
		CompetitionType:    in.CompetitionType,
		Description:        in.Description,
		PositionsAvailable: in.PositionsAvailable,
	}

	id, err := s.Repo.Create(ctx, c)
	if err != nil {
		return "", fmt.Errorf("create competition: %w", err)
	}

	s.invalidate("competitions-list", "competitions-home", "stats")
	return id, nil
}

// Update modifies an existing competition. Only non-nil fields are
// updated. Returns ErrCompetitionNotFound if the competition does not
// exist.
func (s *Service) Update(ctx context.Context, in UpdateInput) error {
	if in.ID == "" {
		return ErrInvalidCompetitionID
	}
	if in.Title != nil && *in.Title == "" {
		return &entity.ValidationError{Field: "title", Message: "cannot be empty"}
	}

	err := s.Repo.Update(ctx, in.ID, repository.CompetitionUpdate{
		Title:              in.Title,
		Organizer:          in.Organizer,
		Location:           in.Location,
		CompetitionType:    in.CompetitionType,
		Description:        in.Description,
		PositionsAvailable: in.PositionsAvailable,
	})
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return ErrCompetitionNotFound
		}
		return fmt.Errorf("update competition: %w", err)
	}

	s.invalidate("competitions-list", "competitions-home", "comp-"+in.ID)
	return nil
}

// Delete removes a competition, decrementing the competitions counter.
// Returns ErrCompetitionNotFound if the competition does not exist.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidCompetitionID
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return ErrCompetitionNotFound
		}
		return fmt.Errorf("delete competition: %w", err)
	}

	s.invalidate("competitions-list", "competitions-home", "comp-"+id, "stats")
	return nil
}

func listTags(preview bool) []string {
	tags := []string{"competitions-list"}
	if preview {
		tags = append(tags, "competitions-home")
	}
	return tags
}

func listKey(opts ListOptions, limit int, preview bool) (string, bool) {
	if (opts.Cursor != "" && !preview) || opts.ExcludeID != "" {
		return "", false
	}
	kind := "list"
	if preview {
		kind = "home"
	}
	return fmt.Sprintf("competitions:%s:%d", kind, limit), true
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

func exclude(items []*entity.Competition, id string) []*entity.Competition {
	out := items[:0:0]
	for _, c := range items {
		if c.ID != id {
			out = append(out, c)
		}
	}
	return out
}
