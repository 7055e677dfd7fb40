package immigration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Aywac/tawzifak1122/internal/cache"
	"github.com/Aywac/tawzifak1122/internal/common/pagination"
	"github.com/Aywac/tawzifak1122/internal/common/search"
	"github.com/Aywac/tawzifak1122/internal/common/slug"
	"github.com/Aywac/tawzifak1122/internal/domain/entity"
	"github.com/Aywac/tawzifak1122/internal/repository"
	"github.com/Aywac/tawzifak1122/internal/resilience/circuitbreaker"
)

// ListOptions are the read options of an immigration list request.
type ListOptions struct {
	Limit       int
	Count       int
	SearchQuery string
	Cursor      string
	ExcludeID   string
}

// CreateInput represents the input parameters for creating an immigration
// post. The slug is generated from the title, never supplied.
type CreateInput struct {
	Title          string
	TargetCountry  string
	City           string
	ProgramType    string
	TargetAudience string
	Description    string
}

// UpdateInput represents the input parameters for updating an immigration
// post. Fields with nil values will not be updated. A new title does not
// change the slug; published URLs stay stable.
type UpdateInput struct {
	ID             string
	Title          *string
	TargetCountry  *string
	City           *string
	ProgramType    *string
	TargetAudience *string
	Description    *string
}

// Service provides the immigration post use cases.
type Service struct {
	Repo    repository.ImmigrationRepository
	Cache   *cache.Tagged
	Breaker *circuitbreaker.CircuitBreaker
	Limits  pagination.Config
	Logger  *slog.Logger
}

func immigrationFields(p *entity.ImmigrationPost) []string {
	return []string{
		p.Title,
		p.TargetCountry,
		p.City,
		entity.GetProgramTypeDetails(p.ProgramType).Name,
		p.TargetAudience,
		p.Description,
	}
}

// List runs one list read: the fallback fuzzy search when a query is
// present, a keyset-paginated store read otherwise. Read failures are
// logged and swallowed into an empty page.
func (s *Service) List(ctx context.Context, opts ListOptions) (pagination.Page[*entity.ImmigrationPost], error) {
	if opts.SearchQuery != "" {
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
			return pagination.EmptyPage[*entity.ImmigrationPost](), err
		}
		cursor = &c
	}

	key, cacheable := listKey(opts, limit, preview)
	if cacheable && s.Cache != nil {
		if v, ok := s.Cache.Get(key); ok {
			if page, ok := v.(pagination.Page[*entity.ImmigrationPost]); ok {
				return page, nil
			}
		}
	}

	fetch := limit
	if opts.ExcludeID != "" {
		fetch++
	}

	items, err := s.Repo.ListPage(ctx, repository.ImmigrationQuery{Cursor: cursor, Limit: fetch})
	if err != nil {
		s.logger().Error("list immigration posts failed", slog.Any("error", err))
		return pagination.EmptyPage[*entity.ImmigrationPost](), nil
	}

	full := len(items) == fetch
	if opts.ExcludeID != "" {
		items = exclude(items, opts.ExcludeID)
	}
	if len(items) > limit {
		items = items[:limit]
	}

	var page pagination.Page[*entity.ImmigrationPost]
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

func (s *Service) searchList(ctx context.Context, opts ListOptions) pagination.Page[*entity.ImmigrationPost] {
	items, err := s.scanAll(ctx)
	if err != nil {
		s.logger().Error("immigration search scan failed", slog.Any("error", err))
		return pagination.EmptyPage[*entity.ImmigrationPost]()
	}

	matches := search.Rank(items, opts.SearchQuery, immigrationFields, search.DefaultThreshold)
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

func (s *Service) scanAll(ctx context.Context) ([]*entity.ImmigrationPost, error) {
	if s.Breaker == nil {
		return s.Repo.ListAll(ctx)
	}
	v, err := s.Breaker.Execute(func() (interface{}, error) {
		return s.Repo.ListAll(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]*entity.ImmigrationPost), nil
}

// Get retrieves a single post by ID.
// Returns ErrPostNotFound if the post does not exist.
func (s *Service) Get(ctx context.Context, id string) (*entity.ImmigrationPost, error) {
	if id == "" {
		return nil, ErrInvalidPostID
	}

	key := "imm:" + id
	if s.Cache != nil {
		if v, ok := s.Cache.Get(key); ok {
			if p, ok := v.(*entity.ImmigrationPost); ok {
				return p, nil
			}
		}
	}

	p, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get immigration post: %w", err)
	}
	if p == nil {
		return nil, ErrPostNotFound
	}

	if s.Cache != nil {
		s.Cache.Put(key, p, []string{"imm-" + id}, 0)
	}
	return p, nil
}

// GetBySlug retrieves a single post by its public slug.
// Returns ErrPostNotFound if no post carries the slug.
func (s *Service) GetBySlug(ctx context.Context, sl string) (*entity.ImmigrationPost, error) {
	if sl == "" {
		return nil, ErrInvalidSlug
	}

	key := "imm:slug:" + sl
	if s.Cache != nil {
		if v, ok := s.Cache.Get(key); ok {
			if p, ok := v.(*entity.ImmigrationPost); ok {
				return p, nil
			}
		}
	}

	p, err := s.Repo.GetBySlug(ctx, sl)
	if err != nil {
		return nil, fmt.Errorf("get immigration post by slug: %w", err)
	}
	if p == nil {
		return nil, ErrPostNotFound
	}

	if s.Cache != nil {
		// Tagged with the post ID so ID-based mutations evict it too.
		s.Cache.Put(key, p, []string{"imm-" + p.ID}, 0)
	}
	return p, nil
}

// Create persists a new post and returns its ID. The immigration counter
// moves with it, so the stats tag is invalidated.
func (s *Service) Create(ctx context.Context, in CreateInput) (string, error) {
	if in.Title == "" {
		return "", &entity.ValidationError{Field: "title", Message: "is required"}
	}
	if in.TargetCountry == "" {
		return "", &entity.ValidationError{Field: "targetCountry", Message: "is required"}
	}

	p := &entity.ImmigrationPost{
		Title:          in.Title,
		Slug:           slug.Unique(in.Title),
		TargetCountry:  in.TargetCountry,
		City:           in.City,
		ProgramType:    in.ProgramType,
		TargetAudience: in.TargetAudience,
		Description:    in.Description,
	}

	id, err := s.Repo.Create(ctx, p)
	if err != nil {
		return "", fmt.Errorf("create immigration post: %w", err)
	}

	s.invalidate("immigration-list", "immigration-home", "stats")
	return id, nil
}

// Update modifies an existing post. Only non-nil fields are updated.
// Returns ErrPostNotFound if the post does not exist.
func (s *Service) Update(ctx context.Context, in UpdateInput) error {
	if in.ID == "" {
		return ErrInvalidPostID
	}
	if in.Title != nil && *in.Title == "" {
		return &entity.ValidationError{Field: "title", Message: "cannot be empty"}
	}

	err := s.Repo.Update(ctx, in.ID, repository.ImmigrationUpdate{
		Title:          in.Title,
		TargetCountry:  in.TargetCountry,
		City:           in.City,
		ProgramType:    in.ProgramType,
		TargetAudience: in.TargetAudience,
		Description:    in.Description,
	})
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return ErrPostNotFound
		}
		return fmt.Errorf("update immigration post: %w", err)
	}

	s.invalidate("immigration-list", "immigration-home", "imm-"+in.ID)
	return nil
}

// Delete removes a post, decrementing the immigration counter.
// Returns ErrPostNotFound if the post does not exist.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidPostID
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return ErrPostNotFound
		}
		return fmt.Errorf("delete immigration post: %w", err)
	}

	s.invalidate("immigration-list", "immigration-home", "imm-"+id, "stats")
	return nil
}

func listTags(preview bool) []string {
	tags := []string{"immigration-list"}
	if preview {
		tags = append(tags, "immigration-home")
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
	return fmt.Sprintf("immigration:%s:%d", kind, limit), true
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

func exclude(items []*entity.ImmigrationPost, id string) []*entity.ImmigrationPost {
	out := items[:0:0]
	for _, p := range items {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}
