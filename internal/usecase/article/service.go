package article

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Aywac/tawzifak1122/internal/cache"
	"github.com/Aywac/tawzifak1122/internal/common/pagination"
	"github.com/Aywac/tawzifak1122/internal/common/slug"
	"github.com/Aywac/tawzifak1122/internal/domain/entity"
	"github.com/Aywac/tawzifak1122/internal/repository"
)

// ListOptions are the read options of an article list request.
type ListOptions struct {
	Limit  int
	Count  int
	Cursor string
}

// CreateInput represents the input parameters for publishing an article.
// An empty Slug is generated from the title.
type CreateInput struct {
	Title string
	Slug  string
	Body  string
	Date  string
}

// UpdateInput represents the input parameters for updating an article.
// Fields with nil values will not be updated.
type UpdateInput struct {
	ID    string
	Title *string
	Slug  *string
	Body  *string
}

// Service provides the article use cases.
type Service struct {
	Repo   repository.ArticleRepository
	Cache  *cache.Tagged
	Limits pagination.Config
	Logger *slog.Logger
}

// List runs one keyset-paginated article read. Read failures are logged
// and swallowed into an empty page.
func (s *Service) List(ctx context.Context, opts ListOptions) (pagination.Page[*entity.Article], error) {
	preview := opts.Count > 0
	limit := s.Limits.ClampLimit(opts.Limit, s.Limits.ArticleLimit)
	if preview {
		limit = s.Limits.ClampLimit(opts.Count, s.Limits.ArticleLimit)
	}

	var cursor *pagination.Cursor
	if !preview && opts.Cursor != "" {
		c, err := pagination.Decode(opts.Cursor)
		if err != nil {
			return pagination.EmptyPage[*entity.Article](), err
		}
		cursor = &c
	}

	cacheable := opts.Cursor == "" || preview
	key := fmt.Sprintf("articles:list:%d:%t", limit, preview)
	if cacheable && s.Cache != nil {
		if v, ok := s.Cache.Get(key); ok {
			if page, ok := v.(pagination.Page[*entity.Article]); ok {
				return page, nil
			}
		}
	}

	items, err := s.Repo.ListPage(ctx, repository.ArticleQuery{Cursor: cursor, Limit: limit})
	if err != nil {
		s.logger().Error("list articles failed", slog.Any("error", err))
		return pagination.EmptyPage[*entity.Article](), nil
	}

	var page pagination.Page[*entity.Article]
	if preview || len(items) < limit || len(items) == 0 {
		page = pagination.NewPage(items, "")
	} else {
		last := items[len(items)-1]
		page = pagination.NewPage(items, pagination.Cursor{ID: last.ID, CreatedAt: last.CreatedAt}.Encode())
	}

	if cacheable && s.Cache != nil {
		s.Cache.Put(key, page, []string{"articles-list"}, 0)
	}
	return page, nil
}

// ListForFeed loads the newest articles for the syndication documents,
// capped by the feed limit. Feed reads share the articles-list tag.
func (s *Service) ListForFeed(ctx context.Context) ([]*entity.Article, error) {
	key := "articles:feed"
	if s.Cache != nil {
		if v, ok := s.Cache.Get(key); ok {
			if items, ok := v.([]*entity.Article); ok {
				return items, nil
			}
		}
	}

	items, err := s.Repo.ListPage(ctx, repository.ArticleQuery{Limit: s.Limits.FeedLimit})
	if err != nil {
		return nil, fmt.Errorf("list articles for feed: %w", err)
	}

	if s.Cache != nil {
		s.Cache.Put(key, items, []string{"articles-list"}, 0)
	}
	return items, nil
}

// GetBySlug retrieves a single article by its public slug.
// Returns ErrArticleNotFound if no article carries the slug.
func (s *Service) GetBySlug(ctx context.Context, sl string) (*entity.Article, error) {
	if sl == "" {
		return nil, ErrInvalidSlug
	}

	key := "article:slug:" + sl
	if s.Cache != nil {
		if v, ok := s.Cache.Get(key); ok {
			if a, ok := v.(*entity.Article); ok {
				return a, nil
			}
		}
	}

	a, err := s.Repo.GetBySlug(ctx, sl)
	if err != nil {
		return nil, fmt.Errorf("get article by slug: %w", err)
	}
	if a == nil {
		return nil, ErrArticleNotFound
	}

	if s.Cache != nil {
		s.Cache.Put(key, a, []string{"article-" + a.Slug}, 0)
	}
	return a, nil
}

// Get retrieves a single article by ID.
// Returns ErrArticleNotFound if the article does not exist.
func (s *Service) Get(ctx context.Context, id string) (*entity.Article, error) {
	if id == "" {
		return nil, ErrInvalidArticleID
	}

	a, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	if a == nil {
		return nil, ErrArticleNotFound
	}
	return a, nil
}

// Create publishes a new article and returns its ID.
func (s *Service) Create(ctx context.Context, in CreateInput) (string, error) {
	if in.Title == "" {
		return "", &entity.ValidationError{Field: "title", Message: "is required"}
	}
	if in.Body == "" {
		return "", &entity.ValidationError{Field: "body", Message: "is required"}
	}

	a := &entity.Article{
		Title: in.Title,
		Slug:  in.Slug,
		Body:  in.Body,
		Date:  in.Date,
	}
	if a.Slug == "" {
		a.Slug = slug.Unique(in.Title)
	}

	id, err := s.Repo.Create(ctx, a)
	if err != nil {
		return "", fmt.Errorf("create article: %w", err)
	}

	s.invalidate("articles-list")
	return id, nil
}

// Update modifies an existing article. Only non-nil fields are updated.
// Returns ErrArticleNotFound if the article does not exist.
func (s *Service) Update(ctx context.Context, in UpdateInput) error {
	if in.ID == "" {
		return ErrInvalidArticleID
	}
	if in.Title != nil && *in.Title == "" {
		return &entity.ValidationError{Field: "title", Message: "cannot be empty"}
	}

	// The old slug's cached detail must go too when the slug changes.
	a, err := s.Repo.Get(ctx, in.ID)
	if err != nil {
		return fmt.Errorf("get article: %w", err)
	}
	if a == nil {
		return ErrArticleNotFound
	}

	err = s.Repo.Update(ctx, in.ID, repository.ArticleUpdate{
		Title: in.Title,
		Slug:  in.Slug,
		Body:  in.Body,
	})
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return ErrArticleNotFound
		}
		return fmt.Errorf("update article: %w", err)
	}

	s.invalidate("articles-list", "article-"+a.Slug)
	return nil
}

// Delete removes an article. Returns ErrArticleNotFound if the article
// does not exist.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidArticleID
	}

	a, err := s.Repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get article: %w", err)
	}
	if a == nil {
		return ErrArticleNotFound
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete article: %w", err)
	}

	s.invalidate("articles-list", "article-"+a.Slug)
	return nil
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
