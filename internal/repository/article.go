package repository

import (
	"context"

	"github.com/Aywac/tawzifak1122/internal/common/pagination"
	"github.com/Aywac/tawzifak1122/internal/domain/entity"
)

// ArticleQuery describes one page read over the articles collection.
type ArticleQuery struct {
	Cursor *pagination.Cursor
	Limit  int
}

// ArticleUpdate is a partial update; nil fields are left untouched.
type ArticleUpdate struct {
	Title *string
	Slug  *string
	Body  *string
}

// ArticleRepository persists editorial articles.
type ArticleRepository interface {
	ListPage(ctx context.Context, q ArticleQuery) ([]*entity.Article, error)
	Get(ctx context.Context, id string) (*entity.Article, error)
	// GetBySlug resolves an article by its unique slug, or nil when no
	// article carries it.
	GetBySlug(ctx context.Context, slug string) (*entity.Article, error)
	Create(ctx context.Context, a *entity.Article) (string, error)
	Update(ctx context.Context, id string, upd ArticleUpdate) error
	Delete(ctx context.Context, id string) error
}
