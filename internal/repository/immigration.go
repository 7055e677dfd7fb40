package repository

import (
	"context"

	"github.com/Aywac/tawzifak1122/internal/common/pagination"
	"github.com/Aywac/tawzifak1122/internal/domain/entity"
)

// ImmigrationQuery describes one page read over the immigration
// collection.
type ImmigrationQuery struct {
	Cursor *pagination.Cursor
	Limit  int
}

// ImmigrationUpdate is a partial update; nil fields are left untouched.
type ImmigrationUpdate struct {
	Title          *string
	Slug           *string
	TargetCountry  *string
	City           *string
	ProgramType    *string
	TargetAudience *string
	Description    *string
}

// ImmigrationRepository persists immigration posts.
type ImmigrationRepository interface {
	ListPage(ctx context.Context, q ImmigrationQuery) ([]*entity.ImmigrationPost, error)
	ListAll(ctx context.Context) ([]*entity.ImmigrationPost, error)
	Get(ctx context.Context, id string) (*entity.ImmigrationPost, error)
	GetBySlug(ctx context.Context, slug string) (*entity.ImmigrationPost, error)
	GetMany(ctx context.Context, ids []string) ([]*entity.ImmigrationPost, error)
	Create(ctx context.Context, p *entity.ImmigrationPost) (string, error)
	Update(ctx context.Context, id string, upd ImmigrationUpdate) error
	Delete(ctx context.Context, id string) error
}
