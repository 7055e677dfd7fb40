package repository

import (
	"context"

	"github.com/Aywac/tawzifak1122/internal/common/pagination"
	"github.com/Aywac/tawzifak1122/internal/domain/entity"
)

// CompetitionQuery describes one page read over the competitions
// collection.
type CompetitionQuery struct {
	Cursor *pagination.Cursor
	Limit  int
}

// CompetitionUpdate is a partial update; nil fields are left untouched.
type CompetitionUpdate struct {
	Title              *string
	Organizer          *string
	Location           *string
	CompetitionType    *string
	Description        *string
	PositionsAvailable *int64
}

// CompetitionRepository persists competition announcements.
type CompetitionRepository interface {
	ListPage(ctx context.Context, q CompetitionQuery) ([]*entity.Competition, error)
	ListAll(ctx context.Context) ([]*entity.Competition, error)
	Get(ctx context.Context, id string) (*entity.Competition, error)
	GetMany(ctx context.Context, ids []string) ([]*entity.Competition, error)
	Create(ctx context.Context, c *entity.Competition) (string, error)
	Update(ctx context.Context, id string, upd CompetitionUpdate) error
	Delete(ctx context.Context, id string) error
}
