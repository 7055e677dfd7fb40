package repository

import (
	"context"

	"github.com/Aywac/tawzifak1122/internal/common/pagination"
	"github.com/Aywac/tawzifak1122/internal/domain/entity"
)

// TestimonialQuery describes one page read over the reviews collection.
type TestimonialQuery struct {
	Cursor *pagination.Cursor
	Limit  int
}

// TestimonialRepository persists user testimonials.
type TestimonialRepository interface {
	ListPage(ctx context.Context, q TestimonialQuery) ([]*entity.Testimonial, error)
	Create(ctx context.Context, t *entity.Testimonial) (string, error)
	Delete(ctx context.Context, id string) error
}
