// Package testimonial provides use cases for user reviews: the paginated
// public listing, the home carousel preview, public submission and
// admin-only removal.
package testimonial

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Aywac/tawzifak1122/internal/cache"
	"github.com/Aywac/tawzifak1122/internal/common/pagination"
	"github.com/Aywac/tawzifak1122/internal/domain/entity"
	"github.com/Aywac/tawzifak1122/internal/repository"
)

// Sentinel errors for testimonial use case operations.
var (
	// ErrTestimonialNotFound indicates that the requested testimonial was
	// not found.
	ErrTestimonialNotFound = errors.New("testimonial not found")

	// ErrInvalidTestimonialID indicates that the provided testimonial ID
	// is empty.
	ErrInvalidTestimonialID = errors.New("invalid testimonial ID")
)

// ListOptions are the read options of a testimonial list request.
type ListOptions struct {
	Limit  int
	Count  int
	Cursor string
}

// CreateInput represents the input parameters for submitting a
// testimonial. Rating is a 1-5 star value.
type CreateInput struct {
	Author  string
	Content string
	Rating  int
}

// Service provides the testimonial use cases.
type Service struct {
	Repo   repository.TestimonialRepository
	Cache  *cache.Tagged
	Limits pagination.Config
	Logger *slog.Logger
}

// List runs one keyset-paginated testimonial read. Read failures are
// logged and swallowed into an empty page.
func (s *Service) List(ctx context.Context, opts ListOptions) (pagination.Page[*entity.Testimonial], error) {
	preview := opts.Count > 0
	limit := s.Limits.ClampLimit(opts.Limit, s.Limits.ArticleLimit)
	if preview {
		limit = s.Limits.ClampLimit(opts.Count, s.Limits.ArticleLimit)
	}

	var cursor *pagination.Cursor
	if !preview && opts.Cursor != "" {
		c, err := pagination.Decode(opts.Cursor)
		if err != nil {
			return pagination.EmptyPage[*entity.Testimonial](), err
		}
		cursor = &c
	}

	cacheable := opts.Cursor == "" || preview
	key := fmt.Sprintf("testimonials:list:%d:%t", limit, preview)
	if cacheable && s.Cache != nil {
		if v, ok := s.Cache.Get(key); ok {
			if page, ok := v.(pagination.Page[*entity.Testimonial]); ok {
				return page, nil
			}
		}
	}

	items, err := s.Repo.ListPage(ctx, repository.TestimonialQuery{Cursor: cursor, Limit: limit})
	if err != nil {
		s.logger().Error("list testimonials failed", slog.Any("error", err))
		return pagination.EmptyPage[*entity.Testimonial](), nil
	}

	var page pagination.Page[*entity.Testimonial]
	if preview || len(items) < limit || len(items) == 0 {
		page = pagination.NewPage(items, "")
	} else {
		last := items[len(items)-1]
		page = pagination.NewPage(items, pagination.Cursor{ID: last.ID, CreatedAt: last.CreatedAt}.Encode())
	}

	if cacheable && s.Cache != nil {
		s.Cache.Put(key, page, []string{"testimonials-list"}, 0)
	}
	return page, nil
}

// Create submits a new testimonial and returns its ID. Submission is
// public, so the input validation is strict.
func (s *Service) Create(ctx context.Context, in CreateInput) (string, error) {
	if in.Author == "" {
		return "", &entity.ValidationError{Field: "author", Message: "is required"}
	}
	if in.Content == "" {
		return "", &entity.ValidationError{Field: "content", Message: "is required"}
	}
	if in.Rating < 1 || in.Rating > 5 {
		return "", &entity.ValidationError{Field: "rating", Message: "must be between 1 and 5"}
	}

	id, err := s.Repo.Create(ctx, &entity.Testimonial{
		Author:  in.Author,
		Content: in.Content,
		Rating:  in.Rating,
	})
	if err != nil {
		return "", fmt.Errorf("create testimonial: %w", err)
	}

	s.invalidate("testimonials-list")
	return id, nil
}

// Delete removes a testimonial.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidTestimonialID
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return ErrTestimonialNotFound
		}
		return fmt.Errorf("delete testimonial: %w", err)
	}

	s.invalidate("testimonials-list")
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
