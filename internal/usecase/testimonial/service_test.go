package testimonial_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aywac/tawzifak1122/internal/common/pagination"
	"github.com/Aywac/tawzifak1122/internal/domain/entity"
	"github.com/Aywac/tawzifak1122/internal/repository"
	testiUC "github.com/Aywac/tawzifak1122/internal/usecase/testimonial"
)

// Minimal in-memory TestimonialRepository.
type stubRepo struct {
	data   map[string]*entity.Testimonial
	nextID int
	err    error
}

func newStub() *stubRepo {
	return &stubRepo{data: map[string]*entity.Testimonial{}, nextID: 1}
}

func (s *stubRepo) ListPage(_ context.Context, q repository.TestimonialQuery) ([]*entity.Testimonial, error) {
	if s.err != nil {
		return nil, s.err
	}
	var all []*entity.Testimonial
	for _, v := range s.data {
		all = append(all, v)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	var out []*entity.Testimonial
	for _, v := range all {
		if q.Cursor != nil && !v.CreatedAt.Before(q.Cursor.CreatedAt) {
			continue
		}
		out = append(out, v)
		if q.Limit > 0 && len(out) == q.Limit {
			break
		}
	}
	return out, nil
}

func (s *stubRepo) Create(_ context.Context, tm *entity.Testimonial) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	id := fmt.Sprintf("rev-%03d", s.nextID)
	s.nextID++
	cp := *tm
	cp.ID = id
	cp.CreatedAt = time.Now()
	s.data[id] = &cp
	return id, nil
}

func (s *stubRepo) Delete(_ context.Context, id string) error {
	if s.err != nil {
		return s.err
	}
	if _, ok := s.data[id]; !ok {
		return entity.ErrNotFound
	}
	delete(s.data, id)
	return nil
}

func seed(repo *stubRepo, n int) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("rev-%03d", i)
		repo.data[id] = &entity.Testimonial{
			ID:        id,
			Author:    fmt.Sprintf("مستخدم %d", i),
			Content:   "منصة ممتازة",
			Rating:    5,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
	}
	repo.nextID = n
}

func newService(repo repository.TestimonialRepository) *testiUC.Service {
	return &testiUC.Service{Repo: repo, Limits: pagination.DefaultConfig()}
}

func TestListUsesSmallPageSize(t *testing.T) {
	repo := newStub()
	seed(repo, 10)
	svc := newService(repo)

	page, err := svc.List(context.Background(), testiUC.ListOptions{})
	require.NoError(t, err)
	assert.Len(t, page.Data, 8)
	require.NotNil(t, page.NextCursor)

	page, err = svc.List(context.Background(), testiUC.ListOptions{Cursor: *page.NextCursor})
	require.NoError(t, err)
	assert.Len(t, page.Data, 2)
	assert.Nil(t, page.NextCursor)
}

func TestListSwallowsReadError(t *testing.T) {
	repo := newStub()
	repo.err = errors.New("store down")
	svc := newService(repo)

	page, err := svc.List(context.Background(), testiUC.ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, page.Data)
}

func TestCreateValidatesRating(t *testing.T) {
	svc := newService(newStub())

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.Create(context.Background(), testiUC.CreateInput{
			Author:  "سارة",
			Content: "جيد",
			Rating:  rating,
		})
		var ve *entity.ValidationError
		require.ErrorAs(t, err, &ve, "rating %d must be rejected", rating)
		assert.Equal(t, "rating", ve.Field)
	}
}

func TestCreateThenList(t *testing.T) {
	repo := newStub()
	svc := newService(repo)

	id, err := svc.Create(context.Background(), testiUC.CreateInput{
		Author:  "سارة",
		Content: "وجدت عملا خلال أسبوع",
		Rating:  5,
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	page, err := svc.List(context.Background(), testiUC.ListOptions{})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "سارة", page.Data[0].Author)
}

func TestDeleteNotFound(t *testing.T) {
	svc := newService(newStub())

	err := svc.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, testiUC.ErrTestimonialNotFound)
}
