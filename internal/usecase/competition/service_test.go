package competition_test

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
	compUC "github.com/Aywac/tawzifak1122/internal/usecase/competition"
)

// Minimal in-memory CompetitionRepository.
type stubRepo struct {
	data   map[string]*entity.Competition
	nextID int
	err    error
}

func newStub() *stubRepo {
	return &stubRepo{data: map[string]*entity.Competition{}, nextID: 1}
}

func (s *stubRepo) sorted() []*entity.Competition {
	var out []*entity.Competition
	for _, c := range s.data {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *stubRepo) ListPage(_ context.Context, q repository.CompetitionQuery) ([]*entity.Competition, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []*entity.Competition
	for _, c := range s.sorted() {
		if q.Cursor != nil {
			after := c.CreatedAt.Before(q.Cursor.CreatedAt) ||
				(c.CreatedAt.Equal(q.Cursor.CreatedAt) && c.ID > q.Cursor.ID)
			if !after {
				continue
			}
		}
		out = append(out, c)
		if q.Limit > 0 && len(out) == q.Limit {
			break
		}
	}
	return out, nil
}

func (s *stubRepo) ListAll(_ context.Context) ([]*entity.Competition, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.sorted(), nil
}

func (s *stubRepo) Get(_ context.Context, id string) (*entity.Competition, error) {
	return s.data[id], s.err
}

func (s *stubRepo) GetMany(_ context.Context, ids []string) ([]*entity.Competition, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []*entity.Competition
	for _, id := range ids {
		if c, ok := s.data[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *stubRepo) Create(_ context.Context, c *entity.Competition) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	id := fmt.Sprintf("comp-%03d", s.nextID)
	s.nextID++
	cp := *c
	cp.ID = id
	cp.CreatedAt = time.Now()
	s.data[id] = &cp
	return id, nil
}

func (s *stubRepo) Update(_ context.Context, id string, upd repository.CompetitionUpdate) error {
	if s.err != nil {
		return s.err
	}
	c, ok := s.data[id]
	if !ok {
		return entity.ErrNotFound
	}
	if upd.Title != nil {
		c.Title = *upd.Title
	}
	if upd.Location != nil {
		c.Location = *upd.Location
	}
	return nil
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
	base := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("comp-%03d", i)
		repo.data[id] = &entity.Competition{
			ID:        id,
			Title:     fmt.Sprintf("مباراة توظيف %d", i),
			Organizer: "وزارة الداخلية",
			Location:  "الرباط",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
	}
	repo.nextID = n
}

func newService(repo repository.CompetitionRepository) *compUC.Service {
	return &compUC.Service{Repo: repo, Limits: pagination.DefaultConfig()}
}

func TestListPaginates(t *testing.T) {
	repo := newStub()
	seed(repo, 20)
	svc := newService(repo)

	page, err := svc.List(context.Background(), compUC.ListOptions{})
	require.NoError(t, err)
	assert.Len(t, page.Data, 16)
	require.NotNil(t, page.NextCursor)

	page, err = svc.List(context.Background(), compUC.ListOptions{Cursor: *page.NextCursor})
	require.NoError(t, err)
	assert.Len(t, page.Data, 4)
	assert.Nil(t, page.NextCursor)
}

func TestListSwallowsReadError(t *testing.T) {
	repo := newStub()
	repo.err = errors.New("store down")
	svc := newService(repo)

	page, err := svc.List(context.Background(), compUC.ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, page.Data)
}

func TestSearchByQuery(t *testing.T) {
	repo := newStub()
	seed(repo, 10)
	repo.data["comp-004"].Title = "مباراة ممرضين"
	svc := newService(repo)

	page, err := svc.List(context.Background(), compUC.ListOptions{SearchQuery: "ممرضين"})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "comp-004", page.Data[0].ID)
	assert.Nil(t, page.NextCursor)
}

func TestLocationFilterIsFuzzy(t *testing.T) {
	repo := newStub()
	seed(repo, 6)
	repo.data["comp-002"].Location = "طنجة"
	svc := newService(repo)

	// Location alone routes through the fallback search.
	page, err := svc.List(context.Background(), compUC.ListOptions{Location: "طنجة"})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "comp-002", page.Data[0].ID)
	require.NotNil(t, page.TotalCount)
	assert.Equal(t, 1, *page.TotalCount)
}

func TestGetNotFound(t *testing.T) {
	svc := newService(newStub())

	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, compUC.ErrCompetitionNotFound)
}

func TestCreateThenFetch(t *testing.T) {
	repo := newStub()
	svc := newService(repo)

	positions := int64(120)
	id, err := svc.Create(context.Background(), compUC.CreateInput{
		Title:              "مباراة توظيف تقنيين",
		Organizer:          "الصحة العامة",
		Location:           "الرباط",
		PositionsAvailable: &positions,
	})
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "مباراة توظيف تقنيين", got.Title)
	require.NotNil(t, got.PositionsAvailable)
	assert.Equal(t, int64(120), *got.PositionsAvailable)
}

func TestCreateValidation(t *testing.T) {
	svc := newService(newStub())

	_, err := svc.Create(context.Background(), compUC.CreateInput{Organizer: "org"})
	var ve *entity.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "title", ve.Field)

	_, err = svc.Create(context.Background(), compUC.CreateInput{Title: "مباراة", Organizer: "جهة مجهولة"})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "organizer", ve.Field)
}

func TestUpdateNotFound(t *testing.T) {
	svc := newService(newStub())

	title := "t"
	err := svc.Update(context.Background(), compUC.UpdateInput{ID: "missing", Title: &title})
	assert.ErrorIs(t, err, compUC.ErrCompetitionNotFound)
}

func TestDeleteNotFound(t *testing.T) {
	svc := newService(newStub())

	err := svc.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, compUC.ErrCompetitionNotFound)
}
