package stats_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Aywac/tawzifak1122/internal/cache"
	"github.com/Aywac/tawzifak1122/internal/domain/entity"
	statsUC "github.com/Aywac/tawzifak1122/internal/usecase/stats"
)

type stubRepo struct {
	stats *entity.GlobalStats
	err   error
	calls int
}

func (s *stubRepo) Get(_ context.Context) (*entity.GlobalStats, error) {
	s.calls++
	return s.stats, s.err
}

func TestGet(t *testing.T) {
	repo := &stubRepo{stats: &entity.GlobalStats{Jobs: 12, Seekers: 7, Users: 100}}
	svc := &statsUC.Service{Repo: repo}

	st := svc.Get(context.Background())
	assert.Equal(t, int64(12), st.Jobs)
	assert.Equal(t, int64(7), st.Seekers)
	assert.Equal(t, int64(100), st.Users)
}

func TestGetSwallowsReadError(t *testing.T) {
	repo := &stubRepo{err: errors.New("store down")}
	svc := &statsUC.Service{Repo: repo}

	st := svc.Get(context.Background())
	assert.Equal(t, &entity.GlobalStats{}, st)
}

func TestGetIsCached(t *testing.T) {
	repo := &stubRepo{stats: &entity.GlobalStats{Jobs: 1}}
	c := cache.New()
	defer c.Stop()
	svc := &statsUC.Service{Repo: repo, Cache: c}

	svc.Get(context.Background())
	svc.Get(context.Background())
	assert.Equal(t, 1, repo.calls)

	c.Invalidate("stats")
	svc.Get(context.Background())
	assert.Equal(t, 2, repo.calls)
}
