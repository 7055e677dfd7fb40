package immigration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aywac/tawzifak1122/internal/common/pagination"
	"github.com/Aywac/tawzifak1122/internal/domain/entity"
	immhttp "github.com/Aywac/tawzifak1122/internal/handler/http/immigration"
	"github.com/Aywac/tawzifak1122/internal/observability/logging"
	"github.com/Aywac/tawzifak1122/internal/repository"
	immUC "github.com/Aywac/tawzifak1122/internal/usecase/immigration"
)

const testSecret = "handler-test-secret"

type stubRepo struct {
	items  map[string]*entity.ImmigrationPost
	nextID int
}

func newStubRepo() *stubRepo {
	return &stubRepo{items: make(map[string]*entity.ImmigrationPost)}
}

func (r *stubRepo) sorted() []*entity.ImmigrationPost {
	out := make([]*entity.ImmigrationPost, 0, len(r.items))
	for _, p := range r.items {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *stubRepo) ListPage(_ context.Context, q repository.ImmigrationQuery) ([]*entity.ImmigrationPost, error) {
	items := r.sorted()
	if len(items) > q.Limit {
		items = items[:q.Limit]
	}
	return items, nil
}

func (r *stubRepo) ListAll(_ context.Context) ([]*entity.ImmigrationPost, error) {
	return r.sorted(), nil
}

func (r *stubRepo) Get(_ context.Context, id string) (*entity.ImmigrationPost, error) {
	return r.items[id], nil
}

func (r *stubRepo) GetBySlug(_ context.Context, slug string) (*entity.ImmigrationPost, error) {
	for _, p := range r.items {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, nil
}

func (r *stubRepo) GetMany(_ context.Context, ids []string) ([]*entity.ImmigrationPost, error) {
	var out []*entity.ImmigrationPost
	for _, id := range ids {
		if p, ok := r.items[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubRepo) Create(_ context.Context, p *entity.ImmigrationPost) (string, error) {
	r.nextID++
	id := fmt.Sprintf("imm-%03d", r.nextID)
	cp := *p
	cp.ID = id
	cp.CreatedAt = time.Now()
	r.items[id] = &cp
	return id, nil
}

func (r *stubRepo) Update(_ context.Context, id string, upd repository.ImmigrationUpdate) error {
	p, ok := r.items[id]
	if !ok {
		return entity.ErrNotFound
	}
	if upd.Title != nil {
		p.Title = *upd.Title
	}
	return nil
}

func (r *stubRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return entity.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func newMux(t *testing.T, repo *stubRepo) *http.ServeMux {
	t.Helper()
	t.Setenv("JWT_SECRET", testSecret)
	svc := &immUC.Service{
		Repo:   repo,
		Limits: pagination.DefaultConfig(),
		Logger: logging.NewLogger(),
	}
	mux := http.NewServeMux()
	immhttp.Register(mux, svc, nil, logging.NewLogger())
	return mux
}

func adminToken(t *testing.T) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "admin-1",
		"admin": true,
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := tok.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func TestGetBySlug(t *testing.T) {
	repo := newStubRepo()
	repo.items["i1"] = &entity.ImmigrationPost{
		ID:            "i1",
		Title:         "الدراسة في كندا",
		Slug:          "study-in-canada-a1b2c3d4",
		TargetCountry: "كندا",
		ProgramType:   "study",
		CreatedAt:     time.Now().Add(-time.Hour),
	}
	mux := newMux(t, repo)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/immigration/slug/study-in-canada-a1b2c3d4", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var p entity.ImmigrationPost
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, "i1", p.ID)
	assert.Equal(t, "GraduationCap", p.IconName)
}

func TestGetBySlugNotFound(t *testing.T) {
	mux := newMux(t, newStubRepo())
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/immigration/slug/ghost", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateGeneratesSlug(t *testing.T) {
	repo := newStubRepo()
	mux := newMux(t, repo)

	body := `{
		"title": "عقود العمل الموسمي في إسبانيا",
		"targetCountry": "إسبانيا",
		"programType": "seasonal",
		"description": "تفاصيل التسجيل"
	}`
	req := httptest.NewRequest(http.MethodPost, "/immigration", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	require.Len(t, repo.items, 1)
	for _, p := range repo.items {
		assert.NotEmpty(t, p.Slug)
	}
}

func TestListPageSize(t *testing.T) {
	repo := newStubRepo()
	for i := 0; i < 20; i++ {
		id := fmt.Sprintf("i%02d", i)
		repo.items[id] = &entity.ImmigrationPost{
			ID:        id,
			Title:     "فرصة هجرة",
			CreatedAt: time.Now().Add(-time.Duration(i) * time.Minute),
		}
	}
	mux := newMux(t, repo)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/immigration", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var page pagination.Page[*entity.ImmigrationPost]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Len(t, page.Data, 16)
}

func TestMutationsRequireAdmin(t *testing.T) {
	mux := newMux(t, newStubRepo())
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/immigration/i1", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
