package listing_test

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
	apphttp "github.com/Aywac/tawzifak1122/internal/handler/http"
	listinghttp "github.com/Aywac/tawzifak1122/internal/handler/http/listing"
	"github.com/Aywac/tawzifak1122/internal/observability/logging"
	listingUC "github.com/Aywac/tawzifak1122/internal/usecase/listing"
	"github.com/Aywac/tawzifak1122/internal/repository"
)

const testSecret = "handler-test-secret"

type stubRepo struct {
	listings map[string]*entity.Listing
	nextID   int
	failAll  bool
}

func newStubRepo() *stubRepo {
	return &stubRepo{listings: make(map[string]*entity.Listing)}
}

func (r *stubRepo) sorted(postType entity.PostType) []*entity.Listing {
	out := make([]*entity.Listing, 0, len(r.listings))
	for _, l := range r.listings {
		if postType == "" || l.PostType == postType {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *stubRepo) ListPage(_ context.Context, q repository.ListingQuery) ([]*entity.Listing, error) {
	if r.failAll {
		return nil, fmt.Errorf("backend unavailable")
	}
	items := r.sorted(q.PostType)
	if q.Cursor != nil {
		for i, l := range items {
			if l.CreatedAt.Before(q.Cursor.CreatedAt) ||
				(l.CreatedAt.Equal(q.Cursor.CreatedAt) && l.ID > q.Cursor.ID) {
				items = items[i:]
				break
			}
		}
	}
	if len(items) > q.Limit {
		items = items[:q.Limit]
	}
	return items, nil
}

func (r *stubRepo) ListAll(_ context.Context, postType entity.PostType) ([]*entity.Listing, error) {
	if r.failAll {
		return nil, fmt.Errorf("backend unavailable")
	}
	return r.sorted(postType), nil
}

func (r *stubRepo) ListByOwner(_ context.Context, ownerID string) ([]*entity.Listing, error) {
	var out []*entity.Listing
	for _, l := range r.sorted("") {
		if l.OwnerID == ownerID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *stubRepo) Get(_ context.Context, id string) (*entity.Listing, error) {
	return r.listings[id], nil
}

func (r *stubRepo) GetMany(_ context.Context, ids []string) ([]*entity.Listing, error) {
	var out []*entity.Listing
	for _, id := range ids {
		if l, ok := r.listings[id]; ok {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *stubRepo) Create(_ context.Context, l *entity.Listing) (string, error) {
	r.nextID++
	id := fmt.Sprintf("ad-%03d", r.nextID)
	cp := *l
	cp.ID = id
	cp.CreatedAt = time.Now()
	r.listings[id] = &cp
	return id, nil
}

func (r *stubRepo) Update(_ context.Context, id string, upd repository.ListingUpdate) error {
	l, ok := r.listings[id]
	if !ok {
		return entity.ErrNotFound
	}
	if upd.Title != nil {
		l.Title = *upd.Title
	}
	if upd.Description != nil {
		l.Description = *upd.Description
	}
	return nil
}

func (r *stubRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.listings[id]; !ok {
		return entity.ErrNotFound
	}
	delete(r.listings, id)
	return nil
}

func (r *stubRepo) seed(n int, postType entity.PostType, owner string) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 1; i <= n; i++ {
		id := fmt.Sprintf("seed-%03d", i)
		r.listings[id] = &entity.Listing{
			ID:          id,
			Title:       fmt.Sprintf("وظيفة %d", i),
			Description: "مطلوب عامل",
			CategoryID:  "construction",
			Country:     "المغرب",
			City:        "الدار البيضاء",
			PostType:    postType,
			OwnerID:     owner,
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}
	}
	r.nextID = n
}

func newMux(t *testing.T, repo *stubRepo, limiter *apphttp.RateLimiter) *http.ServeMux {
	t.Helper()
	t.Setenv("JWT_SECRET", testSecret)
	svc := &listingUC.Service{
		Repo:   repo,
		Limits: pagination.DefaultConfig(),
		Logger: logging.NewLogger(),
	}
	mux := http.NewServeMux()
	listinghttp.Register(mux, svc, limiter, logging.NewLogger())
	return mux
}

func mintToken(t *testing.T, sub string, admin bool) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   sub,
		"admin": admin,
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := tok.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func doJSON(t *testing.T, mux *http.ServeMux, method, target, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decodePage(t *testing.T, rec *httptest.ResponseRecorder) pagination.Page[*entity.Listing] {
	t.Helper()
	var page pagination.Page[*entity.Listing]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	return page
}

func TestListJobs(t *testing.T) {
	repo := newStubRepo()
	repo.seed(3, entity.PostTypeSeekingWorker, "uid-1")
	mux := newMux(t, repo, nil)

	rec := doJSON(t, mux, http.MethodGet, "/jobs", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	page := decodePage(t, rec)
	require.Len(t, page.Data, 3)
	assert.Equal(t, "seed-003", page.Data[0].ID)
	assert.Nil(t, page.NextCursor)
}

func TestListWorkersExcludesJobOffers(t *testing.T) {
	repo := newStubRepo()
	repo.seed(2, entity.PostTypeSeekingWorker, "uid-1")
	mux := newMux(t, repo, nil)

	rec := doJSON(t, mux, http.MethodGet, "/workers", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodePage(t, rec).Data)
}

func TestListInvalidCursor(t *testing.T) {
	mux := newMux(t, newStubRepo(), nil)
	rec := doJSON(t, mux, http.MethodGet, "/jobs?cursor=%21%21not-a-token", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListSwallowsBackendFailure(t *testing.T) {
	repo := newStubRepo()
	repo.failAll = true
	mux := newMux(t, repo, nil)

	rec := doJSON(t, mux, http.MethodGet, "/jobs", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	page := decodePage(t, rec)
	assert.Empty(t, page.Data)
}

func TestGetListing(t *testing.T) {
	repo := newStubRepo()
	repo.seed(1, entity.PostTypeSeekingWorker, "uid-1")
	mux := newMux(t, repo, nil)

	rec := doJSON(t, mux, http.MethodGet, "/jobs/seed-001", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var l entity.Listing
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &l))
	assert.Equal(t, "وظيفة 1", l.Title)
	assert.NotEmpty(t, l.PostedAt)
}

func TestGetListingNotFound(t *testing.T) {
	mux := newMux(t, newStubRepo(), nil)
	rec := doJSON(t, mux, http.MethodGet, "/jobs/missing", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateRequiresAuth(t *testing.T) {
	mux := newMux(t, newStubRepo(), nil)
	rec := doJSON(t, mux, http.MethodPost, "/jobs", "", `{"title":"x"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateSetsOwnerFromToken(t *testing.T) {
	repo := newStubRepo()
	mux := newMux(t, repo, nil)

	body := `{
		"title": "مطلوب كهربائي",
		"description": "خبرة سنتين على الأقل",
		"categoryId": "construction",
		"country": "المغرب",
		"city": "طنجة",
		"ownerName": "Imposter"
	}`
	rec := doJSON(t, mux, http.MethodPost, "/jobs", mintToken(t, "uid-42", false), body)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	created := repo.listings[resp["id"]]
	require.NotNil(t, created)
	assert.Equal(t, "uid-42", created.OwnerID)
	assert.Equal(t, entity.PostTypeSeekingWorker, created.PostType)
}

func TestCreateValidation(t *testing.T) {
	mux := newMux(t, newStubRepo(), nil)
	rec := doJSON(t, mux, http.MethodPost, "/jobs", mintToken(t, "uid-1", false), `{"title":"no description"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateForbiddenForNonOwner(t *testing.T) {
	repo := newStubRepo()
	repo.seed(1, entity.PostTypeSeekingWorker, "uid-1")
	mux := newMux(t, repo, nil)

	rec := doJSON(t, mux, http.MethodPut, "/jobs/seed-001", mintToken(t, "uid-2", false), `{"title":"hijacked"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUpdateByOwner(t *testing.T) {
	repo := newStubRepo()
	repo.seed(1, entity.PostTypeSeekingWorker, "uid-1")
	mux := newMux(t, repo, nil)

	rec := doJSON(t, mux, http.MethodPut, "/jobs/seed-001", mintToken(t, "uid-1", false), `{"title":"عنوان جديد"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "عنوان جديد", repo.listings["seed-001"].Title)
}

func TestDeleteByAdmin(t *testing.T) {
	repo := newStubRepo()
	repo.seed(1, entity.PostTypeSeekingWorker, "uid-1")
	mux := newMux(t, repo, nil)

	rec := doJSON(t, mux, http.MethodDelete, "/jobs/seed-001", mintToken(t, "admin-1", true), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, repo.listings)
}

func TestSearchIsRateLimited(t *testing.T) {
	repo := newStubRepo()
	repo.seed(1, entity.PostTypeSeekingWorker, "uid-1")
	mux := newMux(t, repo, apphttp.NewRateLimiter(1, 1))

	rec := doJSON(t, mux, http.MethodGet, "/jobs?q=%D9%83%D9%87%D8%B1%D8%A8%D8%A7%D8%A6%D9%8A", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, mux, http.MethodGet, "/jobs?q=%D9%83%D9%87%D8%B1%D8%A8%D8%A7%D8%A6%D9%8A", "", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	// Plain list reads stay unmetered.
	rec = doJSON(t, mux, http.MethodGet, "/jobs", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
