package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/Aywac/tawzifak1122/internal/domain/entity"
	"github.com/Aywac/tawzifak1122/internal/repository"
)

// ArticleRepo implements repository.ArticleRepository on the articles
// collection. Articles do not participate in the stats counters, so the
// mutations are plain writes.
type ArticleRepo struct {
	c *Client
}

// NewArticleRepo returns the Firestore-backed article repository.
func NewArticleRepo(c *Client) repository.ArticleRepository {
	return &ArticleRepo{c: c}
}

func (r *ArticleRepo) ListPage(ctx context.Context, q repository.ArticleQuery) ([]*entity.Article, error) {
	fq := r.c.articles().Query.
		OrderBy("createdAt", firestore.Desc).
		OrderBy(firestore.DocumentID, firestore.Asc)
	if q.Cursor != nil {
		fq = startAfter(fq, q.Cursor.CreatedAt, q.Cursor.ID)
	}
	if q.Limit > 0 {
		fq = fq.Limit(q.Limit)
	}

	items, err := collectDocs(fq.Documents(ctx), docToArticle)
	if err != nil {
		return nil, fmt.Errorf("ListPage: %w", err)
	}
	return items, nil
}

func (r *ArticleRepo) Get(ctx context.Context, id string) (*entity.Article, error) {
	doc, err := r.c.articles().Doc(id).Get(ctx)
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return docToArticle(doc)
}

func (r *ArticleRepo) GetBySlug(ctx context.Context, slug string) (*entity.Article, error) {
	items, err := collectDocs(
		r.c.articles().Query.Where("slug", "==", slug).Limit(1).Documents(ctx),
		docToArticle,
	)
	if err != nil {
		return nil, fmt.Errorf("GetBySlug: %w", err)
	}
	if len(items) == 0 {
		return nil, nil
	}
	return items[0], nil
}

func (r *ArticleRepo) Create(ctx context.Context, a *entity.Article) (string, error) {
	data := stripEmpty(map[string]any{
		"title":     a.Title,
		"slug":      a.Slug,
		"body":      a.Body,
		"date":      a.Date,
		"createdAt": firestore.ServerTimestamp,
	})

	docRef, _, err := r.c.articles().Add(ctx, data)
	if err != nil {
		return "", fmt.Errorf("Create: %w", err)
	}
	return docRef.ID, nil
}

func (r *ArticleRepo) Update(ctx context.Context, id string, upd repository.ArticleUpdate) error {
	updates := []firestore.Update{
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	}
	appendString(&updates, "title", upd.Title)
	appendString(&updates, "slug", upd.Slug)
	appendString(&updates, "body", upd.Body)

	_, err := r.c.articles().Doc(id).Update(ctx, updates)
	if isNotFound(err) {
		return entity.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	return nil
}

func (r *ArticleRepo) Delete(ctx context.Context, id string) error {
	_, err := r.c.articles().Doc(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	return nil
}

func docToArticle(doc *firestore.DocumentSnapshot) (*entity.Article, error) {
	var a entity.Article
	if err := doc.DataTo(&a); err != nil {
		return nil, fmt.Errorf("unmarshal article %s: %w", doc.Ref.ID, err)
	}
	a.ID = doc.Ref.ID
	decorateArticle(&a, time.Now())
	return &a, nil
}
