package firestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/Aywac/tawzifak1122/internal/domain/entity"
	"github.com/Aywac/tawzifak1122/internal/repository"
)

// ImmigrationRepo implements repository.ImmigrationRepository on the
// immigration collection.
type ImmigrationRepo struct {
	c *Client
}

// NewImmigrationRepo returns the Firestore-backed immigration repository.
func NewImmigrationRepo(c *Client) repository.ImmigrationRepository {
	return &ImmigrationRepo{c: c}
}

func (r *ImmigrationRepo) ListPage(ctx context.Context, q repository.ImmigrationQuery) ([]*entity.ImmigrationPost, error) {
	fq := r.c.immigration().Query.
		OrderBy("createdAt", firestore.Desc).
		OrderBy(firestore.DocumentID, firestore.Asc)
	if q.Cursor != nil {
		fq = startAfter(fq, q.Cursor.CreatedAt, q.Cursor.ID)
	}
	if q.Limit > 0 {
		fq = fq.Limit(q.Limit)
	}

	items, err := collectDocs(fq.Documents(ctx), docToImmigration)
	if err != nil {
		return nil, fmt.Errorf("ListPage: %w", err)
	}
	return items, nil
}

func (r *ImmigrationRepo) ListAll(ctx context.Context) ([]*entity.ImmigrationPost, error) {
	q := r.c.immigration().Query.OrderBy("createdAt", firestore.Desc)

	items, err := collectDocs(q.Documents(ctx), docToImmigration)
	if err != nil {
		return nil, fmt.Errorf("ListAll: %w", err)
	}
	return items, nil
}

func (r *ImmigrationRepo) Get(ctx context.Context, id string) (*entity.ImmigrationPost, error) {
	doc, err := r.c.immigration().Doc(id).Get(ctx)
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return docToImmigration(doc)
}

// GetBySlug resolves a post by its unique slug. Slugs are unique by
// construction, so the first match wins.
func (r *ImmigrationRepo) GetBySlug(ctx context.Context, slug string) (*entity.ImmigrationPost, error) {
	items, err := collectDocs(
		r.c.immigration().Query.Where("slug", "==", slug).Limit(1).Documents(ctx),
		docToImmigration,
	)
	if err != nil {
		return nil, fmt.Errorf("GetBySlug: %w", err)
	}
	if len(items) == 0 {
		return nil, nil
	}
	return items[0], nil
}

func (r *ImmigrationRepo) GetMany(ctx context.Context, ids []string) ([]*entity.ImmigrationPost, error) {
	refs := make([]*firestore.DocumentRef, len(ids))
	for i, id := range ids {
		refs[i] = r.c.immigration().Doc(id)
	}
	items, err := getAllExisting(ctx, r.c.fs, refs, docToImmigration)
	if err != nil {
		return nil, fmt.Errorf("GetMany: %w", err)
	}
	return items, nil
}

func (r *ImmigrationRepo) Create(ctx context.Context, p *entity.ImmigrationPost) (string, error) {
	docRef := r.c.immigration().NewDoc()
	data := stripEmpty(map[string]any{
		"title":          p.Title,
		"slug":           p.Slug,
		"targetCountry":  p.TargetCountry,
		"city":           p.City,
		"programType":    p.ProgramType,
		"targetAudience": p.TargetAudience,
		"description":    p.Description,
		"createdAt":      firestore.ServerTimestamp,
	})

	err := r.c.fs.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		if err := tx.Create(docRef, data); err != nil {
			return err
		}
		return tx.Update(r.c.stats(), []firestore.Update{
			{Path: entity.CounterImmigration, Value: firestore.Increment(1)},
		})
	})
	if err != nil {
		return "", fmt.Errorf("Create: %w", err)
	}
	return docRef.ID, nil
}

func (r *ImmigrationRepo) Update(ctx context.Context, id string, upd repository.ImmigrationUpdate) error {
	updates := []firestore.Update{
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	}
	appendString(&updates, "title", upd.Title)
	appendString(&updates, "slug", upd.Slug)
	appendString(&updates, "targetCountry", upd.TargetCountry)
	appendString(&updates, "city", upd.City)
	appendString(&updates, "programType", upd.ProgramType)
	appendString(&updates, "targetAudience", upd.TargetAudience)
	appendString(&updates, "description", upd.Description)

	_, err := r.c.immigration().Doc(id).Update(ctx, updates)
	if isNotFound(err) {
		return entity.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	return nil
}

// Delete removes the post and decrements the immigration counter in one
// transaction. A missing document aborts the transaction.
func (r *ImmigrationRepo) Delete(ctx context.Context, id string) error {
	docRef := r.c.immigration().Doc(id)

	err := r.c.fs.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		_, err := tx.Get(docRef)
		if isNotFound(err) {
			return entity.ErrNotFound
		}
		if err != nil {
			return err
		}

		if err := tx.Delete(docRef); err != nil {
			return err
		}
		return tx.Update(r.c.stats(), []firestore.Update{
			{Path: entity.CounterImmigration, Value: firestore.Increment(-1)},
		})
	})
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return entity.ErrNotFound
		}
		return fmt.Errorf("Delete: %w", err)
	}
	return nil
}

func docToImmigration(doc *firestore.DocumentSnapshot) (*entity.ImmigrationPost, error) {
	var p entity.ImmigrationPost
	if err := doc.DataTo(&p); err != nil {
		return nil, fmt.Errorf("unmarshal immigration post %s: %w", doc.Ref.ID, err)
	}
	p.ID = doc.Ref.ID
	decorateImmigration(&p, time.Now())
	return &p, nil
}
