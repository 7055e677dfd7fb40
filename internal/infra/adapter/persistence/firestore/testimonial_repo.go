package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/Aywac/tawzifak1122/internal/domain/entity"
	"github.com/Aywac/tawzifak1122/internal/repository"
)

// TestimonialRepo implements repository.TestimonialRepository on the
// reviews collection.
type TestimonialRepo struct {
	c *Client
}

// NewTestimonialRepo returns the Firestore-backed testimonial repository.
func NewTestimonialRepo(c *Client) repository.TestimonialRepository {
	return &TestimonialRepo{c: c}
}

func (r *TestimonialRepo) ListPage(ctx context.Context, q repository.TestimonialQuery) ([]*entity.Testimonial, error) {
	fq := r.c.reviews().Query.
		OrderBy("createdAt", firestore.Desc).
		OrderBy(firestore.DocumentID, firestore.Asc)
	if q.Cursor != nil {
		fq = startAfter(fq, q.Cursor.CreatedAt, q.Cursor.ID)
	}
	if q.Limit > 0 {
		fq = fq.Limit(q.Limit)
	}

	items, err := collectDocs(fq.Documents(ctx), docToTestimonial)
	if err != nil {
		return nil, fmt.Errorf("ListPage: %w", err)
	}
	return items, nil
}

func (r *TestimonialRepo) Create(ctx context.Context, t *entity.Testimonial) (string, error) {
	data := stripEmpty(map[string]any{
		"author":    t.Author,
		"content":   t.Content,
		"rating":    int64(t.Rating),
		"createdAt": firestore.ServerTimestamp,
	})

	docRef, _, err := r.c.reviews().Add(ctx, data)
	if err != nil {
		return "", fmt.Errorf("Create: %w", err)
	}
	return docRef.ID, nil
}

func (r *TestimonialRepo) Delete(ctx context.Context, id string) error {
	_, err := r.c.reviews().Doc(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	return nil
}

func docToTestimonial(doc *firestore.DocumentSnapshot) (*entity.Testimonial, error) {
	var t entity.Testimonial
	if err := doc.DataTo(&t); err != nil {
		return nil, fmt.Errorf("unmarshal testimonial %s: %w", doc.Ref.ID, err)
	}
	t.ID = doc.Ref.ID
	decorateTestimonial(&t, time.Now())
	return &t, nil
}
