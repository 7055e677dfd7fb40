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

// ListingRepo implements repository.ListingRepository on the ads
// collection.
type ListingRepo struct {
	c *Client
}

// NewListingRepo returns the Firestore-backed listing repository.
func NewListingRepo(c *Client) repository.ListingRepository {
	return &ListingRepo{c: c}
}

// buildQuery assembles the constraint chain in a stable order: the post
// type discriminator first, then the equality filters, then the
// createdAt-descending sort with a document-ID tie break. The ordering
// must not vary between calls or previously issued cursors become invalid.
func (r *ListingRepo) buildQuery(q repository.ListingQuery) firestore.Query {
	fq := r.c.ads().Query.Where("postType", "==", string(q.PostType))

	f := q.Filters
	if f.Country != "" {
		fq = fq.Where("country", "==", f.Country)
	}
	if f.City != "" {
		fq = fq.Where("city", "==", f.City)
	}
	if f.CategoryID != "" {
		fq = fq.Where("categoryId", "==", f.CategoryID)
	}
	if f.WorkType != "" {
		fq = fq.Where("workType", "==", string(f.WorkType))
	}

	fq = fq.OrderBy("createdAt", firestore.Desc).OrderBy(firestore.DocumentID, firestore.Asc)

	if q.Cursor != nil {
		fq = startAfter(fq, q.Cursor.CreatedAt, q.Cursor.ID)
	}
	if q.Limit > 0 {
		fq = fq.Limit(q.Limit)
	}
	return fq
}

func (r *ListingRepo) ListPage(ctx context.Context, q repository.ListingQuery) ([]*entity.Listing, error) {
	items, err := collectDocs(r.buildQuery(q).Documents(ctx), docToListing)
	if err != nil {
		return nil, fmt.Errorf("ListPage: %w", err)
	}
	return items, nil
}

func (r *ListingRepo) ListAll(ctx context.Context, postType entity.PostType) ([]*entity.Listing, error) {
	q := r.c.ads().Query.
		Where("postType", "==", string(postType)).
		OrderBy("createdAt", firestore.Desc)

	items, err := collectDocs(q.Documents(ctx), docToListing)
	if err != nil {
		return nil, fmt.Errorf("ListAll: %w", err)
	}
	return items, nil
}

func (r *ListingRepo) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Listing, error) {
	q := r.c.ads().Query.
		Where("userId", "==", ownerID).
		OrderBy("createdAt", firestore.Desc)

	items, err := collectDocs(q.Documents(ctx), docToListing)
	if err != nil {
		return nil, fmt.Errorf("ListByOwner: %w", err)
	}
	return items, nil
}

func (r *ListingRepo) Get(ctx context.Context, id string) (*entity.Listing, error) {
	doc, err := r.c.ads().Doc(id).Get(ctx)
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return docToListing(doc)
}

func (r *ListingRepo) GetMany(ctx context.Context, ids []string) ([]*entity.Listing, error) {
	refs := make([]*firestore.DocumentRef, len(ids))
	for i, id := range ids {
		refs[i] = r.c.ads().Doc(id)
	}
	items, err := getAllExisting(ctx, r.c.fs, refs, docToListing)
	if err != nil {
		return nil, fmt.Errorf("GetMany: %w", err)
	}
	return items, nil
}

func (r *ListingRepo) Create(ctx context.Context, l *entity.Listing) (string, error) {
	docRef := r.c.ads().NewDoc()
	data := stripEmpty(map[string]any{
		"title":        l.Title,
		"description":  l.Description,
		"categoryId":   l.CategoryID,
		"categoryName": l.CategoryName,
		"country":      l.Country,
		"city":         l.City,
		"workType":     string(l.WorkType),
		"companyName":  l.CompanyName,
		"postType":     string(l.PostType),
		"userId":       l.OwnerID,
		"ownerName":    l.OwnerName,
		"likes":        int64(0),
		"createdAt":    firestore.ServerTimestamp,
	})
	// An absent photo is persisted as an explicit null so profile sync can
	// distinguish "cleared" from "never set".
	if l.OwnerPhotoURL != "" {
		data["ownerPhotoURL"] = l.OwnerPhotoURL
	} else {
		data["ownerPhotoURL"] = nil
	}

	err := r.c.fs.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		if err := tx.Create(docRef, data); err != nil {
			return err
		}
		return tx.Update(r.c.stats(), []firestore.Update{
			{Path: l.CounterField(), Value: firestore.Increment(1)},
		})
	})
	if err != nil {
		return "", fmt.Errorf("Create: %w", err)
	}
	return docRef.ID, nil
}

func (r *ListingRepo) Update(ctx context.Context, id string, upd repository.ListingUpdate) error {
	updates := []firestore.Update{
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	}
	appendString(&updates, "title", upd.Title)
	appendString(&updates, "description", upd.Description)
	appendString(&updates, "categoryId", upd.CategoryID)
	appendString(&updates, "categoryName", upd.CategoryName)
	appendString(&updates, "country", upd.Country)
	appendString(&updates, "city", upd.City)
	appendString(&updates, "companyName", upd.CompanyName)
	appendString(&updates, "ownerName", upd.OwnerName)
	if upd.WorkType != nil {
		updates = append(updates, firestore.Update{Path: "workType", Value: string(*upd.WorkType)})
	}
	if upd.OwnerPhotoURL != nil {
		var v any
		if *upd.OwnerPhotoURL != "" {
			v = *upd.OwnerPhotoURL
		}
		updates = append(updates, firestore.Update{Path: "ownerPhotoURL", Value: v})
	}

	_, err := r.c.ads().Doc(id).Update(ctx, updates)
	if isNotFound(err) {
		return entity.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	return nil
}

// Delete removes the listing together with a decrement of the stats
// counter matching its post type, all in one transaction. A missing
// listing aborts the transaction so no partial counter decrement can
// happen.
func (r *ListingRepo) Delete(ctx context.Context, id string) error {
	docRef := r.c.ads().Doc(id)

	err := r.c.fs.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(docRef)
		if isNotFound(err) {
			return entity.ErrNotFound
		}
		if err != nil {
			return err
		}

		var l entity.Listing
		if err := snap.DataTo(&l); err != nil {
			return err
		}

		if err := tx.Delete(docRef); err != nil {
			return err
		}
		return tx.Update(r.c.stats(), []firestore.Update{
			{Path: l.CounterField(), Value: firestore.Increment(-1)},
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

// appendString adds a string field update when the pointer is set.
func appendString(updates *[]firestore.Update, path string, v *string) {
	if v != nil {
		*updates = append(*updates, firestore.Update{Path: path, Value: *v})
	}
}

// docToListing maps a snapshot into a decorated listing entity.
func docToListing(doc *firestore.DocumentSnapshot) (*entity.Listing, error) {
	var l entity.Listing
	if err := doc.DataTo(&l); err != nil {
		return nil, fmt.Errorf("unmarshal listing %s: %w", doc.Ref.ID, err)
	}
	l.ID = doc.Ref.ID
	decorateListing(&l, time.Now())
	return &l, nil
}
