package firestore

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"

	"github.com/Aywac/tawzifak1122/internal/domain/entity"
	"github.com/Aywac/tawzifak1122/internal/repository"
)

// UserRepo implements repository.UserRepository on the users collection
// and its savedAds sub-collections. User document IDs are the auth
// subject, never generated here.
type UserRepo struct {
	c *Client
}

// NewUserRepo returns the Firestore-backed user repository.
func NewUserRepo(c *Client) repository.UserRepository {
	return &UserRepo{c: c}
}

func (r *UserRepo) ListPage(ctx context.Context, q repository.UserQuery) ([]*entity.User, error) {
	fq := r.c.users().Query.
		OrderBy("createdAt", firestore.Desc).
		OrderBy(firestore.DocumentID, firestore.Asc)
	if q.Cursor != nil {
		fq = startAfter(fq, q.Cursor.CreatedAt, q.Cursor.ID)
	}
	if q.Limit > 0 {
		fq = fq.Limit(q.Limit)
	}

	items, err := collectDocs(fq.Documents(ctx), docToUser)
	if err != nil {
		return nil, fmt.Errorf("ListPage: %w", err)
	}
	return items, nil
}

func (r *UserRepo) Get(ctx context.Context, id string) (*entity.User, error) {
	doc, err := r.c.users().Doc(id).Get(ctx)
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return docToUser(doc)
}

func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	docRef := r.c.users().Doc(u.ID)
	data := stripEmpty(map[string]any{
		"name":      u.Name,
		"photoURL":  u.PhotoURL,
		"isAdmin":   u.Admin,
		"createdAt": firestore.ServerTimestamp,
	})

	err := r.c.fs.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		if err := tx.Create(docRef, data); err != nil {
			return err
		}
		return tx.Update(r.c.stats(), []firestore.Update{
			{Path: entity.CounterUsers, Value: firestore.Increment(1)},
		})
	})
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (r *UserRepo) Update(ctx context.Context, id string, upd repository.UserUpdate) error {
	updates := []firestore.Update{
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	}
	appendString(&updates, "name", upd.Name)
	if upd.PhotoURL != nil {
		// An empty string clears the stored photo; stored as null so
		// profile sync sees an explicit removal.
		var v any
		if *upd.PhotoURL != "" {
			v = *upd.PhotoURL
		}
		updates = append(updates, firestore.Update{Path: "photoURL", Value: v})
	}

	_, err := r.c.users().Doc(id).Update(ctx, updates)
	if isNotFound(err) {
		return entity.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	return nil
}

// Delete removes the profile and decrements the users counter in one
// transaction. Saved-ad references under the profile are not removed
// here; they are unreachable once the profile is gone.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	docRef := r.c.users().Doc(id)

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
			{Path: entity.CounterUsers, Value: firestore.Increment(-1)},
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

func (r *UserRepo) ListSavedAds(ctx context.Context, userID string) ([]entity.SavedAd, error) {
	q := r.c.savedAds(userID).Query.OrderBy("savedAt", firestore.Desc)

	items, err := collectDocs(q.Documents(ctx), func(doc *firestore.DocumentSnapshot) (entity.SavedAd, error) {
		var s entity.SavedAd
		if err := doc.DataTo(&s); err != nil {
			return entity.SavedAd{}, fmt.Errorf("unmarshal saved ad %s: %w", doc.Ref.ID, err)
		}
		s.AdID = doc.Ref.ID
		return s, nil
	})
	if err != nil {
		return nil, fmt.Errorf("ListSavedAds: %w", err)
	}
	return items, nil
}

// ToggleSavedAd flips the saved state of one ad for the user. The read
// and the write run in a transaction so concurrent toggles cannot both
// create or both delete.
func (r *UserRepo) ToggleSavedAd(ctx context.Context, userID, adID string, adType entity.SavedAdType) (bool, error) {
	docRef := r.c.savedAds(userID).Doc(adID)

	var saved bool
	err := r.c.fs.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		_, err := tx.Get(docRef)
		switch {
		case isNotFound(err):
			saved = true
			return tx.Create(docRef, map[string]any{
				"type":    string(adType),
				"savedAt": firestore.ServerTimestamp,
			})
		case err != nil:
			return err
		default:
			saved = false
			return tx.Delete(docRef)
		}
	})
	if err != nil {
		return false, fmt.Errorf("ToggleSavedAd: %w", err)
	}
	return saved, nil
}

func docToUser(doc *firestore.DocumentSnapshot) (*entity.User, error) {
	var u entity.User
	if err := doc.DataTo(&u); err != nil {
		return nil, fmt.Errorf("unmarshal user %s: %w", doc.Ref.ID, err)
	}
	u.ID = doc.Ref.ID
	return &u, nil
}
