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

// CompetitionRepo implements repository.CompetitionRepository on the
// competitions collection.
type CompetitionRepo struct {
	c *Client
}

// NewCompetitionRepo returns the Firestore-backed competition repository.
func NewCompetitionRepo(c *Client) repository.CompetitionRepository {
	return &CompetitionRepo{c: c}
}

func (r *CompetitionRepo) ListPage(ctx context.Context, q repository.CompetitionQuery) ([]*entity.Competition, error) {
	fq := r.c.competitions().Query.
		OrderBy("createdAt", firestore.Desc).
		OrderBy(firestore.DocumentID, firestore.Asc)
	if q.Cursor != nil {
		fq = startAfter(fq, q.Cursor.CreatedAt, q.Cursor.ID)
	}
	if q.Limit > 0 {
		fq = fq.Limit(q.Limit)
	}

	items, err := collectDocs(fq.Documents(ctx), docToCompetition)
	if err != nil {
		return nil, fmt.Errorf("ListPage: %w", err)
	}
	return items, nil
}

func (r *CompetitionRepo) ListAll(ctx context.Context) ([]*entity.Competition, error) {
	q := r.c.competitions().Query.OrderBy("createdAt", firestore.Desc)

	items, err := collectDocs(q.Documents(ctx), docToCompetition)
	if err != nil {
		return nil, fmt.Errorf("ListAll: %w", err)
	}
	return items, nil
}

func (r *CompetitionRepo) Get(ctx context.Context, id string) (*entity.Competition, error) {
	doc, err := r.c.competitions().Doc(id).Get(ctx)
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return docToCompetition(doc)
}

func (r *CompetitionRepo) GetMany(ctx context.Context, ids []string) ([]*entity.Competition, error) {
	refs := make([]*firestore.DocumentRef, len(ids))
	for i, id := range ids {
		refs[i] = r.c.competitions().Doc(id)
	}
	items, err := getAllExisting(ctx, r.c.fs, refs, docToCompetition)
	if err != nil {
		return nil, fmt.Errorf("GetMany: %w", err)
	}
	return items, nil
}

func (r *CompetitionRepo) Create(ctx context.Context, comp *entity.Competition) (string, error) {
	docRef := r.c.competitions().NewDoc()
	data := stripEmpty(map[string]any{
		"title":           comp.Title,
		"organizer":       comp.Organizer,
		"location":        comp.Location,
		"competitionType": comp.CompetitionType,
		"description":     comp.Description,
		"createdAt":       firestore.ServerTimestamp,
	})
	if comp.PositionsAvailable != nil {
		data["positionsAvailable"] = *comp.PositionsAvailable
	}

	err := r.c.fs.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		if err := tx.Create(docRef, data); err != nil {
			return err
		}
		return tx.Update(r.c.stats(), []firestore.Update{
			{Path: entity.CounterCompetitions, Value: firestore.Increment(1)},
		})
	})
	if err != nil {
		return "", fmt.Errorf("Create: %w", err)
	}
	return docRef.ID, nil
}

func (r *CompetitionRepo) Update(ctx context.Context, id string, upd repository.CompetitionUpdate) error {
	updates := []firestore.Update{
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	}
	appendString(&updates, "title", upd.Title)
	appendString(&updates, "organizer", upd.Organizer)
	appendString(&updates, "location", upd.Location)
	appendString(&updates, "competitionType", upd.CompetitionType)
	appendString(&updates, "description", upd.Description)
	if upd.PositionsAvailable != nil {
		updates = append(updates, firestore.Update{Path: "positionsAvailable", Value: *upd.PositionsAvailable})
	}

	_, err := r.c.competitions().Doc(id).Update(ctx, updates)
	if isNotFound(err) {
		return entity.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	return nil
}

// Delete removes the competition and decrements the competitions counter
// in one transaction. A missing document aborts the transaction.
func (r *CompetitionRepo) Delete(ctx context.Context, id string) error {
	docRef := r.c.competitions().Doc(id)

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
			{Path: entity.CounterCompetitions, Value: firestore.Increment(-1)},
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

func docToCompetition(doc *firestore.DocumentSnapshot) (*entity.Competition, error) {
	var c entity.Competition
	if err := doc.DataTo(&c); err != nil {
		return nil, fmt.Errorf("unmarshal competition %s: %w", doc.Ref.ID, err)
	}
	c.ID = doc.Ref.ID
	decorateCompetition(&c, time.Now())
	return &c, nil
}
