package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"github.com/Aywac/tawzifak1122/internal/domain/entity"
	"github.com/Aywac/tawzifak1122/internal/repository"
)

// ReportRepo implements repository.ReportRepository on the reports
// collection.
type ReportRepo struct {
	c *Client
}

// NewReportRepo returns the Firestore-backed report repository.
func NewReportRepo(c *Client) repository.ReportRepository {
	return &ReportRepo{c: c}
}

func (r *ReportRepo) List(ctx context.Context) ([]*entity.Report, error) {
	q := r.c.reports().Query.OrderBy("createdAt", firestore.Desc)

	items, err := collectDocs(q.Documents(ctx), func(doc *firestore.DocumentSnapshot) (*entity.Report, error) {
		var rep entity.Report
		if err := doc.DataTo(&rep); err != nil {
			return nil, fmt.Errorf("unmarshal report %s: %w", doc.Ref.ID, err)
		}
		rep.ID = doc.Ref.ID
		return &rep, nil
	})
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	return items, nil
}

func (r *ReportRepo) Create(ctx context.Context, rep *entity.Report) (string, error) {
	data := stripEmpty(map[string]any{
		"adId":      rep.AdID,
		"adType":    rep.AdType,
		"reason":    rep.Reason,
		"details":   rep.Details,
		"createdAt": firestore.ServerTimestamp,
	})

	docRef, _, err := r.c.reports().Add(ctx, data)
	if err != nil {
		return "", fmt.Errorf("Create: %w", err)
	}
	return docRef.ID, nil
}

func (r *ReportRepo) Delete(ctx context.Context, id string) error {
	_, err := r.c.reports().Doc(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	return nil
}

// ContactRepo implements repository.ContactRepository on the contacts
// collection.
type ContactRepo struct {
	c *Client
}

// NewContactRepo returns the Firestore-backed contact repository.
func NewContactRepo(c *Client) repository.ContactRepository {
	return &ContactRepo{c: c}
}

func (r *ContactRepo) List(ctx context.Context) ([]*entity.ContactMessage, error) {
	q := r.c.contacts().Query.OrderBy("createdAt", firestore.Desc)

	items, err := collectDocs(q.Documents(ctx), func(doc *firestore.DocumentSnapshot) (*entity.ContactMessage, error) {
		var m entity.ContactMessage
		if err := doc.DataTo(&m); err != nil {
			return nil, fmt.Errorf("unmarshal contact message %s: %w", doc.Ref.ID, err)
		}
		m.ID = doc.Ref.ID
		return &m, nil
	})
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	return items, nil
}

func (r *ContactRepo) Create(ctx context.Context, m *entity.ContactMessage) (string, error) {
	data := stripEmpty(map[string]any{
		"name":      m.Name,
		"email":     m.Email,
		"subject":   m.Subject,
		"message":   m.Message,
		"createdAt": firestore.ServerTimestamp,
	})

	docRef, _, err := r.c.contacts().Add(ctx, data)
	if err != nil {
		return "", fmt.Errorf("Create: %w", err)
	}
	return docRef.ID, nil
}

func (r *ContactRepo) Delete(ctx context.Context, id string) error {
	_, err := r.c.contacts().Doc(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	return nil
}
