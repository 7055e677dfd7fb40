package repository

import (
	"context"

	"github.com/Aywac/tawzifak1122/internal/domain/entity"
)

// ReportRepository persists abuse reports. Reports are low-volume and
// admin-only, so the list is not paginated.
type ReportRepository interface {
	List(ctx context.Context) ([]*entity.Report, error)
	Create(ctx context.Context, r *entity.Report) (string, error)
	Delete(ctx context.Context, id string) error
}

// ContactRepository persists contact-form messages.
type ContactRepository interface {
	List(ctx context.Context) ([]*entity.ContactMessage, error)
	Create(ctx context.Context, m *entity.ContactMessage) (string, error)
	Delete(ctx context.Context, id string) error
}
