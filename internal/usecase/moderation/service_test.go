package moderation_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aywac/tawzifak1122/internal/domain/entity"
	modUC "github.com/Aywac/tawzifak1122/internal/usecase/moderation"
)

type stubReportRepo struct {
	data   map[string]*entity.Report
	nextID int
	err    error
}

func (s *stubReportRepo) List(_ context.Context) ([]*entity.Report, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []*entity.Report
	for _, r := range s.data {
		out = append(out, r)
	}
	return out, nil
}

func (s *stubReportRepo) Create(_ context.Context, r *entity.Report) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.nextID++
	id := fmt.Sprintf("rep-%03d", s.nextID)
	cp := *r
	cp.ID = id
	cp.CreatedAt = time.Now()
	s.data[id] = &cp
	return id, nil
}

func (s *stubReportRepo) Delete(_ context.Context, id string) error {
	if s.err != nil {
		return s.err
	}
	if _, ok := s.data[id]; !ok {
		return entity.ErrNotFound
	}
	delete(s.data, id)
	return nil
}

type stubContactRepo struct {
	data   map[string]*entity.ContactMessage
	nextID int
	err    error
}

func (s *stubContactRepo) List(_ context.Context) ([]*entity.ContactMessage, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []*entity.ContactMessage
	for _, m := range s.data {
		out = append(out, m)
	}
	return out, nil
}

func (s *stubContactRepo) Create(_ context.Context, m *entity.ContactMessage) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.nextID++
	id := fmt.Sprintf("msg-%03d", s.nextID)
	cp := *m
	cp.ID = id
	cp.CreatedAt = time.Now()
	s.data[id] = &cp
	return id, nil
}

func (s *stubContactRepo) Delete(_ context.Context, id string) error {
	if s.err != nil {
		return s.err
	}
	if _, ok := s.data[id]; !ok {
		return entity.ErrNotFound
	}
	delete(s.data, id)
	return nil
}

func newService() (*modUC.Service, *stubReportRepo, *stubContactRepo) {
	reports := &stubReportRepo{data: map[string]*entity.Report{}}
	contacts := &stubContactRepo{data: map[string]*entity.ContactMessage{}}
	return &modUC.Service{Reports: reports, Contacts: contacts}, reports, contacts
}

func TestSubmitReport(t *testing.T) {
	svc, reports, _ := newService()

	id, err := svc.SubmitReport(context.Background(), modUC.ReportInput{
		AdID:   "ad-1",
		AdType: "job",
		Reason: "spam",
	})
	require.NoError(t, err)
	assert.Contains(t, reports.data, id)
}

func TestSubmitReportValidation(t *testing.T) {
	svc, _, _ := newService()

	_, err := svc.SubmitReport(context.Background(), modUC.ReportInput{Reason: "spam"})
	var ve *entity.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "adId", ve.Field)
}

func TestDismissReportNotFound(t *testing.T) {
	svc, _, _ := newService()

	err := svc.DismissReport(context.Background(), "missing")
	assert.ErrorIs(t, err, modUC.ErrReportNotFound)
}

func TestSubmitContactValidatesEmail(t *testing.T) {
	svc, _, _ := newService()

	for _, email := range []string{"", "no-at-sign", "@host", "user@", "user@host"} {
		_, err := svc.SubmitContact(context.Background(), modUC.ContactInput{
			Name:    "سارة",
			Email:   email,
			Message: "سؤال",
		})
		var ve *entity.ValidationError
		require.ErrorAs(t, err, &ve, "email %q must be rejected", email)
		assert.Equal(t, "email", ve.Field)
	}
}

func TestSubmitContactThenList(t *testing.T) {
	svc, _, contacts := newService()

	id, err := svc.SubmitContact(context.Background(), modUC.ContactInput{
		Name:    "سارة",
		Email:   "sara@example.com",
		Message: "هل يمكن تعديل إعلاني؟",
	})
	require.NoError(t, err)
	assert.Contains(t, contacts.data, id)

	out, err := svc.ListContacts(context.Background())
	require.NoError(t, err)
	assert.Len(t, out, 1)
}
