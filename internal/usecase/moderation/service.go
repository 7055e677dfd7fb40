// Package moderation provides use cases for the public abuse-report and
// contact forms and their admin review queues.
package moderation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Aywac/tawzifak1122/internal/domain/entity"
	"github.com/Aywac/tawzifak1122/internal/repository"
)

// Sentinel errors for moderation use case operations.
var (
	// ErrReportNotFound indicates that the requested report was not found.
	ErrReportNotFound = errors.New("report not found")

	// ErrContactNotFound indicates that the requested contact message was
	// not found.
	ErrContactNotFound = errors.New("contact message not found")

	// ErrInvalidID indicates that the provided document ID is empty.
	ErrInvalidID = errors.New("invalid ID")
)

// ReportInput represents a submitted abuse report.
type ReportInput struct {
	AdID    string
	AdType  string
	Reason  string
	Details string
}

// ContactInput represents a submitted contact-form message.
type ContactInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// Service provides the moderation use cases.
type Service struct {
	Reports  repository.ReportRepository
	Contacts repository.ContactRepository
}

// SubmitReport files an abuse report against an ad and returns its ID.
func (s *Service) SubmitReport(ctx context.Context, in ReportInput) (string, error) {
	if in.AdID == "" {
		return "", &entity.ValidationError{Field: "adId", Message: "is required"}
	}
	if in.Reason == "" {
		return "", &entity.ValidationError{Field: "reason", Message: "is required"}
	}

	id, err := s.Reports.Create(ctx, &entity.Report{
		AdID:    in.AdID,
		AdType:  in.AdType,
		Reason:  in.Reason,
		Details: in.Details,
	})
	if err != nil {
		return "", fmt.Errorf("create report: %w", err)
	}
	return id, nil
}

// ListReports returns the full admin report queue, newest first.
func (s *Service) ListReports(ctx context.Context) ([]*entity.Report, error) {
	items, err := s.Reports.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return items, nil
}

// DismissReport removes a handled report from the queue.
func (s *Service) DismissReport(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidID
	}
	if err := s.Reports.Delete(ctx, id); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return ErrReportNotFound
		}
		return fmt.Errorf("delete report: %w", err)
	}
	return nil
}

// SubmitContact stores a contact-form message and returns its ID.
func (s *Service) SubmitContact(ctx context.Context, in ContactInput) (string, error) {
	if in.Name == "" {
		return "", &entity.ValidationError{Field: "name", Message: "is required"}
	}
	if !validEmail(in.Email) {
		return "", &entity.ValidationError{Field: "email", Message: "is invalid"}
	}
	if in.Message == "" {
		return "", &entity.ValidationError{Field: "message", Message: "is required"}
	}

	id, err := s.Contacts.Create(ctx, &entity.ContactMessage{
		Name:    in.Name,
		Email:   in.Email,
		Subject: in.Subject,
		Message: in.Message,
	})
	if err != nil {
		return "", fmt.Errorf("create contact message: %w", err)
	}
	return id, nil
}

// ListContacts returns the full admin contact inbox, newest first.
func (s *Service) ListContacts(ctx context.Context) ([]*entity.ContactMessage, error) {
	items, err := s.Contacts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	return items, nil
}

// DeleteContact removes a handled contact message.
func (s *Service) DeleteContact(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidID
	}
	if err := s.Contacts.Delete(ctx, id); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return ErrContactNotFound
		}
		return fmt.Errorf("delete contact message: %w", err)
	}
	return nil
}

// validEmail is a coarse shape check; real verification is out of scope
// for a contact form.
func validEmail(s string) bool {
	at := strings.IndexByte(s, '@')
	if at <= 0 || at == len(s)-1 {
		return false
	}
	return strings.Contains(s[at+1:], ".")
}
