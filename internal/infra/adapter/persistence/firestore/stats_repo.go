package firestore

import (
	"context"
	"fmt"

	"github.com/Aywac/tawzifak1122/internal/domain/entity"
	"github.com/Aywac/tawzifak1122/internal/repository"
)

// StatsRepo reads the global counters document. The counters themselves
// are only ever written by the entity repositories' transactions.
type StatsRepo struct {
	c *Client
}

// NewStatsRepo returns the Firestore-backed stats repository.
func NewStatsRepo(c *Client) repository.StatsRepository {
	return &StatsRepo{c: c}
}

// Get returns the global counters. A missing document means nothing has
// been counted yet, so it reads as all zeros rather than an error.
func (r *StatsRepo) Get(ctx context.Context) (*entity.GlobalStats, error) {
	doc, err := r.c.stats().Get(ctx)
	if isNotFound(err) {
		return &entity.GlobalStats{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}

	var s entity.GlobalStats
	if err := doc.DataTo(&s); err != nil {
		return nil, fmt.Errorf("unmarshal stats: %w", err)
	}
	return &s, nil
}
