package firestore

import (
	"time"

	"github.com/Aywac/tawzifak1122/internal/domain/entity"
)

// The decorate functions compute the derived, non-persisted read-time
// fields of each listing-like entity. They run on every read relative to
// now and are deliberately kept apart from snapshot unmarshalling so the
// derivation rules are unit-testable without Firestore.

func decorateListing(l *entity.Listing, now time.Time) {
	l.Derived = entity.ComputeDerived(l.CreatedAt, now)
}

func decorateCompetition(c *entity.Competition, now time.Time) {
	c.Derived = entity.ComputeDerived(c.CreatedAt, now)
}

func decorateImmigration(p *entity.ImmigrationPost, now time.Time) {
	p.Derived = entity.ComputeDerived(p.CreatedAt, now)
	p.IconName = entity.GetProgramTypeDetails(p.ProgramType).Icon
}

func decorateArticle(a *entity.Article, now time.Time) {
	// Imported articles may lack a server timestamp; the ISO field falls
	// back to their display date while the relative age reads "unknown".
	a.Derived = entity.ComputeDerived(a.DisplayTime(now), now)
	a.PostedAt = entity.FormatTimeAgo(a.CreatedAt, now)
}

func decorateTestimonial(t *entity.Testimonial, now time.Time) {
	t.Derived = entity.ComputeDerived(t.CreatedAt, now)
}
