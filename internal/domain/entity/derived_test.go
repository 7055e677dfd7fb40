package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Aywac/tawzifak1122/internal/domain/entity"
)

func TestFormatTimeAgo(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		age  time.Duration
		want string
	}{
		{"just now", 30 * time.Second, "الآن"},
		{"one minute", 90 * time.Second, "قبل دقيقة"},
		{"five minutes", 5*time.Minute + time.Second, "قبل 5 دقائق"},
		{"one hour", 90 * time.Minute, "قبل ساعة"},
		{"three hours", 3*time.Hour + time.Minute, "قبل 3 ساعات"},
		{"one day", 30 * time.Hour, "قبل يوم"},
		{"four days", 4*24*time.Hour + time.Hour, "قبل 4 أيام"},
		{"one month", 45 * 24 * time.Hour, "قبل شهر"},
		{"three months", 91 * 24 * time.Hour, "قبل 3 أشهر"},
		{"one year", 400 * 24 * time.Hour, "قبل سنة"},
		{"two years", 750 * 24 * time.Hour, "قبل 2 سنوات"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := entity.FormatTimeAgo(now.Add(-tt.age), now)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatTimeAgoZeroTime(t *testing.T) {
	got := entity.FormatTimeAgo(time.Time{}, time.Now())
	assert.Equal(t, "غير معروف", got)
}

func TestComputeDerived(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("recent post is new", func(t *testing.T) {
		d := entity.ComputeDerived(now.Add(-2*time.Hour), now)
		assert.True(t, d.IsNew)
		assert.Equal(t, "2025-06-15T10:00:00Z", d.CreatedAtISO)
		assert.Equal(t, "قبل 2 ساعات", d.PostedAt)
	})

	t.Run("post older than a day is not new", func(t *testing.T) {
		d := entity.ComputeDerived(now.Add(-25*time.Hour), now)
		assert.False(t, d.IsNew)
	})

	t.Run("exactly 24h is not new", func(t *testing.T) {
		d := entity.ComputeDerived(now.Add(-24*time.Hour), now)
		assert.False(t, d.IsNew)
	})
}
