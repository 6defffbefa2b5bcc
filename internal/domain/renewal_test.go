package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassifyRenewal(t *testing.T) {
	// Mid-afternoon "now" to prove time-of-day never skews the day diff.
	now := time.Date(2026, time.January, 15, 14, 37, 12, 0, time.UTC)
	day := 24 * time.Hour

	tests := []struct {
		name string
		date time.Time
		want RenewalStatus
	}{
		{"yesterday is expired", now.Add(-day), RenewalExpired},
		{"a month ago is expired", now.Add(-30 * day), RenewalExpired},
		{"today is a warning", now, RenewalWarning},
		{"tomorrow is a warning", now.Add(day), RenewalWarning},
		{"today+3 is a warning", now.Add(3 * day), RenewalWarning},
		{"today+4 is ok", now.Add(4 * day), RenewalOK},
		{"next year is ok", now.Add(365 * day), RenewalOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyRenewal(tt.date, now))
		})
	}
}

func TestClassifyRenewalIgnoresTimeOfDay(t *testing.T) {
	now := time.Date(2026, time.March, 10, 23, 59, 0, 0, time.UTC)

	// Early morning three days out still counts as day +3, not +2.
	date := time.Date(2026, time.March, 13, 0, 30, 0, 0, time.UTC)
	assert.Equal(t, RenewalWarning, ClassifyRenewal(date, now))

	// Late evening four days out stays at +4.
	date = time.Date(2026, time.March, 14, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, RenewalOK, ClassifyRenewal(date, now))
}
