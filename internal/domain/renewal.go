package domain

import (
	"math"
	"time"
)

// RenewalStatus is the tier a renewal date falls into relative to today.
type RenewalStatus string

const (
	RenewalExpired RenewalStatus = "expired"
	RenewalWarning RenewalStatus = "warning"
	RenewalOK      RenewalStatus = "ok"
)

// warningWindowDays is how many days before the renewal date a student is
// flagged as needing attention.
const warningWindowDays = 3

// ClassifyRenewal maps a renewal date to its status tier relative to now.
// Both dates are normalized to midnight so that time-of-day never shifts the
// day difference; the difference is rounded up to absorb DST oddities.
// Strictly past dates are expired, today through today+3 is a warning,
// anything later is ok.
//
// This is recomputed on every query. It must never be stored on the student.
func ClassifyRenewal(renewalDate, now time.Time) RenewalStatus {
	today := atMidnight(now)
	renewal := atMidnight(renewalDate)

	diffDays := int(math.Ceil(renewal.Sub(today).Hours() / 24))

	switch {
	case diffDays < 0:
		return RenewalExpired
	case diffDays <= warningWindowDays:
		return RenewalWarning
	default:
		return RenewalOK
	}
}

func atMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
