// Package expiry computes expiry status and reminder schedules for
// tracked products.
package expiry

import (
	"time"

	"expiryguard/internal/model"
)

// DaysRemaining returns the whole days between today and the product's
// expiry date, at day granularity. Negative once the product has expired.
func DaysRemaining(expiryDate, today time.Time) int {
	from := startOfDay(today)
	to := startOfDay(expiryDate)
	return int(to.Sub(from).Hours() / 24)
}

// StatusFor classifies a days-remaining value: more than a week out is
// safe, within a week is expiring soon, zero or past is expired.
func StatusFor(daysRemaining int) model.ExpiryStatus {
	switch {
	case daysRemaining > 7:
		return model.StatusSafe
	case daysRemaining > 0:
		return model.StatusExpiringSoon
	default:
		return model.StatusExpired
	}
}

// IsExpired reports whether the product is past its expiry date as of now.
// The comparison uses full timestamps: a product expiring later today is
// not yet expired.
func IsExpired(p model.Product, now time.Time) bool {
	return p.ExpiryDate.Before(now)
}

// ShouldRemind reports whether today matches one of the product's
// configured reminder-day offsets.
func ShouldRemind(p model.Product, today time.Time) bool {
	if len(p.ReminderDays) == 0 {
		return false
	}

	remaining := DaysRemaining(p.ExpiryDate, today)
	for _, d := range p.ReminderDays {
		if d == remaining {
			return true
		}
	}
	return false
}

// DueReminders filters the products whose reminder schedule fires today.
func DueReminders(products []model.Product, today time.Time) []model.Product {
	var due []model.Product
	for _, p := range products {
		if ShouldRemind(p, today) {
			due = append(due, p)
		}
	}
	return due
}

// AnyOtherExpired reports whether any product other than excludeID is past
// its expiry date. This feeds the streak evaluation when a product is
// marked used.
func AnyOtherExpired(products []model.Product, excludeID string, now time.Time) bool {
	for _, p := range products {
		if p.ID.String() == excludeID {
			continue
		}
		if IsExpired(p, now) {
			return true
		}
	}
	return false
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
