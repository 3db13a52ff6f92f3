// Package streak maintains the consecutive-day no-expired-product streak.
package streak

import (
	"time"

	"expiryguard/internal/model"
)

// New returns a zeroed streak anchored at today.
func New(today time.Time) model.StreakData {
	day := startOfDay(today)
	return model.StreakData{
		LastActivityDate: day,
		StreakStartDate:  day,
	}
}

// Update evaluates one qualifying event (a product marked used before
// expiry) and returns the new streak state. hasOtherExpired reports whether
// any remaining tracked product is currently past its expiry date; if so
// the streak is broken regardless of dates. Dates are compared at day
// granularity.
//
// A negative day gap (clock set backward, or a timezone boundary splitting
// one logical day) has no defined behavior upstream; it is treated as a
// no-op here so a skewed clock can never corrupt the streak.
func Update(s model.StreakData, hasOtherExpired bool, today time.Time) model.StreakData {
	day := startOfDay(today)

	if hasOtherExpired {
		return model.StreakData{
			CurrentStreak:    0,
			LongestStreak:    max(s.LongestStreak, s.CurrentStreak),
			LastActivityDate: day,
			StreakStartDate:  day,
		}
	}

	gap := daysBetween(startOfDay(s.LastActivityDate), day)
	switch {
	case gap < 0:
		return s
	case gap == 0:
		// Already credited today.
		return s
	case gap == 1:
		current := s.CurrentStreak + 1
		return model.StreakData{
			CurrentStreak:    current,
			LongestStreak:    max(s.LongestStreak, current),
			LastActivityDate: day,
			StreakStartDate:  s.StreakStartDate,
		}
	default:
		// Lapsed without an expiry; today starts a fresh one-day streak.
		return model.StreakData{
			CurrentStreak:    1,
			LongestStreak:    max(s.LongestStreak, s.CurrentStreak),
			LastActivityDate: day,
			StreakStartDate:  day,
		}
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
