// Package achievement evaluates the fixed badge catalog against
// gamification state.
package achievement

import (
	"errors"
	"time"

	"expiryguard/internal/model"
)

// Achievement errors.
var (
	ErrUnknownAchievement = errors.New("achievement not found")
	ErrAlreadyUnlocked    = errors.New("achievement already unlocked")
)

// Achievement ids. The catalog is closed; these are the only valid keys.
const (
	FirstSave         = "first-save"
	FoodSaver         = "food-saver"
	MedicineProtector = "medicine-protector"
	SevenDayStreak    = "seven-day-streak"
	PerfectWeek       = "perfect-week"
)

// Definition describes one catalog entry: everything about an achievement
// except its per-user progress state.
type Definition struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Category    model.AchievementCategory
	Requirement int
}

// Catalog is the closed achievement catalog, fixed at build time.
var Catalog = []Definition{
	{
		ID:          FirstSave,
		Name:        "First Save",
		Description: "Saved your first product before expiry",
		Icon:        "🥇",
		Category:    model.AchievementMilestone,
		Requirement: 1,
	},
	{
		ID:          FoodSaver,
		Name:        "Food Saver",
		Description: "Saved 20 food items before expiry",
		Icon:        "🥗",
		Category:    model.AchievementPerKind,
		Requirement: 20,
	},
	{
		ID:          MedicineProtector,
		Name:        "Medicine Protector",
		Description: "Saved 10 medicine items before expiry",
		Icon:        "💊",
		Category:    model.AchievementPerKind,
		Requirement: 10,
	},
	{
		ID:          SevenDayStreak,
		Name:        "7 Day Streak",
		Description: "No product expired for 7 consecutive days",
		Icon:        "🔥",
		Category:    model.AchievementStreak,
		Requirement: 7,
	},
	{
		ID:          PerfectWeek,
		Name:        "Perfect Week",
		Description: "Used all items before expiring in a week",
		Icon:        "👑",
		Category:    model.AchievementSpecial,
		Requirement: 1,
	},
}

// NewCatalog instantiates the catalog as a fresh, fully locked achievement
// set with zero progress.
func NewCatalog() []model.Achievement {
	achievements := make([]model.Achievement, 0, len(Catalog))
	for _, def := range Catalog {
		achievements = append(achievements, model.Achievement{
			ID:          def.ID,
			Name:        def.Name,
			Description: def.Description,
			Icon:        def.Icon,
			Category:    def.Category,
			Requirement: def.Requirement,
		})
	}
	return achievements
}

// Evaluate recomputes progress for every locked achievement from the
// statistics and streak state, unlocking those whose measured value reached
// the requirement. It returns a new slice (the input is never mutated, so
// callers can never observe a half-updated list) plus the achievements that
// transitioned to unlocked during this call. Already unlocked entries are
// skipped entirely: their progress and unlock time stay frozen.
func Evaluate(achievements []model.Achievement, statistics model.Statistics, streak model.StreakData, now time.Time) ([]model.Achievement, []model.Achievement) {
	updated := make([]model.Achievement, len(achievements))
	copy(updated, achievements)

	var newlyUnlocked []model.Achievement
	for i := range updated {
		if updated[i].Unlocked {
			continue
		}

		updated[i].Progress = progressFor(updated[i].ID, statistics, streak)
		if updated[i].Progress >= updated[i].Requirement {
			unlockedAt := now
			updated[i].Unlocked = true
			updated[i].UnlockedAt = &unlockedAt
			newlyUnlocked = append(newlyUnlocked, updated[i])
		}
	}

	return updated, newlyUnlocked
}

// Unlock force-unlocks a single achievement by id, for out-of-band
// triggers. Unlocking an already unlocked achievement is a no-op reported
// as ErrAlreadyUnlocked; the returned slice is a copy either way.
func Unlock(achievements []model.Achievement, id string, now time.Time) ([]model.Achievement, model.Achievement, error) {
	updated := make([]model.Achievement, len(achievements))
	copy(updated, achievements)

	for i := range updated {
		if updated[i].ID != id {
			continue
		}
		if updated[i].Unlocked {
			return updated, updated[i], ErrAlreadyUnlocked
		}

		unlockedAt := now
		updated[i].Unlocked = true
		updated[i].UnlockedAt = &unlockedAt
		if updated[i].Progress < updated[i].Requirement {
			updated[i].Progress = updated[i].Requirement
		}
		return updated, updated[i], nil
	}

	return updated, model.Achievement{}, ErrUnknownAchievement
}

// progressFor maps an achievement id onto the snapshot field it watches.
func progressFor(id string, statistics model.Statistics, streak model.StreakData) int {
	switch id {
	case FirstSave:
		return statistics.ProductsSaved
	case FoodSaver:
		return statistics.FoodItemsSaved
	case MedicineProtector:
		return statistics.MedicineItemsSaved
	case SevenDayStreak:
		return streak.CurrentStreak
	case PerfectWeek:
		return statistics.PerfectWeeks
	default:
		return 0
	}
}
