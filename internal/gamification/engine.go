// Package gamification orchestrates the scoring and progression engine:
// points, levels, statistics, streaks and achievements.
package gamification

import (
	"time"

	"expiryguard/internal/gamification/achievement"
	"expiryguard/internal/gamification/level"
	"expiryguard/internal/gamification/points"
	"expiryguard/internal/gamification/stats"
	"expiryguard/internal/gamification/streak"
	"expiryguard/internal/model"
)

// Engine converts user actions into snapshot updates and progression
// events. It is stateless and safe to share; all state lives in the
// snapshot it is given.
type Engine struct{}

// NewEngine creates a progression engine.
func NewEngine() *Engine {
	return &Engine{}
}

// NewSnapshot creates the initial gamification state for a user: zero
// points, lowest level, a fresh locked achievement catalog and default
// settings.
func NewSnapshot(userID string, now time.Time) model.GamificationSnapshot {
	return model.GamificationSnapshot{
		UserID:       userID,
		Level:        level.ForPoints(0),
		Achievements: achievement.NewCatalog(),
		Statistics:   stats.New(),
		Streak:       streak.New(now),
		Settings:     DefaultSettings(),
	}
}

// DefaultSettings returns the preferences a fresh snapshot starts with.
func DefaultSettings() model.UserSettings {
	return model.UserSettings{
		Theme:             "light",
		SoundEnabled:      true,
		AnimationsEnabled: true,
		Voice: model.VoiceSettings{
			Enabled:  true,
			Language: "en",
			Gender:   "female",
			Rate:     1.0,
			Pitch:    1.0,
		},
		Notifications: true,
	}
}

// ApplyAction processes one user action against the snapshot and returns
// the updated snapshot plus the ordered progression events. The input
// snapshot is not mutated.
//
// The steps run in a fixed order because later ones read the results of
// earlier ones: points are added first, the level is recomputed from the
// new total, statistics advance, the streak updates (mark-used only, with
// hasOtherExpired saying whether any remaining product is past expiry),
// and achievements are re-evaluated last so they see the final counters.
// A points event is always emitted, even for a zero delta.
//
// Marking an already-expired product as used yields no reward and no state
// change; removing the product from the active list is the caller's job.
func (e *Engine) ApplyAction(snapshot model.GamificationSnapshot, action model.ActionKind, product model.Product, hasOtherExpired bool, now time.Time) (model.GamificationSnapshot, []model.Event) {
	if action == model.ActionMarkUsedBeforeExpiry && product.ExpiryDate.Before(now) {
		return snapshot, nil
	}

	var events []model.Event

	delta := points.ForAction(action)
	snapshot.EcoPoints += delta

	previous := snapshot.Level
	snapshot.Level = level.ForPoints(snapshot.EcoPoints)
	if snapshot.Level.Number > previous.Number {
		newLevel := snapshot.Level
		events = append(events, model.Event{Kind: model.EventLevelUp, Level: &newLevel})
	}

	switch action {
	case model.ActionAddProduct:
		snapshot.Statistics = stats.Apply(snapshot.Statistics, product, stats.EventAdded)
	case model.ActionMarkUsedBeforeExpiry:
		snapshot.Statistics = stats.Apply(snapshot.Statistics, product, stats.EventSaved)
		snapshot.Streak = streak.Update(snapshot.Streak, hasOtherExpired, now)
	}

	updated, newlyUnlocked := achievement.Evaluate(snapshot.Achievements, snapshot.Statistics, snapshot.Streak, now)
	snapshot.Achievements = updated
	for i := range newlyUnlocked {
		unlocked := newlyUnlocked[i]
		events = append(events, model.Event{Kind: model.EventBadge, Achievement: &unlocked})
	}

	events = append(events, model.Event{Kind: model.EventPoints, Points: delta})

	return snapshot, events
}
