// Package model defines the data models for the ExpiryGuard tracker.
package model

import (
	"time"

	"github.com/google/uuid"
)

// ProductCategory classifies a tracked product. The set is closed; category
// lookups elsewhere (value tables, statistics counters) key off these
// constants so an unknown category cannot appear at runtime.
type ProductCategory string

// Known product categories.
const (
	CategoryFood        ProductCategory = "Food"
	CategoryMedicine    ProductCategory = "Medicine"
	CategoryHousehold   ProductCategory = "Household"
	CategoryCosmetic    ProductCategory = "Cosmetic"
	CategoryGroceries   ProductCategory = "Groceries"
	CategoryBeverages   ProductCategory = "Beverages"
	CategoryIngredients ProductCategory = "Ingredients"
	CategoryOther       ProductCategory = "Other"
)

// ExpiryStatus describes how close a product is to its expiry date.
type ExpiryStatus string

// Expiry status values.
const (
	StatusSafe         ExpiryStatus = "safe"
	StatusExpiringSoon ExpiryStatus = "expiring-soon"
	StatusExpired      ExpiryStatus = "expired"
)

// Product represents a perishable item tracked by a user.
type Product struct {
	ID           uuid.UUID       `json:"id"`
	UserID       string          `json:"userId"`
	Name         string          `json:"name"`
	Category     ProductCategory `json:"category"`
	ExpiryDate   time.Time       `json:"expiryDate"`
	Quantity     int             `json:"quantity,omitempty"`
	Notes        string          `json:"notes,omitempty"`
	ReminderDays []int           `json:"reminderDays,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// ProductInput carries the user-supplied fields for creating a product.
type ProductInput struct {
	Name         string
	Category     ProductCategory
	ExpiryDate   time.Time
	Quantity     int
	Notes        string
	ReminderDays []int
}

// ActionKind identifies a point-awarding user action.
type ActionKind string

// Point-awarding actions.
const (
	ActionAddProduct           ActionKind = "add_product"
	ActionMarkUsedBeforeExpiry ActionKind = "mark_used_before_expiry"
	ActionUseOnReminderDay     ActionKind = "use_on_reminder_day"
	ActionSevenDayStreak       ActionKind = "seven_day_streak"
	ActionPerfectWeek          ActionKind = "perfect_week"
)

// Level is a named tier derived purely from the eco-points total.
// MaxPoints of the top level is Unbounded.
type Level struct {
	Number    int    `json:"number"`
	Title     string `json:"title"`
	MinPoints int    `json:"minPoints"`
	MaxPoints int    `json:"maxPoints"`
	Color     string `json:"color"`
	Icon      string `json:"icon"`
}

// Unbounded marks a level range with no upper limit.
const Unbounded = int(^uint(0) >> 1)

// AchievementCategory groups achievements for display.
type AchievementCategory string

// Achievement display categories.
const (
	AchievementMilestone AchievementCategory = "milestone"
	AchievementStreak    AchievementCategory = "streak"
	AchievementPerKind   AchievementCategory = "category"
	AchievementSpecial   AchievementCategory = "special"
)

// Achievement is a one-way unlockable milestone. Once Unlocked is true the
// record is frozen: Progress and UnlockedAt are never touched again.
type Achievement struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Icon        string              `json:"icon"`
	Category    AchievementCategory `json:"category"`
	Requirement int                 `json:"requirement"`
	Progress    int                 `json:"progress"`
	Unlocked    bool                `json:"unlocked"`
	UnlockedAt  *time.Time          `json:"unlockedAt,omitempty"`
}

// Statistics holds the accumulated saving counters. All counters are
// non-negative and only ever increase; there is no decrement operation.
type Statistics struct {
	ProductsSaved      int     `json:"productsSaved"`
	MoneySaved         float64 `json:"moneySaved"`
	CO2Saved           float64 `json:"co2Saved"`
	FoodItemsSaved     int     `json:"foodItemsSaved"`
	MedicineItemsSaved int     `json:"medicineItemsSaved"`
	TotalProductsAdded int     `json:"totalProductsAdded"`
	PerfectWeeks       int     `json:"perfectWeeks"`
}

// StreakData tracks consecutive qualifying days with no expired product.
// LongestStreak >= CurrentStreak holds after every update.
type StreakData struct {
	CurrentStreak    int       `json:"currentStreak"`
	LongestStreak    int       `json:"longestStreak"`
	LastActivityDate time.Time `json:"lastActivityDate"`
	StreakStartDate  time.Time `json:"streakStartDate"`
}

// VoiceSettings holds voice playback preferences. Opaque to the engine.
type VoiceSettings struct {
	Enabled  bool    `json:"enabled"`
	Language string  `json:"language"`
	Gender   string  `json:"gender"`
	Rate     float64 `json:"rate"`
	Pitch    float64 `json:"pitch"`
}

// UserSettings holds user preferences. The engine passes them through
// unchanged; only the notification layer reads them.
type UserSettings struct {
	Theme             string        `json:"theme"`
	SoundEnabled      bool          `json:"soundEnabled"`
	AnimationsEnabled bool          `json:"animationsEnabled"`
	Voice             VoiceSettings `json:"voice"`
	Notifications     bool          `json:"notifications"`
}

// GamificationSnapshot is the complete per-user gamification state,
// loaded and saved as one atomic unit.
type GamificationSnapshot struct {
	UserID       string        `json:"userId"`
	EcoPoints    int           `json:"ecoPoints"`
	Level        Level         `json:"level"`
	Achievements []Achievement `json:"achievements"`
	Statistics   Statistics    `json:"statistics"`
	Streak       StreakData    `json:"streak"`
	Settings     UserSettings  `json:"settings"`
}

// EventKind identifies a progression event emitted for the UI layer.
type EventKind string

// Progression event kinds.
const (
	EventPoints  EventKind = "points"
	EventLevelUp EventKind = "levelup"
	EventBadge   EventKind = "badge"
)

// Event is a progression outcome the caller reacts to (notification,
// sound cue, confetti). The payload field matching Kind is set.
type Event struct {
	Kind        EventKind    `json:"kind"`
	Points      int          `json:"points,omitempty"`
	Level       *Level       `json:"level,omitempty"`
	Achievement *Achievement `json:"achievement,omitempty"`
}

// PointTransaction records a single point award in the ledger.
type PointTransaction struct {
	ID        uuid.UUID  `json:"id"`
	UserID    string     `json:"userId"`
	Action    ActionKind `json:"action"`
	Points    int        `json:"points"`
	Reason    string     `json:"reason"`
	CreatedAt time.Time  `json:"createdAt"`
}
