package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGamificationSnapshotJSONRoundTrip(t *testing.T) {
	unlockedAt := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	snapshot := GamificationSnapshot{
		UserID:    "user-1",
		EcoPoints: 615,
		Level: Level{
			Number:    3,
			Title:     "Waste Warrior",
			MinPoints: 500,
			MaxPoints: 1499,
			Color:     "#34D399",
			Icon:      "⚔️",
		},
		Achievements: []Achievement{
			{
				ID:          "first-save",
				Name:        "First Save",
				Description: "Saved your first product before expiry",
				Icon:        "🥇",
				Category:    AchievementMilestone,
				Requirement: 1,
				Progress:    1,
				Unlocked:    true,
				UnlockedAt:  &unlockedAt,
			},
			{
				ID:          "food-saver",
				Name:        "Food Saver",
				Category:    AchievementPerKind,
				Requirement: 20,
				Progress:    13,
			},
		},
		Statistics: Statistics{
			ProductsSaved:      42,
			MoneySaved:         312.5,
			CO2Saved:           18.75,
			FoodItemsSaved:     13,
			MedicineItemsSaved: 4,
			TotalProductsAdded: 60,
			PerfectWeeks:       1,
		},
		Streak: StreakData{
			CurrentStreak:    5,
			LongestStreak:    11,
			LastActivityDate: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
			StreakStartDate:  time.Date(2025, 6, 6, 0, 0, 0, 0, time.UTC),
		},
		Settings: UserSettings{
			Theme:             "dark",
			SoundEnabled:      true,
			AnimationsEnabled: true,
			Voice: VoiceSettings{
				Enabled:  true,
				Language: "en",
				Gender:   "female",
				Rate:     1.0,
				Pitch:    1.0,
			},
			Notifications: true,
		},
	}

	raw, err := json.Marshal(snapshot)
	require.NoError(t, err)

	var decoded GamificationSnapshot
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, snapshot, decoded)
}

func TestProductJSONUsesCamelCaseKeys(t *testing.T) {
	product := Product{
		ID:         uuid.MustParse("5f8a9c2e-1b3d-4f6a-8c9e-0d1f2a3b4c5d"),
		UserID:     "user-1",
		Name:       "Milk",
		Category:   CategoryFood,
		ExpiryDate: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		CreatedAt:  time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC),
		UpdatedAt:  time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC),
	}

	raw, err := json.Marshal(product)
	require.NoError(t, err)

	var keys map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &keys))
	assert.Contains(t, keys, "userId")
	assert.Contains(t, keys, "expiryDate")
	assert.NotContains(t, keys, "quantity") // omitempty for the zero value
}
