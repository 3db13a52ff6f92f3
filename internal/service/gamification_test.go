package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expiryguard/internal/gamification/achievement"
	"expiryguard/internal/model"
	"expiryguard/internal/repository"
)

var testNow = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

func newTestService() (*GamificationService, *repository.MemorySnapshotRepository, *repository.MemoryProductRepository, *repository.MemoryPointLedger) {
	snapshots := repository.NewMemorySnapshotRepository()
	products := repository.NewMemoryProductRepository()
	ledger := repository.NewMemoryPointLedger()
	svc := NewGamificationService(snapshots, products, ledger).
		WithClock(func() time.Time { return testNow })
	return svc, snapshots, products, ledger
}

func freshInput() model.ProductInput {
	return model.ProductInput{
		Name:         "Milk",
		Category:     model.CategoryFood,
		ExpiryDate:   testNow.AddDate(0, 0, 5),
		Quantity:     1,
		ReminderDays: []int{1, 3},
	}
}

func TestLoadOrInitFresh(t *testing.T) {
	svc, snapshots, _, _ := newTestService()
	ctx := context.Background()

	snapshot, err := svc.LoadOrInit(ctx, "user-1")
	require.NoError(t, err)

	assert.Equal(t, "user-1", snapshot.UserID)
	assert.Equal(t, 0, snapshot.EcoPoints)
	assert.Equal(t, 1, snapshot.Level.Number)
	assert.Len(t, snapshot.Achievements, 5)
	for _, a := range snapshot.Achievements {
		assert.False(t, a.Unlocked)
	}

	// The fresh snapshot must have been persisted.
	stored, err := snapshots.Load(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, snapshot, stored)
}

func TestLoadOrInitExisting(t *testing.T) {
	svc, snapshots, _, _ := newTestService()
	ctx := context.Background()

	first, err := svc.LoadOrInit(ctx, "user-1")
	require.NoError(t, err)

	first.EcoPoints = 250
	require.NoError(t, snapshots.Save(ctx, first))

	second, err := svc.LoadOrInit(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 250, second.EcoPoints)
}

func TestAddProductAwardsPoints(t *testing.T) {
	svc, _, products, ledger := newTestService()
	ctx := context.Background()

	product, snapshot, events, err := svc.AddProduct(ctx, "user-1", freshInput())
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, product.ID)
	assert.Equal(t, "user-1", product.UserID)
	assert.Equal(t, 5, snapshot.EcoPoints)
	assert.Equal(t, 1, snapshot.Statistics.TotalProductsAdded)

	require.NotEmpty(t, events)
	last := events[len(events)-1]
	assert.Equal(t, model.EventPoints, last.Kind)
	assert.Equal(t, 5, last.Points)

	stored, err := products.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.Name, stored.Name)

	total, err := ledger.TotalPoints(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 5, total)
}

func TestAddThenMarkUsedSumsPoints(t *testing.T) {
	svc, _, products, ledger := newTestService()
	ctx := context.Background()

	product, _, _, err := svc.AddProduct(ctx, "user-1", freshInput())
	require.NoError(t, err)

	snapshot, events, err := svc.MarkUsed(ctx, "user-1", product.ID)
	require.NoError(t, err)

	assert.Equal(t, 15, snapshot.EcoPoints)
	assert.Equal(t, 1, snapshot.Statistics.ProductsSaved)
	assert.Equal(t, 1, snapshot.Statistics.FoodItemsSaved)
	// Same-day save: the streak anchor moves but the count stays.
	assert.Equal(t, 0, snapshot.Streak.CurrentStreak)

	// First save unlocks the first-save badge.
	var badges []string
	for _, e := range events {
		if e.Kind == model.EventBadge {
			badges = append(badges, e.Achievement.ID)
		}
	}
	assert.Contains(t, badges, achievement.FirstSave)

	_, err = products.GetByID(ctx, product.ID)
	assert.ErrorIs(t, err, repository.ErrProductNotFound)

	total, err := ledger.TotalPoints(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 15, total)
}

func TestMarkUsedExpiredProductIsRemovalOnly(t *testing.T) {
	svc, snapshots, products, ledger := newTestService()
	ctx := context.Background()

	input := freshInput()
	input.ExpiryDate = testNow.AddDate(0, 0, -2)
	product, _, _, err := svc.AddProduct(ctx, "user-1", input)
	require.NoError(t, err)

	before, err := snapshots.Load(ctx, "user-1")
	require.NoError(t, err)

	snapshot, events, err := svc.MarkUsed(ctx, "user-1", product.ID)
	require.NoError(t, err)

	assert.Empty(t, events)
	assert.Equal(t, before.EcoPoints, snapshot.EcoPoints)
	assert.Equal(t, before.Statistics, snapshot.Statistics)

	_, err = products.GetByID(ctx, product.ID)
	assert.ErrorIs(t, err, repository.ErrProductNotFound)

	// Only the add-product award is in the ledger.
	total, err := ledger.TotalPoints(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 5, total)
}

func TestMarkUsedRejectsForeignProduct(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	product, _, _, err := svc.AddProduct(ctx, "user-1", freshInput())
	require.NoError(t, err)

	_, _, err = svc.MarkUsed(ctx, "user-2", product.ID)
	assert.ErrorIs(t, err, ErrProductNotOwned)
}

func TestMarkUsedUnknownProduct(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, _, err := svc.MarkUsed(context.Background(), "user-1", uuid.New())
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
}

// failingSnapshotStore fails every Save after the first n succeed.
type failingSnapshotStore struct {
	*repository.MemorySnapshotRepository
	allowed int
	saves   int
}

func (s *failingSnapshotStore) Save(ctx context.Context, snapshot model.GamificationSnapshot) error {
	s.saves++
	if s.saves > s.allowed {
		return errors.New("storage unavailable")
	}
	return s.MemorySnapshotRepository.Save(ctx, snapshot)
}

func TestSnapshotSaveFailurePropagates(t *testing.T) {
	snapshots := &failingSnapshotStore{
		MemorySnapshotRepository: repository.NewMemorySnapshotRepository(),
		allowed:                  1,
	}
	products := repository.NewMemoryProductRepository()
	ledger := repository.NewMemoryPointLedger()
	svc := NewGamificationService(snapshots, products, ledger).
		WithClock(func() time.Time { return testNow })
	ctx := context.Background()

	// First save (initial snapshot) succeeds, the post-action save fails.
	_, _, _, err := svc.AddProduct(ctx, "user-1", freshInput())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "persist snapshot")

	// No award reaches the ledger when the snapshot was not persisted.
	total, err := ledger.TotalPoints(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 0, total)
}

func TestDailySavesReachSevenDayStreakBadge(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	// The snapshot is anchored on the first day, so the streak starts
	// counting from the second; eight days of saves reach seven.
	day := testNow
	var snapshot model.GamificationSnapshot
	for i := 0; i < 8; i++ {
		svc.WithClock(func() time.Time { return day })

		input := freshInput()
		input.ExpiryDate = day.AddDate(0, 0, 5)
		product, _, _, err := svc.AddProduct(ctx, "user-1", input)
		require.NoError(t, err)

		var err2 error
		snapshot, _, err2 = svc.MarkUsed(ctx, "user-1", product.ID)
		require.NoError(t, err2)

		day = day.AddDate(0, 0, 1)
	}

	assert.Equal(t, 7, snapshot.Streak.CurrentStreak)
	var streakBadge model.Achievement
	for _, a := range snapshot.Achievements {
		if a.ID == achievement.SevenDayStreak {
			streakBadge = a
		}
	}
	assert.True(t, streakBadge.Unlocked)
}
