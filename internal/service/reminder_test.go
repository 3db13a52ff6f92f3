package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expiryguard/internal/model"
	"expiryguard/internal/repository"
)

func TestDueTodayMatchesReminderOffsets(t *testing.T) {
	products := repository.NewMemoryProductRepository()
	ctx := context.Background()

	add := func(name string, daysOut int, reminders []int) {
		_, err := products.Create(ctx, model.Product{
			ID:           uuid.New(),
			UserID:       "user-1",
			Name:         name,
			Category:     model.CategoryFood,
			ExpiryDate:   testNow.AddDate(0, 0, daysOut),
			ReminderDays: reminders,
		})
		require.NoError(t, err)
	}

	add("due in three", 3, []int{1, 3, 7})
	add("due tomorrow only", 3, []int{1})
	add("no reminders", 3, nil)

	svc := NewReminderService(products, time.Hour).
		WithClock(func() time.Time { return testNow })

	due, err := svc.DueToday(ctx)
	require.NoError(t, err)

	require.Len(t, due, 1)
	assert.Equal(t, "due in three", due[0].Name)
}

func TestRunStopsOnCancel(t *testing.T) {
	products := repository.NewMemoryProductRepository()
	svc := NewReminderService(products, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("reminder loop did not stop on context cancel")
	}
}
