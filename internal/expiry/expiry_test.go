package expiry

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"expiryguard/internal/model"
)

var today = time.Date(2026, 2, 10, 14, 0, 0, 0, time.UTC)

func TestDaysRemaining(t *testing.T) {
	tests := []struct {
		name   string
		expiry time.Time
		want   int
	}{
		{"expires today", today.Add(4 * time.Hour), 0},
		{"expires tomorrow", today.AddDate(0, 0, 1), 1},
		{"expires in a week", today.AddDate(0, 0, 7), 7},
		{"expired yesterday", today.AddDate(0, 0, -1), -1},
		{"time of day is ignored", today.AddDate(0, 0, 2).Add(-13 * time.Hour), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysRemaining(tt.expiry, today); got != tt.want {
				t.Errorf("DaysRemaining = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		days int
		want model.ExpiryStatus
	}{
		{"far out", 30, model.StatusSafe},
		{"just over a week", 8, model.StatusSafe},
		{"exactly a week", 7, model.StatusExpiringSoon},
		{"tomorrow", 1, model.StatusExpiringSoon},
		{"today", 0, model.StatusExpired},
		{"past", -3, model.StatusExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusFor(tt.days); got != tt.want {
				t.Errorf("StatusFor(%d) = %v, want %v", tt.days, got, tt.want)
			}
		})
	}
}

func TestShouldRemind(t *testing.T) {
	tests := []struct {
		name         string
		reminderDays []int
		expiry       time.Time
		want         bool
	}{
		{"no schedule", nil, today.AddDate(0, 0, 3), false},
		{"matching offset", []int{3, 7}, today.AddDate(0, 0, 3), true},
		{"non-matching offset", []int{1, 7}, today.AddDate(0, 0, 3), false},
		{"day-of reminder", []int{0}, today.Add(2 * time.Hour), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := model.Product{ReminderDays: tt.reminderDays, ExpiryDate: tt.expiry}
			if got := ShouldRemind(p, today); got != tt.want {
				t.Errorf("ShouldRemind = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDueReminders(t *testing.T) {
	due := model.Product{Name: "milk", ReminderDays: []int{2}, ExpiryDate: today.AddDate(0, 0, 2)}
	notDue := model.Product{Name: "rice", ReminderDays: []int{5}, ExpiryDate: today.AddDate(0, 0, 30)}
	noSchedule := model.Product{Name: "soap", ExpiryDate: today.AddDate(0, 0, 2)}

	got := DueReminders([]model.Product{due, notDue, noSchedule}, today)

	if len(got) != 1 || got[0].Name != "milk" {
		t.Errorf("DueReminders = %v, want only milk", got)
	}
}

func TestAnyOtherExpired(t *testing.T) {
	fresh := model.Product{ID: uuid.New(), ExpiryDate: today.AddDate(0, 0, 5)}
	expired := model.Product{ID: uuid.New(), ExpiryDate: today.AddDate(0, 0, -2)}

	tests := []struct {
		name     string
		products []model.Product
		exclude  string
		want     bool
	}{
		{"all fresh", []model.Product{fresh}, uuid.NewString(), false},
		{"one expired", []model.Product{fresh, expired}, uuid.NewString(), true},
		{"expired one is excluded", []model.Product{fresh, expired}, expired.ID.String(), false},
		{"empty list", nil, uuid.NewString(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AnyOtherExpired(tt.products, tt.exclude, today); got != tt.want {
				t.Errorf("AnyOtherExpired = %v, want %v", got, tt.want)
			}
		})
	}
}
