package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"expiryguard/internal/expiry"
	"expiryguard/internal/model"
)

// ReminderLister is the read-only product access the reminder scan needs.
type ReminderLister interface {
	GetAll(ctx context.Context) ([]model.Product, error)
}

// ReminderService scans tracked products and reports the ones whose
// reminder schedule fires today. It never mutates gamification state.
type ReminderService struct {
	products ReminderLister
	interval time.Duration
	now      func() time.Time
}

// NewReminderService creates a new ReminderService instance.
func NewReminderService(products ReminderLister, interval time.Duration) *ReminderService {
	return &ReminderService{
		products: products,
		interval: interval,
		now:      time.Now,
	}
}

// WithClock overrides the service clock. Tests use this to pin dates.
func (s *ReminderService) WithClock(now func() time.Time) *ReminderService {
	s.now = now
	return s
}

// DueToday returns every product whose reminder-day offsets match today.
func (s *ReminderService) DueToday(ctx context.Context) ([]model.Product, error) {
	products, err := s.products.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return expiry.DueReminders(products, s.now()), nil
}

// Run performs a reminder scan on every tick until the context is
// cancelled. Scan failures are logged and the loop continues.
func (s *ReminderService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.scan(ctx)
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Reminder loop stopped")
			return
		case <-ticker.C:
			s.scan(ctx)
		}
	}
}

func (s *ReminderService) scan(ctx context.Context) {
	due, err := s.DueToday(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Reminder scan failed")
		return
	}

	now := s.now()
	for _, p := range due {
		log.Info().
			Str("user_id", p.UserID).
			Str("product_id", p.ID.String()).
			Str("product", p.Name).
			Int("days_remaining", expiry.DaysRemaining(p.ExpiryDate, now)).
			Msg("Reminder due")
	}
	log.Debug().Int("due", len(due)).Msg("Reminder scan complete")
}
