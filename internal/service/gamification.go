// Package service provides business logic implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"expiryguard/internal/expiry"
	"expiryguard/internal/gamification"
	"expiryguard/internal/model"
	"expiryguard/internal/pkg/lock"
	"expiryguard/internal/repository"
)

// Service errors.
var (
	ErrProductNotOwned = errors.New("product belongs to another user")
)

// SnapshotStore is the persistence collaborator for gamification snapshots.
type SnapshotStore interface {
	Load(ctx context.Context, userID string) (model.GamificationSnapshot, error)
	Save(ctx context.Context, snapshot model.GamificationSnapshot) error
}

// ProductStore is the persistence collaborator for tracked products.
type ProductStore interface {
	Create(ctx context.Context, p model.Product) (model.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (model.Product, error)
	GetByUser(ctx context.Context, userID string) ([]model.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PointLedger is the persistence collaborator for point award history.
type PointLedger interface {
	Append(ctx context.Context, tx model.PointTransaction) (model.PointTransaction, error)
	GetRecent(ctx context.Context, userID string, limit int) ([]model.PointTransaction, error)
	TotalPoints(ctx context.Context, userID string) (int, error)
}

// GamificationService runs the progression engine against persisted state.
// Per-user locking gives each action exclusive access to the snapshot for
// the duration of one call.
type GamificationService struct {
	snapshots SnapshotStore
	products  ProductStore
	ledger    PointLedger
	engine    *gamification.Engine
	userLock  *lock.UserLock
	now       func() time.Time
}

// NewGamificationService creates a new GamificationService instance.
func NewGamificationService(
	snapshots SnapshotStore,
	products ProductStore,
	ledger PointLedger,
) *GamificationService {
	return &GamificationService{
		snapshots: snapshots,
		products:  products,
		ledger:    ledger,
		engine:    gamification.NewEngine(),
		userLock:  lock.NewUserLock(),
		now:       time.Now,
	}
}

// WithClock overrides the service clock. Tests use this to pin dates.
func (s *GamificationService) WithClock(now func() time.Time) *GamificationService {
	s.now = now
	return s
}

// LoadOrInit returns the user's snapshot, creating and persisting a fresh
// one when none exists (or the stored one is unreadable).
func (s *GamificationService) LoadOrInit(ctx context.Context, userID string) (model.GamificationSnapshot, error) {
	snapshot, err := s.snapshots.Load(ctx, userID)
	if err == nil {
		return snapshot, nil
	}
	if !errors.Is(err, repository.ErrSnapshotNotFound) {
		return model.GamificationSnapshot{}, fmt.Errorf("failed to load snapshot: %w", err)
	}

	snapshot = gamification.NewSnapshot(userID, s.now())
	if err := s.snapshots.Save(ctx, snapshot); err != nil {
		return model.GamificationSnapshot{}, fmt.Errorf("failed to save initial snapshot: %w", err)
	}

	log.Info().Str("user_id", userID).Msg("Initialized gamification snapshot")
	return snapshot, nil
}

// AddProduct stores a new product and credits the add-product action.
// On a save failure the returned snapshot and events reflect the applied
// action; the caller owns the retry decision.
func (s *GamificationService) AddProduct(ctx context.Context, userID string, input model.ProductInput) (model.Product, model.GamificationSnapshot, []model.Event, error) {
	now := s.now()
	product := model.Product{
		ID:           uuid.New(),
		UserID:       userID,
		Name:         input.Name,
		Category:     input.Category,
		ExpiryDate:   input.ExpiryDate,
		Quantity:     input.Quantity,
		Notes:        input.Notes,
		ReminderDays: input.ReminderDays,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var (
		snapshot model.GamificationSnapshot
		events   []model.Event
	)
	err := s.userLock.WithLock(userID, func() error {
		stored, err := s.products.Create(ctx, product)
		if err != nil {
			return fmt.Errorf("failed to store product: %w", err)
		}
		product = stored

		snapshot, err = s.LoadOrInit(ctx, userID)
		if err != nil {
			return err
		}

		snapshot, events = s.engine.ApplyAction(snapshot, model.ActionAddProduct, product, false, now)
		return s.persistOutcome(ctx, snapshot, model.ActionAddProduct, events, "Product added")
	})
	if err != nil {
		return product, snapshot, events, err
	}

	return product, snapshot, events, nil
}

// MarkUsed removes a product from the active list and, when it is still
// before its expiry date, credits the mark-used action: points, level,
// statistics, streak and achievements. Marking an already expired product
// only removes it.
func (s *GamificationService) MarkUsed(ctx context.Context, userID string, productID uuid.UUID) (model.GamificationSnapshot, []model.Event, error) {
	now := s.now()

	var (
		snapshot model.GamificationSnapshot
		events   []model.Event
	)
	err := s.userLock.WithLock(userID, func() error {
		product, err := s.products.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if product.UserID != userID {
			return ErrProductNotOwned
		}

		remaining, err := s.products.GetByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to list products: %w", err)
		}
		hasOtherExpired := expiry.AnyOtherExpired(remaining, productID.String(), now)

		snapshot, err = s.LoadOrInit(ctx, userID)
		if err != nil {
			return err
		}

		if err := s.products.Delete(ctx, productID); err != nil {
			return fmt.Errorf("failed to remove product: %w", err)
		}

		snapshot, events = s.engine.ApplyAction(snapshot, model.ActionMarkUsedBeforeExpiry, product, hasOtherExpired, now)
		if len(events) == 0 {
			// Product was already expired: removal only, nothing to persist.
			return nil
		}
		return s.persistOutcome(ctx, snapshot, model.ActionMarkUsedBeforeExpiry, events, "Product saved before expiry")
	})
	if err != nil {
		return snapshot, events, err
	}

	return snapshot, events, nil
}

// ListProducts returns the user's tracked products, soonest expiry first.
func (s *GamificationService) ListProducts(ctx context.Context, userID string) ([]model.Product, error) {
	return s.products.GetByUser(ctx, userID)
}

// RecentAwards returns the most recent ledger entries for a user.
func (s *GamificationService) RecentAwards(ctx context.Context, userID string, limit int) ([]model.PointTransaction, error) {
	return s.ledger.GetRecent(ctx, userID, limit)
}

// persistOutcome saves the snapshot and appends the award to the ledger.
// The snapshot save failure propagates; a ledger failure is logged but
// does not fail the action, since the snapshot already carries the points.
func (s *GamificationService) persistOutcome(ctx context.Context, snapshot model.GamificationSnapshot, action model.ActionKind, events []model.Event, reason string) error {
	if err := s.snapshots.Save(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to persist snapshot: %w", err)
	}

	delta := 0
	for _, e := range events {
		if e.Kind == model.EventPoints {
			delta = e.Points
		}
	}
	if delta == 0 {
		return nil
	}

	_, err := s.ledger.Append(ctx, model.PointTransaction{
		ID:        uuid.New(),
		UserID:    snapshot.UserID,
		Action:    action,
		Points:    delta,
		Reason:    reason,
		CreatedAt: s.now(),
	})
	if err != nil {
		log.Error().Err(err).Str("user_id", snapshot.UserID).Msg("Failed to append point ledger entry")
	}

	return nil
}
