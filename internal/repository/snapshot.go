// Package repository provides data access layer implementations.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"expiryguard/internal/model"
)

// Common errors for repository operations.
var (
	ErrSnapshotNotFound = errors.New("gamification snapshot not found")
	ErrProductNotFound  = errors.New("product not found")
)

// SnapshotRepository persists gamification snapshots as one JSON document
// per user, loaded and saved atomically.
type SnapshotRepository struct {
	pool *pgxpool.Pool
}

// NewSnapshotRepository creates a new SnapshotRepository instance.
func NewSnapshotRepository(pool *pgxpool.Pool) *SnapshotRepository {
	return &SnapshotRepository{pool: pool}
}

// Load retrieves a user's snapshot. Returns ErrSnapshotNotFound when no
// snapshot exists; a stored document that no longer parses is treated the
// same way, so callers fall back to fresh initialization instead of
// failing hard.
func (r *SnapshotRepository) Load(ctx context.Context, userID string) (model.GamificationSnapshot, error) {
	const query = `SELECT data FROM gamification_snapshots WHERE user_id = $1`

	var raw []byte
	err := r.pool.QueryRow(ctx, query, userID).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.GamificationSnapshot{}, ErrSnapshotNotFound
		}
		return model.GamificationSnapshot{}, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var snapshot model.GamificationSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("Stored snapshot is malformed, treating as absent")
		return model.GamificationSnapshot{}, ErrSnapshotNotFound
	}
	if snapshot.UserID != userID {
		log.Warn().Str("user_id", userID).Str("stored_user_id", snapshot.UserID).
			Msg("Snapshot user mismatch, treating as absent")
		return model.GamificationSnapshot{}, ErrSnapshotNotFound
	}

	return snapshot, nil
}

// Save upserts a user's snapshot. Any failure propagates to the caller;
// the in-memory snapshot stays the source of truth until a save succeeds.
func (r *SnapshotRepository) Save(ctx context.Context, snapshot model.GamificationSnapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot: %w", err)
	}

	const query = `
		INSERT INTO gamification_snapshots (user_id, data, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET data = $2, updated_at = NOW()
	`
	if _, err := r.pool.Exec(ctx, query, snapshot.UserID, raw); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	return nil
}

// Delete removes a user's snapshot. Used on account teardown.
func (r *SnapshotRepository) Delete(ctx context.Context, userID string) error {
	const query = `DELETE FROM gamification_snapshots WHERE user_id = $1`

	result, err := r.pool.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrSnapshotNotFound
	}
	return nil
}
