package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"expiryguard/internal/model"
)

// PointLedgerRepository appends and queries the point award history.
type PointLedgerRepository struct {
	pool *pgxpool.Pool
}

// NewPointLedgerRepository creates a new PointLedgerRepository instance.
func NewPointLedgerRepository(pool *pgxpool.Pool) *PointLedgerRepository {
	return &PointLedgerRepository{pool: pool}
}

// Append records one point award.
func (r *PointLedgerRepository) Append(ctx context.Context, tx model.PointTransaction) (model.PointTransaction, error) {
	const query = `
		INSERT INTO point_transactions (id, user_id, action, points, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := r.pool.QueryRow(ctx, query,
		tx.ID.String(), tx.UserID, string(tx.Action), tx.Points, tx.Reason, tx.CreatedAt,
	).Scan(&tx.CreatedAt)
	if err != nil {
		return model.PointTransaction{}, fmt.Errorf("failed to append point transaction: %w", err)
	}

	return tx, nil
}

// GetRecent retrieves the most recent point awards for a user, newest first.
func (r *PointLedgerRepository) GetRecent(ctx context.Context, userID string, limit int) ([]model.PointTransaction, error) {
	const query = `
		SELECT id, user_id, action, points, reason, created_at
		FROM point_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get point transactions: %w", err)
	}
	defer rows.Close()

	var transactions []model.PointTransaction
	for rows.Next() {
		var (
			tx     model.PointTransaction
			id     string
			action string
		)
		if err := rows.Scan(&id, &tx.UserID, &action, &tx.Points, &tx.Reason, &tx.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan point transaction: %w", err)
		}

		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("invalid transaction id %q: %w", id, err)
		}
		tx.ID = parsed
		tx.Action = model.ActionKind(action)
		transactions = append(transactions, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating point transactions: %w", err)
	}

	return transactions, nil
}

// TotalPoints sums every award in a user's ledger. The snapshot's
// ecoPoints is authoritative; this is the cross-check path.
func (r *PointLedgerRepository) TotalPoints(ctx context.Context, userID string) (int, error) {
	const query = `
		SELECT COALESCE(SUM(points), 0)
		FROM point_transactions
		WHERE user_id = $1
	`

	var total int
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum point transactions: %w", err)
	}
	return total, nil
}
