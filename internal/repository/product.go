package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"expiryguard/internal/model"
)

// ProductRepository handles tracked-product persistence.
type ProductRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository creates a new ProductRepository instance.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

const productColumns = `id, user_id, name, category, expiry_date, quantity, notes, reminder_days, created_at, updated_at`

// Create inserts a new product and returns the stored record.
func (r *ProductRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	const query = `
		INSERT INTO products (id, user_id, name, category, expiry_date, quantity, notes, reminder_days, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + productColumns

	row := r.pool.QueryRow(ctx, query,
		p.ID.String(), p.UserID, p.Name, string(p.Category), p.ExpiryDate,
		p.Quantity, p.Notes, toInt64s(p.ReminderDays), p.CreatedAt, p.UpdatedAt,
	)

	stored, err := scanProduct(row)
	if err != nil {
		return model.Product{}, fmt.Errorf("failed to create product: %w", err)
	}
	return stored, nil
}

// GetByID retrieves a product by id.
// Returns ErrProductNotFound if it does not exist.
func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	p, err := scanProduct(r.pool.QueryRow(ctx, query, id.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Product{}, ErrProductNotFound
		}
		return model.Product{}, fmt.Errorf("failed to get product: %w", err)
	}
	return p, nil
}

// GetByUser retrieves all products tracked by a user, soonest expiry first.
func (r *ProductRepository) GetByUser(ctx context.Context, userID string) ([]model.Product, error) {
	const query = `
		SELECT ` + productColumns + `
		FROM products
		WHERE user_id = $1
		ORDER BY expiry_date ASC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// GetAll retrieves every tracked product across users. The reminder
// scheduler scans this read-only.
func (r *ProductRepository) GetAll(ctx context.Context) ([]model.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products ORDER BY expiry_date ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// Delete removes a product from the active list.
// Returns ErrProductNotFound if it does not exist.
func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM products WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}

// scanProduct reads one product row from either a pgx.Row or pgx.Rows.
func scanProduct(row pgx.Row) (model.Product, error) {
	var (
		p            model.Product
		id           string
		category     string
		reminderDays []int64
	)

	err := row.Scan(
		&id,
		&p.UserID,
		&p.Name,
		&category,
		&p.ExpiryDate,
		&p.Quantity,
		&p.Notes,
		&reminderDays,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return model.Product{}, err
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return model.Product{}, fmt.Errorf("invalid product id %q: %w", id, err)
	}
	p.ID = parsed
	p.Category = model.ProductCategory(category)
	p.ReminderDays = toInts(reminderDays)
	return p, nil
}

func toInt64s(days []int) []int64 {
	if days == nil {
		return nil
	}
	out := make([]int64, len(days))
	for i, d := range days {
		out[i] = int64(d)
	}
	return out
}

func toInts(days []int64) []int {
	if days == nil {
		return nil
	}
	out := make([]int, len(days))
	for i, d := range days {
		out[i] = int(d)
	}
	return out
}
