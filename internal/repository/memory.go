package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"expiryguard/internal/model"
)

// MemorySnapshotRepository is an in-memory SnapshotRepository counterpart
// for tests and offline use.
type MemorySnapshotRepository struct {
	mu        sync.RWMutex
	snapshots map[string]model.GamificationSnapshot
}

// NewMemorySnapshotRepository creates an empty in-memory snapshot store.
func NewMemorySnapshotRepository() *MemorySnapshotRepository {
	return &MemorySnapshotRepository{snapshots: make(map[string]model.GamificationSnapshot)}
}

// Load retrieves a user's snapshot.
func (r *MemorySnapshotRepository) Load(_ context.Context, userID string) (model.GamificationSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot, ok := r.snapshots[userID]
	if !ok {
		return model.GamificationSnapshot{}, ErrSnapshotNotFound
	}
	return snapshot, nil
}

// Save upserts a user's snapshot.
func (r *MemorySnapshotRepository) Save(_ context.Context, snapshot model.GamificationSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.snapshots[snapshot.UserID] = snapshot
	return nil
}

// MemoryProductRepository is an in-memory ProductRepository counterpart.
type MemoryProductRepository struct {
	mu       sync.RWMutex
	products map[uuid.UUID]model.Product
}

// NewMemoryProductRepository creates an empty in-memory product store.
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{products: make(map[uuid.UUID]model.Product)}
}

// Create inserts a new product.
func (r *MemoryProductRepository) Create(_ context.Context, p model.Product) (model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products[p.ID] = p
	return p, nil
}

// GetByID retrieves a product by id.
func (r *MemoryProductRepository) GetByID(_ context.Context, id uuid.UUID) (model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return model.Product{}, ErrProductNotFound
	}
	return p, nil
}

// GetByUser retrieves all products tracked by a user, soonest expiry first.
func (r *MemoryProductRepository) GetByUser(_ context.Context, userID string) ([]model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var products []model.Product
	for _, p := range r.products {
		if p.UserID == userID {
			products = append(products, p)
		}
	}
	sortByExpiry(products)
	return products, nil
}

// GetAll retrieves every tracked product.
func (r *MemoryProductRepository) GetAll(_ context.Context) ([]model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		products = append(products, p)
	}
	sortByExpiry(products)
	return products, nil
}

// Delete removes a product.
func (r *MemoryProductRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

// MemoryPointLedger is an in-memory PointLedgerRepository counterpart.
type MemoryPointLedger struct {
	mu           sync.RWMutex
	transactions []model.PointTransaction
}

// NewMemoryPointLedger creates an empty in-memory ledger.
func NewMemoryPointLedger() *MemoryPointLedger {
	return &MemoryPointLedger{}
}

// Append records one point award.
func (r *MemoryPointLedger) Append(_ context.Context, tx model.PointTransaction) (model.PointTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.transactions = append(r.transactions, tx)
	return tx, nil
}

// GetRecent retrieves the most recent point awards for a user, newest first.
func (r *MemoryPointLedger) GetRecent(_ context.Context, userID string, limit int) ([]model.PointTransaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var recent []model.PointTransaction
	for i := len(r.transactions) - 1; i >= 0 && len(recent) < limit; i-- {
		if r.transactions[i].UserID == userID {
			recent = append(recent, r.transactions[i])
		}
	}
	return recent, nil
}

// TotalPoints sums every award in a user's ledger.
func (r *MemoryPointLedger) TotalPoints(_ context.Context, userID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := 0
	for _, tx := range r.transactions {
		if tx.UserID == userID {
			total += tx.Points
		}
	}
	return total, nil
}

func sortByExpiry(products []model.Product) {
	sort.Slice(products, func(i, j int) bool {
		return products[i].ExpiryDate.Before(products[j].ExpiryDate)
	})
}
