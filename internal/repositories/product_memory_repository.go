package repositories

import (
	"fmt"
	"sort"
	"sync"

	"gudang/internal/models"
)

// MemoryProductRepository is the in-memory implementation of
// ProductRepository, used when no database is configured. Nothing
// survives a process restart.
//
// Records are prepended, so the backing slice stays newest-first and
// products with equal timestamps resolve to the most recently inserted
// one.
type MemoryProductRepository struct {
	mu       sync.RWMutex
	products []models.Product
}

// NewMemoryProductRepository creates an empty in-memory store.
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		products: make([]models.Product, 0),
	}
}

// ListByOwner returns the requested window of the user's products,
// newest first, along with the total count of products the user owns.
func (r *MemoryProductRepository) ListByOwner(userID string, limit, offset int) ([]models.Product, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owned := make([]models.Product, 0)
	for _, p := range r.products {
		if p.UserID == userID {
			owned = append(owned, p)
		}
	}
	// Stable sort over a newest-first slice keeps insertion recency as
	// the tie-break for equal timestamps.
	sort.SliceStable(owned, func(i, j int) bool {
		return owned[i].CreatedAt.After(owned[j].CreatedAt)
	})

	total := int64(len(owned))
	if offset >= len(owned) {
		return []models.Product{}, total, nil
	}
	end := offset + limit
	if end > len(owned) {
		end = len(owned)
	}

	window := make([]models.Product, end-offset)
	copy(window, owned[offset:end])
	return window, total, nil
}

// GetByID returns the product only if it belongs to the given user.
func (r *MemoryProductRepository) GetByID(userID, id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.ID == id && p.UserID == userID {
			product := p
			return &product, nil
		}
	}
	return nil, fmt.Errorf("product with ID %s: %w", id, ErrProductNotFound)
}

// Create adds a new product at the front of the store.
func (r *MemoryProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products = append([]models.Product{*product}, r.products...)
	return nil
}
