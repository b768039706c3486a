package repositories

import (
	"errors"

	"gudang/internal/models"
)

// ErrProductNotFound is returned when a product does not exist or
// belongs to a different user. Callers cannot tell the two cases apart,
// which keeps record existence from leaking across owners.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the interface for product data access.
// Records are append-only: the interface deliberately has no Update or
// Delete.
type ProductRepository interface {
	// ListByOwner returns the [offset, offset+limit) window of the
	// user's products ordered by creation time descending, plus the
	// total number of products the user owns.
	ListByOwner(userID string, limit, offset int) ([]models.Product, int64, error)
	// GetByID returns the product only if it exists and is owned by
	// the given user.
	GetByID(userID, id string) (*models.Product, error)
	Create(product *models.Product) error
}
