package repositories

import (
	"errors"
	"fmt"

	"gudang/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMProductRepository is the relational implementation of
// ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// ListByOwner retrieves the requested window of the user's products,
// newest first, plus the non-windowed total.
func (r *GORMProductRepository) ListByOwner(userID string, limit, offset int) ([]models.Product, int64, error) {
	var products []models.Product
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&products).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}

	var total int64
	err = r.db.Model(&models.Product{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	if products == nil {
		products = make([]models.Product, 0)
	}
	return products, total, nil
}

// GetByID retrieves a single product scoped to its owner.
func (r *GORMProductRepository) GetByID(userID, id string) (*models.Product, error) {
	var product models.Product
	err := r.db.First(&product, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product with ID %s: %w", id, ErrProductNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// Create inserts the product after making sure an owner row exists.
// The owner upsert is idempotent, so concurrent creates for the same
// user are safe.
func (r *GORMProductRepository) Create(product *models.Product) error {
	owner := models.User{ID: product.UserID}
	if err := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&owner).Error; err != nil {
		return fmt.Errorf("failed to ensure owner %s: %w", product.UserID, err)
	}

	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}
