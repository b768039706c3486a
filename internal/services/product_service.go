package services

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"gudang/internal/models"
	"gudang/internal/repositories"
	"gudang/pkg/rabbitmq"

	"github.com/google/uuid"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo     repositories.ProductRepository
	mqClient *rabbitmq.Client
}

// NewProductService creates a new ProductService. The RabbitMQ client
// may be nil, in which case created-product events are not published.
func NewProductService(repo repositories.ProductRepository, mqClient *rabbitmq.Client) *ProductService {
	return &ProductService{
		repo:     repo,
		mqClient: mqClient,
	}
}

// ListProducts retrieves the [offset, offset+limit) window of the
// user's products, newest first, along with the total number owned.
func (s *ProductService) ListProducts(userID string, limit, offset int) ([]models.Product, int64, error) {
	return s.repo.ListByOwner(userID, limit, offset)
}

// GetProductByID retrieves a single product scoped to its owner.
func (s *ProductService) GetProductByID(userID, id string) (*models.Product, error) {
	return s.repo.GetByID(userID, id)
}

// CreateProduct persists a new product for the user. The id and both
// timestamps are assigned here; records never change after this point,
// so createdAt and updatedAt share one value.
func (s *ProductService) CreateProduct(userID string, input *models.ProductInput) (*models.Product, error) {
	product := input.ToProduct(userID)
	product.ID = uuid.New().String()

	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	if err := s.repo.Create(product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.publishProductCreated(product)

	return product, nil
}

// publishProductCreated emits a product.created event. The create has
// already succeeded, so publish failures are logged and swallowed.
func (s *ProductService) publishProductCreated(product *models.Product) {
	if s.mqClient == nil {
		return
	}

	event := map[string]interface{}{
		"productId": product.ID,
		"ownerId":   product.UserID,
		"name":      product.Name,
		"createdAt": product.CreatedAt,
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal product.created event for %s: %v", product.ID, err)
		return
	}

	if err := s.mqClient.PublishProductCreated(body); err != nil {
		log.Printf("Warning: failed to publish product.created event for %s: %v", product.ID, err)
	}
}
