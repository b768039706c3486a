package handlers

import (
	"errors"
	"fmt"
	"log"
	"reflect"
	"strconv"
	"strings"

	"gudang/internal/models"
	"gudang/internal/repositories"
	"gudang/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	validate := validator.New()
	// Report validation errors under the JSON field names the client sent.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &ProductHandler{
		service:  service,
		validate: validate,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	// Any other method on these paths is unsupported.
	productRoutes.All("/", handleMethodNotAllowed)
	productRoutes.All("/:id", handleMethodNotAllowed)
}

func handleMethodNotAllowed(c *fiber.Ctx) error {
	return c.Status(fiber.StatusMethodNotAllowed).JSON(fiber.Map{
		"error": "Method not allowed",
	})
}

// ownerID reads the caller identity stored by the identity middleware.
func ownerID(c *fiber.Ctx) string {
	if id, ok := c.Locals("user_id").(string); ok {
		return id
	}
	return ""
}

// HandleListProducts returns a window of the caller's products.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	userID := ownerID(c)

	limit, offset, details := parseListQuery(c)
	if len(details) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid query",
			"details": details,
		})
	}

	items, total, err := h.service.ListProducts(userID, limit, offset)
	if err != nil {
		log.Printf("Error listing products for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal Server Error",
		})
	}

	return c.JSON(fiber.Map{
		"items":  items,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

// parseListQuery coerces the limit and offset query parameters,
// applying defaults when they are absent. Out-of-range or
// non-numeric values are reported per field.
func parseListQuery(c *fiber.Ctx) (limit, offset int, details map[string]string) {
	details = make(map[string]string)

	limit = defaultLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxLimit {
			details["limit"] = fmt.Sprintf("must be an integer between 1 and %d", maxLimit)
		} else {
			limit = n
		}
	}

	offset = 0
	if raw := c.Query("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			details["offset"] = "must be a non-negative integer"
		} else {
			offset = n
		}
	}

	return limit, offset, details
}

// HandleCreateProduct creates a new product owned by the caller.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	userID := ownerID(c)

	var input models.ProductInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing create product body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if details := h.validateInput(&input); len(details) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid input",
			"details": details,
		})
	}

	product, err := h.service.CreateProduct(userID, &input)
	if err != nil {
		log.Printf("Error creating product for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal Server Error",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": product.ID})
}

// validateInput checks the payload against the product schema and
// returns per-field error details. The warranty range is checked by
// hand because FlexInt carries its own presence flag.
func (h *ProductHandler) validateInput(input *models.ProductInput) map[string]string {
	details := make(map[string]string)

	if err := h.validate.Struct(input); err != nil {
		for _, e := range err.(validator.ValidationErrors) {
			details[e.Field()] = fmt.Sprintf("failed on the '%s' rule", e.Tag())
		}
	}

	if m := input.WarrantyPeriodMonths; m.Set && (m.Value < 0 || m.Value > 120) {
		details["warrantyPeriodMonths"] = "must be between 0 and 120"
	}

	return details
}

// HandleGetProductByID returns a single product owned by the caller.
// A foreign-owned id gets the same 404 as a missing one.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	userID := ownerID(c)
	id := c.Params("id")

	product, err := h.service.GetProductByID(userID, id)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Not found",
			})
		}
		log.Printf("Error getting product %s for user %s: %v", id, userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal Server Error",
		})
	}

	return c.JSON(product)
}
