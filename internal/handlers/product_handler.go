package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"catalog/internal/middleware"
	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
	log     zerolog.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, log zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		log:     log,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	products := router.Group("/products")
	products.Get("/", h.HandleListProducts)
	products.Post("/", middleware.RequireJSON(), h.HandleCreateProduct)
	products.Get("/:id", h.HandleGetProduct)
	products.Put("/:id", middleware.RequireJSON(), h.HandleUpdateProduct)
	products.Delete("/:id", h.HandleDeleteProduct)
	products.Put("/:id/rating", middleware.RequireJSON(), h.HandleUpdateRating)
	products.Put("/:id/price", middleware.RequireJSON(), h.HandleUpdatePrice)
	products.Put("/:id/description", middleware.RequireJSON(), h.HandleUpdateDescription)
	products.Put("/:id/category", middleware.RequireJSON(), h.HandleUpdateCategory)
}

// HandleListProducts retrieves all products matching the query filters.
// Filters combine with AND semantics; an absent parameter does not narrow
// the result.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	var filters services.ProductFilters

	if name := c.Query("name"); name != "" {
		filters.Name = &name
	}
	if category := c.Query("category"); category != "" {
		filters.Category = &category
	}
	if raw := c.Query("price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "price filter must be a number",
			})
		}
		filters.Price = &price
	}
	if raw := c.Query("rating"); raw != "" {
		rating, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "rating filter must be a number",
			})
		}
		filters.Rating = &rating
	}
	if raw := c.Query("available"); raw != "" {
		available, err := strconv.ParseBool(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "available filter must be a boolean",
			})
		}
		filters.Available = &available
	}

	products, err := h.service.ListProducts(filters)
	if err != nil {
		return h.respondError(c, err)
	}
	if products == nil {
		products = []models.Product{}
	}
	h.log.Info().Int("count", len(products)).Msg("returning product list")
	return c.JSON(products)
}

// HandleGetProduct retrieves a single product by its id.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	id, ok := h.productID(c)
	if !ok {
		return h.notFound(c)
	}

	product, err := h.service.GetProduct(id)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a new product from the posted JSON body and
// reports its URL in the Location header.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	raw, err := h.parseBody(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	product, err := h.service.CreateProduct(raw)
	if err != nil {
		return h.respondError(c, err)
	}

	h.log.Info().Int64("product_id", *product.ID).Msg("product created")
	c.Set(fiber.HeaderLocation, fmt.Sprintf("/api/products/%d", *product.ID))
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct replaces all fields of an existing product. The id in
// the path wins over any id carried in the body.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, ok := h.productID(c)
	if !ok {
		return h.notFound(c)
	}

	raw, err := h.parseBody(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	product, err := h.service.UpdateProduct(id, raw)
	if err != nil {
		return h.respondError(c, err)
	}
	h.log.Info().Int64("product_id", id).Msg("product updated")
	return c.JSON(product)
}

// HandleDeleteProduct deletes a product. The operation is idempotent and
// responds 204 whether or not the product existed.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, ok := h.productID(c)
	if !ok {
		// Unknown ids are a successful no-op for delete, malformed ones too.
		return c.SendStatus(fiber.StatusNoContent)
	}

	if err := h.service.DeleteProduct(id); err != nil {
		return h.respondError(c, err)
	}
	h.log.Info().Int64("product_id", id).Msg("product delete complete")
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleUpdateRating folds a submitted score into the product's rating.
func (h *ProductHandler) HandleUpdateRating(c *fiber.Ctx) error {
	return h.handleFieldUpdate(c, "rating", h.service.UpdateRating)
}

// HandleUpdatePrice updates the price of a product.
func (h *ProductHandler) HandleUpdatePrice(c *fiber.Ctx) error {
	return h.handleFieldUpdate(c, "price", h.service.UpdatePrice)
}

// HandleUpdateDescription updates the description of a product.
func (h *ProductHandler) HandleUpdateDescription(c *fiber.Ctx) error {
	return h.handleFieldUpdate(c, "description", h.service.UpdateDescription)
}

// HandleUpdateCategory updates the category of a product.
func (h *ProductHandler) HandleUpdateCategory(c *fiber.Ctx) error {
	return h.handleFieldUpdate(c, "category", h.service.UpdateCategory)
}

// handleFieldUpdate is the shared flow of all targeted field updates: resolve
// the product, hand the raw payload to the service operation, map the outcome.
func (h *ProductHandler) handleFieldUpdate(c *fiber.Ctx, field string, update func(int64, map[string]any) (*models.Product, error)) error {
	id, ok := h.productID(c)
	if !ok {
		return h.notFound(c)
	}

	raw, err := h.parseBody(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	product, err := update(id, raw)
	if err != nil {
		return h.respondError(c, err)
	}
	h.log.Info().Int64("product_id", id).Str("field", field).Msg("product field updated")
	return c.JSON(product)
}

// productID parses the id path parameter. Non-numeric ids never match a
// product, so callers treat them as not found.
func (h *ProductHandler) productID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func (h *ProductHandler) notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"message": fmt.Sprintf("Product with id '%s' was not found.", c.Params("id")),
	})
}

func (h *ProductHandler) parseBody(c *fiber.Ctx) (map[string]any, error) {
	var raw map[string]any
	if err := c.BodyParser(&raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// respondError maps domain errors to HTTP status codes.
func (h *ProductHandler) respondError(c *fiber.Ctx, err error) error {
	var validationErr *models.ValidationError
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": fmt.Sprintf("Product with id '%s' was not found.", c.Params("id")),
		})
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "The posted product data was not valid",
			"error":   validationErr.Error(),
		})
	case errors.Is(err, services.ErrNotAcceptable), errors.Is(err, services.ErrFilterNotAcceptable):
		return c.Status(fiber.StatusNotAcceptable).JSON(fiber.Map{
			"message": err.Error(),
		})
	default:
		h.log.Error().Err(err).Msg("storage operation failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal server error",
			"error":   err.Error(),
		})
	}
}
