package services

import (
	"errors"
	"fmt"
	"math"

	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/pkg/events"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// ErrNotAcceptable marks a targeted field-update payload that is structurally
// wrong: missing key, null value, or the wrong type. Handlers map it to 406.
var ErrNotAcceptable = errors.New("payload not acceptable")

// ErrFilterNotAcceptable marks a list filter whose value is outside its legal
// range (negative price, rating outside [1,5]).
var ErrFilterNotAcceptable = errors.New("filter value not acceptable")

// ProductFilters carries the optional query filters of a list request.
// A nil field does not narrow the result.
type ProductFilters struct {
	Name      *string
	Category  *string
	Price     *float64
	Rating    *float64
	Available *bool
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher *events.Publisher
	validate  *validator.Validate
	log       zerolog.Logger
}

// NewProductService creates a new ProductService. The publisher may be nil,
// in which case no events are emitted.
func NewProductService(repo repositories.ProductRepository, publisher *events.Publisher, log zerolog.Logger) *ProductService {
	return &ProductService{
		repo:      repo,
		publisher: publisher,
		validate:  validator.New(),
		log:       log,
	}
}

// ListProducts retrieves all products matching the given filters.
//
// Each active filter independently selects a subset of the full collection via
// the repository; the result is the intersection of those subsets, in the
// order of the full collection. Filters combine with AND semantics.
func (s *ProductService) ListProducts(filters ProductFilters) ([]models.Product, error) {
	results, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}

	if filters.Name != nil {
		subset, err := s.repo.FindByName(*filters.Name)
		if err != nil {
			return nil, err
		}
		results = intersect(results, subset)
	}
	if filters.Category != nil {
		subset, err := s.repo.FindByCategory(*filters.Category)
		if err != nil {
			return nil, err
		}
		results = intersect(results, subset)
	}
	if filters.Price != nil {
		if *filters.Price < models.MinPrice {
			return nil, fmt.Errorf("price filter must not be negative: %w", ErrFilterNotAcceptable)
		}
		subset, err := s.repo.FindByPrice(*filters.Price)
		if err != nil {
			return nil, err
		}
		results = intersect(results, subset)
	}
	if filters.Rating != nil {
		if *filters.Rating < 1 || *filters.Rating > 5 {
			return nil, fmt.Errorf("rating filter must be in [1,5]: %w", ErrFilterNotAcceptable)
		}
		subset, err := s.repo.FindByRating(*filters.Rating)
		if err != nil {
			return nil, err
		}
		results = intersect(results, subset)
	}
	if filters.Available != nil {
		subset, err := s.repo.FindByAvailability(*filters.Available)
		if err != nil {
			return nil, err
		}
		results = intersect(results, subset)
	}

	return results, nil
}

// GetProduct retrieves a single product by its id.
func (s *ProductService) GetProduct(id int64) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct builds a product from an untyped payload, validates it and
// persists it. The repository assigns the id.
func (s *ProductService) CreateProduct(raw map[string]any) (*models.Product, error) {
	product := &models.Product{}
	if err := product.Deserialize(raw); err != nil {
		return nil, err
	}
	if err := product.Validate(s.validate); err != nil {
		return nil, err
	}
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	s.publish(events.ProductCreated, product.ID)
	return product, nil
}

// UpdateProduct replaces all fields of an existing product from an untyped
// payload. The path id wins over any id carried in the body.
func (s *ProductService) UpdateProduct(id int64, raw map[string]any) (*models.Product, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	product := &models.Product{}
	if err := product.Deserialize(raw); err != nil {
		return nil, err
	}
	if err := product.Validate(s.validate); err != nil {
		return nil, err
	}
	product.ID = existing.ID

	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	s.publish(events.ProductUpdated, product.ID)
	return product, nil
}

// DeleteProduct removes a product. Deleting an id that does not exist is a
// successful no-op.
func (s *ProductService) DeleteProduct(id int64) error {
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil
		}
		return err
	}
	s.publish(events.ProductDeleted, &id)
	return nil
}

// UpdateRating folds one submitted score into the product's running mean.
// The payload must carry an integer "rating" in [1,5]; anything else is not
// acceptable. The range check lives here, once, before the fold runs.
func (s *ProductService) UpdateRating(id int64, payload map[string]any) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	score, err := intField(payload, "rating")
	if err != nil {
		return nil, err
	}
	if score < 1 || score > 5 {
		return nil, fmt.Errorf("rating must be in [1,5]: %w", ErrNotAcceptable)
	}

	product.ApplyRating(score)
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	s.publish(events.ProductRatingUpdated, product.ID)
	return product, nil
}

// UpdatePrice sets a new price on an existing product. A missing or non-numeric
// price is not acceptable; a numeric price outside [MinPrice, MaxPrice] fails
// full validation instead.
func (s *ProductService) UpdatePrice(id int64, payload map[string]any) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	price, err := floatField(payload, "price")
	if err != nil {
		return nil, err
	}

	product.Price = price
	if err := product.Validate(s.validate); err != nil {
		return nil, err
	}
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	s.publish(events.ProductUpdated, product.ID)
	return product, nil
}

// UpdateDescription sets a new description on an existing product.
func (s *ProductService) UpdateDescription(id int64, payload map[string]any) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	description, err := stringField(payload, "description")
	if err != nil {
		return nil, err
	}
	if len(description) > models.MaxDescriptionLength {
		return nil, fmt.Errorf("description longer than %d characters: %w", models.MaxDescriptionLength, ErrNotAcceptable)
	}

	product.Description = description
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	s.publish(events.ProductUpdated, product.ID)
	return product, nil
}

// UpdateCategory sets a new category on an existing product.
func (s *ProductService) UpdateCategory(id int64, payload map[string]any) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	category, err := stringField(payload, "category")
	if err != nil {
		return nil, err
	}
	if len(category) > models.MaxCategoryLength {
		return nil, fmt.Errorf("category longer than %d characters: %w", models.MaxCategoryLength, ErrNotAcceptable)
	}

	product.Category = category
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	s.publish(events.ProductUpdated, product.ID)
	return product, nil
}

// publish emits a product event. Publishing is best-effort: a broker failure
// is logged and never fails the request.
func (s *ProductService) publish(event string, id *int64) {
	if id == nil {
		return
	}
	if err := s.publisher.PublishProductEvent(event, *id); err != nil {
		s.log.Warn().Err(err).Str("event", event).Int64("product_id", *id).Msg("failed to publish product event")
	}
}

// intersect keeps the elements of results whose id also appears in subset,
// preserving the order of results.
func intersect(results, subset []models.Product) []models.Product {
	ids := make(map[int64]struct{}, len(subset))
	for _, p := range subset {
		if p.ID != nil {
			ids[*p.ID] = struct{}{}
		}
	}

	kept := make([]models.Product, 0, len(results))
	for _, p := range results {
		if p.ID == nil {
			continue
		}
		if _, ok := ids[*p.ID]; ok {
			kept = append(kept, p)
		}
	}
	return kept
}

func floatField(payload map[string]any, field string) (float64, error) {
	raw, ok := payload[field]
	if !ok || raw == nil {
		return 0, fmt.Errorf("%s is required: %w", field, ErrNotAcceptable)
	}
	switch value := raw.(type) {
	case float64:
		return value, nil
	case int:
		return float64(value), nil
	case int64:
		return float64(value), nil
	default:
		return 0, fmt.Errorf("%s must be a number: %w", field, ErrNotAcceptable)
	}
}

// intField reads a whole number. JSON carries every number as a float, so a
// fractional part is what distinguishes 4 from 4.5 here.
func intField(payload map[string]any, field string) (int, error) {
	value, err := floatField(payload, field)
	if err != nil {
		return 0, err
	}
	if value != math.Trunc(value) {
		return 0, fmt.Errorf("%s must be an integer: %w", field, ErrNotAcceptable)
	}
	return int(value), nil
}

func stringField(payload map[string]any, field string) (string, error) {
	raw, ok := payload[field]
	if !ok || raw == nil {
		return "", fmt.Errorf("%s is required: %w", field, ErrNotAcceptable)
	}
	value, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string: %w", field, ErrNotAcceptable)
	}
	return value, nil
}
