package repositories

import (
	"errors"

	"catalog/internal/models"
)

// ErrNotFound is returned when no product exists for the requested id.
var ErrNotFound = errors.New("product not found")

// ProductRepository defines the interface for product data access.
// GetAll and the finders return products ordered by ascending id so the
// service layer can intersect filter results deterministically.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id int64) (*models.Product, error)
	FindByName(name string) ([]models.Product, error)
	FindByCategory(category string) ([]models.Product, error)
	FindByPrice(maxPrice float64) ([]models.Product, error)
	FindByRating(minRating float64) ([]models.Product, error)
	FindByAvailability(available bool) ([]models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id int64) error
}
