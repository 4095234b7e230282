package repositories

import (
	"errors"
	"fmt"

	"catalog/internal/models"

	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves all products ordered by id.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its id.
func (r *GORMProductRepository) GetByID(id int64) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return &product, nil
}

// FindByName retrieves all products with an exactly matching name.
func (r *GORMProductRepository) FindByName(name string) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Order("id").Find(&products, "name = ?", name).Error; err != nil {
		return nil, fmt.Errorf("failed to find products by name: %w", err)
	}
	return products, nil
}

// FindByCategory retrieves all products in the given category.
func (r *GORMProductRepository) FindByCategory(category string) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Order("id").Find(&products, "category = ?", category).Error; err != nil {
		return nil, fmt.Errorf("failed to find products by category: %w", err)
	}
	return products, nil
}

// FindByPrice retrieves all products priced at or below maxPrice.
func (r *GORMProductRepository) FindByPrice(maxPrice float64) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Order("id").Find(&products, "price <= ?", maxPrice).Error; err != nil {
		return nil, fmt.Errorf("failed to find products by price: %w", err)
	}
	return products, nil
}

// FindByRating retrieves all products rated at or above minRating.
// Products that have never been rated are excluded.
func (r *GORMProductRepository) FindByRating(minRating float64) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Order("id").Find(&products, "rating IS NOT NULL AND rating >= ?", minRating).Error; err != nil {
		return nil, fmt.Errorf("failed to find products by rating: %w", err)
	}
	return products, nil
}

// FindByAvailability retrieves all products with the given availability.
func (r *GORMProductRepository) FindByAvailability(available bool) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Order("id").Find(&products, "available = ?", available).Error; err != nil {
		return nil, fmt.Errorf("failed to find products by availability: %w", err)
	}
	return products, nil
}

// Create inserts a new product. GORM assigns the id on insert.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update saves an existing product.
func (r *GORMProductRepository) Update(product *models.Product) error {
	// An explicit UPDATE rather than Save: Save falls back to an upsert when
	// the row is missing, which would insert instead of reporting not found.
	// Select("*") keeps zero values like available=false in the write.
	res := r.db.Model(&models.Product{}).Where("id = ?", product.ID).Select("*").Updates(product)
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("update of product %v: %w", product.ID, ErrNotFound)
	}
	return nil
}

// Delete removes a product by its id.
func (r *GORMProductRepository) Delete(id int64) error {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete of product %d: %w", id, ErrNotFound)
	}
	return nil
}
