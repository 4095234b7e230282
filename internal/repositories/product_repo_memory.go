package repositories

import (
	"fmt"
	"sort"
	"sync"

	"catalog/internal/models"
)

// MemoryProductRepository is an in-memory implementation of ProductRepository.
// It mirrors the ordering guarantees of the GORM implementation and is used
// for local development and tests that do not need a database.
type MemoryProductRepository struct {
	products map[int64]models.Product
	nextID   int64
	mu       sync.RWMutex
}

// NewMemoryProductRepository creates a new instance of MemoryProductRepository.
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		products: make(map[int64]models.Product),
		nextID:   1,
	}
}

// GetAll returns all products ordered by id.
func (r *MemoryProductRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(models.Product) bool { return true }), nil
}

// GetByID returns a product by its id.
func (r *MemoryProductRepository) GetByID(id int64) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %d: %w", id, ErrNotFound)
	}
	return &product, nil
}

// FindByName returns all products with an exactly matching name.
func (r *MemoryProductRepository) FindByName(name string) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(p models.Product) bool { return p.Name == name }), nil
}

// FindByCategory returns all products in the given category.
func (r *MemoryProductRepository) FindByCategory(category string) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(p models.Product) bool { return p.Category == category }), nil
}

// FindByPrice returns all products priced at or below maxPrice.
func (r *MemoryProductRepository) FindByPrice(maxPrice float64) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(p models.Product) bool { return p.Price <= maxPrice }), nil
}

// FindByRating returns all products rated at or above minRating, excluding
// products that have never been rated.
func (r *MemoryProductRepository) FindByRating(minRating float64) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(p models.Product) bool {
		return p.Rating != nil && *p.Rating >= minRating
	}), nil
}

// FindByAvailability returns all products with the given availability.
func (r *MemoryProductRepository) FindByAvailability(available bool) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(p models.Product) bool { return p.Available == available }), nil
}

// Create adds a new product and assigns the next id.
func (r *MemoryProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextID
	r.nextID++
	product.ID = &id
	r.products[id] = *product
	return nil
}

// Update modifies an existing product.
func (r *MemoryProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == nil {
		return fmt.Errorf("update of product without id: %w", ErrNotFound)
	}
	if _, ok := r.products[*product.ID]; !ok {
		return fmt.Errorf("update of product %d: %w", *product.ID, ErrNotFound)
	}
	r.products[*product.ID] = *product
	return nil
}

// Delete removes a product by its id.
func (r *MemoryProductRepository) Delete(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return fmt.Errorf("delete of product %d: %w", id, ErrNotFound)
	}
	delete(r.products, id)
	return nil
}

// collect returns matching products ordered by id. Callers must hold the lock.
func (r *MemoryProductRepository) collect(match func(models.Product) bool) []models.Product {
	ids := make([]int64, 0, len(r.products))
	for id := range r.products {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	products := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		if p := r.products[id]; match(p) {
			products = append(products, p)
		}
	}
	return products
}
