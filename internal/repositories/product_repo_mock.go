package repositories

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"klontong/internal/models"
)

// MockProductRepository is an in-memory implementation of
// ProductRepository, used in tests and offline runs. It hands out
// crudcrud-style string ids.
type MockProductRepository struct {
	products map[string]models.Product
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
	}
}

// GetAll returns all products.
func (r *MockProductRepository) GetAll(_ context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		productList = append(productList, p)
	}
	return productList, nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(_ context.Context, id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %s not found", id)
	}
	return &product, nil
}

// Create adds a new product built from input.
func (r *MockProductRepository) Create(_ context.Context, input *models.CreateProductInput) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product := models.Product{
		MongoID:      uuid.New().String(),
		CategoryID:   input.CategoryID,
		CategoryName: input.CategoryName,
		SKU:          input.SKU,
		Name:         input.Name,
		Description:  input.Description,
		Weight:       input.Weight,
		Width:        input.Width,
		Length:       input.Length,
		Height:       input.Height,
		Image:        input.Image,
		Price:        input.Price,
	}
	r.products[product.MongoID] = product
	return &product, nil
}

// Update modifies an existing product.
func (r *MockProductRepository) Update(_ context.Context, id string, input *models.CreateProductInput) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %s not found for update", id)
	}

	product.CategoryID = input.CategoryID
	product.CategoryName = input.CategoryName
	product.SKU = input.SKU
	product.Name = input.Name
	product.Description = input.Description
	product.Weight = input.Weight
	product.Width = input.Width
	product.Length = input.Length
	product.Height = input.Height
	product.Image = input.Image
	product.Price = input.Price

	r.products[id] = product
	return &product, nil
}

// Delete removes a product by its ID.
func (r *MockProductRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.products[id]
	if !ok {
		return fmt.Errorf("product with ID %s not found for deletion", id)
	}
	delete(r.products, id)
	return nil
}
