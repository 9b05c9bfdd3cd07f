package repositories

import (
	"context"
	"fmt"
	"net/url"

	"klontong/internal/models"
	"klontong/pkg/httpclient"
)

// RESTProductRepository is a ProductRepository over the REST backend.
type RESTProductRepository struct {
	client *httpclient.Client
}

// NewRESTProductRepository creates a new instance of RESTProductRepository.
func NewRESTProductRepository(client *httpclient.Client) *RESTProductRepository {
	return &RESTProductRepository{
		client: client,
	}
}

// GetAll returns all products.
func (r *RESTProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.client.Get(ctx, "/products", &products); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// GetByID returns a product by its ID.
func (r *RESTProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := r.client.Get(ctx, "/products/"+url.PathEscape(id), &product); err != nil {
		return nil, fmt.Errorf("failed to get product %s: %w", id, err)
	}
	return &product, nil
}

// Create adds a new product and returns the record the backend created.
func (r *RESTProductRepository) Create(ctx context.Context, input *models.CreateProductInput) (*models.Product, error) {
	var created models.Product
	if err := r.client.Post(ctx, "/products", input, &created); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &created, nil
}

// Update modifies an existing product and returns the updated record.
func (r *RESTProductRepository) Update(ctx context.Context, id string, input *models.CreateProductInput) (*models.Product, error) {
	var updated models.Product
	if err := r.client.Put(ctx, "/products/"+url.PathEscape(id), input, &updated); err != nil {
		return nil, fmt.Errorf("failed to update product %s: %w", id, err)
	}
	return &updated, nil
}

// Delete removes a product by its ID.
func (r *RESTProductRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Delete(ctx, "/products/"+url.PathEscape(id)); err != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, err)
	}
	return nil
}
