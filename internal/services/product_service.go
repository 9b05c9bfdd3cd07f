package services

import (
	"context"

	"klontong/internal/models"
	"klontong/internal/repositories"
	"klontong/pkg/query"
)

// productsCacheKey caches the full product list.
const productsCacheKey = "products"

func productCacheKey(id string) string {
	return "products/" + id
}

// ProductService is the screens' data layer for products. Reads go through
// the query cache to avoid redundant repository calls; mutations hit the
// repository directly and invalidate the affected cache keys.
type ProductService struct {
	repo  repositories.ProductRepository
	cache *query.Client
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, cache *query.Client) *ProductService {
	return &ProductService{
		repo:  repo,
		cache: cache,
	}
}

// GetAllProducts retrieves all products, served from cache while fresh.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	return query.Fetch(ctx, s.cache, productsCacheKey, s.repo.GetAll)
}

// GetProductByID retrieves a single product, served from cache while fresh.
func (s *ProductService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	return query.Fetch(ctx, s.cache, productCacheKey(id), func(ctx context.Context) (*models.Product, error) {
		return s.repo.GetByID(ctx, id)
	})
}

// CreateProduct creates a new product and invalidates the product list.
func (s *ProductService) CreateProduct(ctx context.Context, input *models.CreateProductInput) (*models.Product, error) {
	created, err := s.repo.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(productsCacheKey)
	return created, nil
}

// UpdateProduct updates an existing product and invalidates its cached
// entries.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, input *models.CreateProductInput) (*models.Product, error) {
	updated, err := s.repo.Update(ctx, id, input)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(productsCacheKey, productCacheKey(id))
	return updated, nil
}

// DeleteProduct deletes a product and invalidates its cached entries.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(productsCacheKey, productCacheKey(id))
	return nil
}
