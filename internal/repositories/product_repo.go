package repositories

import (
	"context"

	"klontong/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, input *models.CreateProductInput) (*models.Product, error)
	Update(ctx context.Context, id string, input *models.CreateProductInput) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}
