package repositories

import (
	"context"

	"klontong/internal/models"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	GetAll(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	Update(ctx context.Context, id string, patch *models.UserPatch) (*models.User, error)
	Delete(ctx context.Context, id string) error
}
