package repositories

import (
	"context"
	"fmt"
	"net/url"

	"klontong/internal/models"
	"klontong/pkg/httpclient"
)

// RESTUserRepository is a UserRepository over the REST backend.
type RESTUserRepository struct {
	client *httpclient.Client
}

// NewRESTUserRepository creates a new instance of RESTUserRepository.
func NewRESTUserRepository(client *httpclient.Client) *RESTUserRepository {
	return &RESTUserRepository{
		client: client,
	}
}

// GetAll returns all users.
func (r *RESTUserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.client.Get(ctx, "/users", &users); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetByID returns a user by their ID.
func (r *RESTUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.client.Get(ctx, "/users/"+url.PathEscape(id), &user); err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", id, err)
	}
	return &user, nil
}

// Create registers a new user and returns the record the backend created.
func (r *RESTUserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	var created models.User
	if err := r.client.Post(ctx, "/users", user, &created); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &created, nil
}

// Update modifies an existing user and returns the updated record.
func (r *RESTUserRepository) Update(ctx context.Context, id string, patch *models.UserPatch) (*models.User, error) {
	var updated models.User
	if err := r.client.Put(ctx, "/users/"+url.PathEscape(id), patch, &updated); err != nil {
		return nil, fmt.Errorf("failed to update user %s: %w", id, err)
	}
	return &updated, nil
}

// Delete removes a user by their ID.
func (r *RESTUserRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Delete(ctx, "/users/"+url.PathEscape(id)); err != nil {
		return fmt.Errorf("failed to delete user %s: %w", id, err)
	}
	return nil
}
