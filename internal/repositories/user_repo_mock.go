package repositories

import (
	"context"
	"fmt"
	"sync"

	"klontong/internal/models"
)

// MockUserRepository is an in-memory implementation of UserRepository,
// used in tests and offline runs. It hands out json-server style numeric
// ids.
type MockUserRepository struct {
	users  map[string]models.User
	nextID int64
	mu     sync.RWMutex
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users:  make(map[string]models.User),
		nextID: 1,
	}
}

// GetAll returns all users.
func (r *MockUserRepository) GetAll(_ context.Context) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	userList := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		userList = append(userList, u)
	}
	return userList, nil
}

// GetByID returns a user by their ID.
func (r *MockUserRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user with ID %s not found", id)
	}
	return &user, nil
}

// Create adds a new user.
func (r *MockUserRepository) Create(_ context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := *user
	created.ID = models.NumericID(r.nextID)
	r.nextID++
	r.users[created.ID.String()] = created
	return &created, nil
}

// Update modifies an existing user.
func (r *MockUserRepository) Update(_ context.Context, id string, patch *models.UserPatch) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user with ID %s not found for update", id)
	}
	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	r.users[id] = user
	return &user, nil
}

// Delete removes a user by their ID.
func (r *MockUserRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.users[id]
	if !ok {
		return fmt.Errorf("user with ID %s not found for deletion", id)
	}
	delete(r.users, id)
	return nil
}
