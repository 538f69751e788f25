package memory

import (
	"context"
	"sort"
	"sync"

	"demo-app-api/internal/models"
	"demo-app-api/internal/repositories"
)

// UserRepository is an in-memory implementation of repositories.UserRepository
// for local development and tests.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]models.User
}

// NewUserRepository creates an empty in-memory user repository
func NewUserRepository() *UserRepository {
	return &UserRepository{
		users: make(map[string]models.User),
	}
}

// Put implements repositories.UserRepository.Put
func (r *UserRepository) Put(ctx context.Context, user *models.User) error {
	if err := user.Validate(); err != nil {
		return repositories.ValidationError(repositories.UserEntity, user.ID, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.users[user.ID] = *user
	return nil
}

// GetByID implements repositories.UserRepository.GetByID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, repositories.NotFoundError(repositories.UserEntity, id)
	}
	return &user, nil
}

// List implements repositories.UserRepository.List; results are ordered by creation time
func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*models.User, 0, len(r.users))
	for _, u := range r.users {
		user := u
		users = append(users, &user)
	}

	sort.Slice(users, func(i, j int) bool {
		if users[i].CreatedAt == users[j].CreatedAt {
			return users[i].ID < users[j].ID
		}
		return users[i].CreatedAt < users[j].CreatedAt
	})

	return users, nil
}

// Count implements repositories.UserRepository.Count
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.users)), nil
}
