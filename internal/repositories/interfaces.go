package repositories

import (
	"context"

	"demo-app-api/internal/models"
)

// UserEntity is the entity name used in repository errors
const UserEntity = "user"

// UserRepository is the key-value store contract for user records. Records are
// keyed by ID; Put overwrites any existing record with the same ID.
type UserRepository interface {
	// Put stores the user, replacing any record with the same ID
	Put(ctx context.Context, user *models.User) error

	// GetByID retrieves a user by ID, returning an ErrNotFound error if absent
	GetByID(ctx context.Context, id string) (*models.User, error)

	// List returns every user record (full scan, no pagination)
	List(ctx context.Context) ([]*models.User, error)

	// Count returns the number of user records without loading them
	Count(ctx context.Context) (int64, error)
}
