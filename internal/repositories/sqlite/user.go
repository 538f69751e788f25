package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"demo-app-api/internal/models"
	"demo-app-api/internal/repositories"

	"github.com/sirupsen/logrus"
)

// UserRepository implements repositories.UserRepository for SQLite
type UserRepository struct {
	*BaseRepository
}

// NewUserRepository creates a new SQLite user repository
func NewUserRepository(db *sql.DB, logger *logrus.Logger) *UserRepository {
	return &UserRepository{
		BaseRepository: NewBaseRepository(db, "users", repositories.UserEntity, logger),
	}
}

// Put inserts the user or replaces the row with the same id
func (r *UserRepository) Put(ctx context.Context, user *models.User) error {
	if err := user.Validate(); err != nil {
		return repositories.ValidationError(repositories.UserEntity, user.ID, err)
	}

	query := `
		INSERT OR REPLACE INTO users (
			id, name, email, created_at, updated_at, source
		) VALUES (?, ?, ?, ?, ?, ?)`

	_, err := r.executeExec(ctx, "put", user.ID, query,
		user.ID,
		user.Name,
		user.Email,
		user.CreatedAt,
		user.UpdatedAt,
		user.Source,
	)
	return err
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `
		SELECT id, name, email, created_at, updated_at, source
		FROM users
		WHERE id = ?`

	row := r.executeQueryRow(ctx, "get_by_id", query, id)

	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.Source,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repositories.NotFoundError(repositories.UserEntity, id)
		}
		return nil, repositories.NewRepositoryError("get_by_id", repositories.UserEntity, id, err)
	}

	return user, nil
}

// List retrieves all users ordered by creation time
func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	query := `
		SELECT id, name, email, created_at, updated_at, source
		FROM users
		ORDER BY created_at, id`

	rows, err := r.executeQuery(ctx, "list", query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*models.User, 0)
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.Email,
			&user.CreatedAt,
			&user.UpdatedAt,
			&user.Source,
		); err != nil {
			return nil, repositories.NewRepositoryError("list", repositories.UserEntity, "", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, repositories.NewRepositoryError("list", repositories.UserEntity, "", err)
	}

	return users, nil
}

// Count returns the number of users
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	row := r.executeQueryRow(ctx, "count", "SELECT COUNT(*) FROM users")
	if err := row.Scan(&count); err != nil {
		return 0, repositories.NewRepositoryError("count", repositories.UserEntity, "", err)
	}
	return count, nil
}
