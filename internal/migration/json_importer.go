package migration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"demo-app-api/internal/models"
	"demo-app-api/internal/repositories"
)

// JSONImporter loads users from a JSON export into a user store. The export
// is either a bare array of users or the body returned by GET /lambda/users.
type JSONImporter struct {
	repo   repositories.UserRepository
	logger *logrus.Logger
	now    func() time.Time
}

// NewJSONImporter creates a new JSON importer
func NewJSONImporter(repo repositories.UserRepository, logger *logrus.Logger) *JSONImporter {
	return &JSONImporter{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// ImportResult contains the results of an import
type ImportResult struct {
	UsersImported int
	UsersSkipped  int
	Warnings      []string
}

type listUsersExport struct {
	Data []models.User `json:"data"`
}

// ImportFile imports every valid user in the file at path
func (im *JSONImporter) ImportFile(ctx context.Context, path string) (*ImportResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read users file: %w", err)
	}

	users, err := decodeUsers(data)
	if err != nil {
		return nil, err
	}

	im.logger.WithFields(logrus.Fields{
		"file":  path,
		"users": len(users),
	}).Info("Starting user import")

	return im.Import(ctx, users)
}

// Import stores users, filling in missing timestamps and source. Invalid
// records are skipped with a warning; a store failure aborts the import.
func (im *JSONImporter) Import(ctx context.Context, users []models.User) (*ImportResult, error) {
	result := &ImportResult{Warnings: make([]string, 0)}
	ts := models.Timestamp(im.now())

	for i := range users {
		user := users[i]

		if err := user.Validate(); err != nil {
			im.logger.WithError(err).WithField("user_id", user.ID).Warn("Invalid user data, skipping")
			result.Warnings = append(result.Warnings, fmt.Sprintf("record %d: %v", i, err))
			result.UsersSkipped++
			continue
		}

		if user.CreatedAt == "" {
			user.CreatedAt = ts
		}
		if user.UpdatedAt == "" {
			user.UpdatedAt = user.CreatedAt
		}
		if user.Source == "" {
			user.Source = models.UserSource
		}

		if err := im.repo.Put(ctx, &user); err != nil {
			return result, fmt.Errorf("failed to import user %s: %w", user.ID, err)
		}
		result.UsersImported++
	}

	im.logger.WithFields(logrus.Fields{
		"imported": result.UsersImported,
		"skipped":  result.UsersSkipped,
	}).Info("User import completed")

	return result, nil
}

// decodeUsers accepts either a JSON array of users or an object with a "data" array
func decodeUsers(data []byte) ([]models.User, error) {
	trimmed := bytes.TrimSpace(data)

	if strings.HasPrefix(string(trimmed), "[") {
		var users []models.User
		if err := json.Unmarshal(trimmed, &users); err != nil {
			return nil, fmt.Errorf("failed to unmarshal users: %w", err)
		}
		return users, nil
	}

	var export listUsersExport
	if err := json.Unmarshal(trimmed, &export); err != nil {
		return nil, fmt.Errorf("failed to unmarshal users export: %w", err)
	}
	return export.Data, nil
}
