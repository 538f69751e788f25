package services

import (
	"context"
	"errors"

	"demo-app-api/internal/models"
)

// ErrInvalidInput is returned when a request fails validation
var ErrInvalidInput = errors.New("invalid input")

// UserService defines the interface for user business logic operations
type UserService interface {
	ListUsers(ctx context.Context) ([]*models.User, error)
	CreateUser(ctx context.Context, req *CreateUserRequest) (*models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
}

// ProcessingService defines the interface for data processing operations
type ProcessingService interface {
	ProcessData(ctx context.Context, payload map[string]any) (*ProcessingResult, error)
}

// AnalyticsService defines the interface for analytics operations
type AnalyticsService interface {
	GetAnalytics(ctx context.Context, inv *Invocation) (*models.AnalyticsSnapshot, error)
}

// WelcomeNotifier sends the greeting a new user receives
type WelcomeNotifier interface {
	SendWelcome(ctx context.Context, user *models.User) error
}

// CreateUserRequest carries the fields accepted when creating a user
type CreateUserRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required"`
}

// ProcessingResult is a stored processing record and where it was written
type ProcessingResult struct {
	Record   *models.ProcessedRecord
	Location string
}

// Invocation is the runtime metadata analytics reports on
type Invocation struct {
	FunctionName        string
	InvokedFunctionARN  string
	RemainingTimeMillis int64
}
