package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"demo-app-api/internal/models"
	"demo-app-api/internal/repositories"
)

// userService implements the UserService interface
type userService struct {
	userRepo  repositories.UserRepository
	notifier  WelcomeNotifier
	validator *validator.Validate
	logger    *logrus.Logger
	now       func() time.Time
}

// NewUserService creates a new user service instance. notifier may be nil, in
// which case no welcome email is sent.
func NewUserService(userRepo repositories.UserRepository, notifier WelcomeNotifier, logger *logrus.Logger) UserService {
	return &userService{
		userRepo:  userRepo,
		notifier:  notifier,
		validator: validator.New(),
		logger:    logger,
		now:       time.Now,
	}
}

// ListUsers returns every stored user
func (s *userService) ListUsers(ctx context.Context) ([]*models.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// CreateUser stores a new user and sends the welcome email. A failed
// notification is logged and does not fail the creation.
func (s *userService) CreateUser(ctx context.Context, req *CreateUserRequest) (*models.User, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: create user request cannot be nil", ErrInvalidInput)
	}

	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	user := models.NewUser(req.Name, req.Email, s.now())

	if err := s.userRepo.Put(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if s.notifier != nil {
		if err := s.notifier.SendWelcome(ctx, user); err != nil {
			s.logger.WithFields(logrus.Fields{
				"user_id": user.ID,
				"email":   user.Email,
				"error":   err.Error(),
			}).Warn("Failed to send welcome email")
		}
	}

	return user, nil
}

// GetUser retrieves a user by ID. The ID is passed to the store as-is.
func (s *userService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}
