package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents a user record in the key-value store
type User struct {
	ID        string `json:"id" dynamodbav:"id" db:"id" validate:"required"`
	Name      string `json:"name" dynamodbav:"name" db:"name" validate:"required"`
	Email     string `json:"email" dynamodbav:"email" db:"email" validate:"required"`
	CreatedAt string `json:"createdAt" dynamodbav:"createdAt" db:"created_at"`
	UpdatedAt string `json:"updatedAt" dynamodbav:"updatedAt" db:"updated_at"`
	Source    string `json:"source" dynamodbav:"source" db:"source"`
}

// NewUser creates a new user with a generated ID and a single creation timestamp
// used for both createdAt and updatedAt.
func NewUser(name, email string, now time.Time) *User {
	ts := Timestamp(now)
	return &User{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		CreatedAt: ts,
		UpdatedAt: ts,
		Source:    UserSource,
	}
}

// Validate validates the user data
func (u *User) Validate() error {
	if strings.TrimSpace(u.ID) == "" {
		return fmt.Errorf("user ID is required")
	}
	if u.Name == "" {
		return fmt.Errorf("user name is required")
	}
	if u.Email == "" {
		return fmt.Errorf("user email is required")
	}
	return nil
}
