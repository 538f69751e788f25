package handlers

import (
	"errors"

	"demo-app-api/internal/repositories"
	"demo-app-api/internal/services"
	"demo-app-api/pkg/lambda"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// errorResponse builds an error response. A non-nil err becomes the message.
func errorResponse(statusCode int, label string, err error) (*lambda.Response, error) {
	body := ErrorResponse{Error: label}
	if err != nil {
		body.Message = err.Error()
	}
	return lambda.JSON(statusCode, body)
}

// isValidationError checks if an error is a validation error
func isValidationError(err error) bool {
	return errors.Is(err, services.ErrInvalidInput)
}

// isNotFoundError checks if an error is a not found error
func isNotFoundError(err error) bool {
	return repositories.IsNotFound(err)
}
