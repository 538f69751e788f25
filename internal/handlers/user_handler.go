package handlers

import (
	"context"
	"net/http"

	"demo-app-api/internal/models"
	"demo-app-api/internal/services"
	"demo-app-api/pkg/lambda"
)

// UserHandler handles user-related requests
type UserHandler struct {
	userService services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

type listUsersResponse struct {
	Success bool           `json:"success"`
	Data    []*models.User `json:"data"`
	Count   int            `json:"count"`
}

type userResponse struct {
	Success bool         `json:"success"`
	Data    *models.User `json:"data"`
	Message string       `json:"message,omitempty"`
}

// HandleList returns every user
// @Summary List users
// @Description Scan every stored user
// @Tags users
// @Produce json
// @Success 200 {object} listUsersResponse
// @Failure 500 {object} ErrorResponse
// @Router /lambda/users [get]
func (h *UserHandler) HandleList(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	users, err := h.userService.ListUsers(ctx)
	if err != nil {
		return errorResponse(http.StatusInternalServerError, "Failed to get users", err)
	}

	if users == nil {
		users = []*models.User{}
	}

	return lambda.JSON(http.StatusOK, listUsersResponse{
		Success: true,
		Data:    users,
		Count:   len(users),
	})
}

// HandleCreate creates a user from the name and email in the request body
// @Summary Create a user
// @Description Store a new user and send a welcome email
// @Tags users
// @Accept json
// @Produce json
// @Param user body services.CreateUserRequest true "User data"
// @Success 201 {object} userResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /lambda/users [post]
func (h *UserHandler) HandleCreate(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	payload := parseJSONObject(req.Body)

	user, err := h.userService.CreateUser(ctx, &services.CreateUserRequest{
		Name:  textField(payload, "name"),
		Email: textField(payload, "email"),
	})
	if err != nil {
		if isValidationError(err) {
			return errorResponse(http.StatusBadRequest, "Name and email are required", nil)
		}
		return errorResponse(http.StatusInternalServerError, "Failed to create user", err)
	}

	return lambda.JSON(http.StatusCreated, userResponse{
		Success: true,
		Data:    user,
		Message: "User created successfully",
	})
}

// HandleGet returns the user named by the "id" path parameter
// @Summary Get a user
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} userResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /lambda/users/{id} [get]
func (h *UserHandler) HandleGet(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	user, err := h.userService.GetUser(ctx, req.PathParams["id"])
	if err != nil {
		if isNotFoundError(err) {
			return errorResponse(http.StatusNotFound, "User not found", nil)
		}
		return errorResponse(http.StatusInternalServerError, "Failed to get user", err)
	}

	return lambda.JSON(http.StatusOK, userResponse{
		Success: true,
		Data:    user,
	})
}
