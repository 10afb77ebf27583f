package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"jokebox/internal/service"
)

// UserHandler handles user account endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required"`
	Username *string `json:"username"`
	Role     *string `json:"role"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest carries the optional profile fields. Absent fields
// stay nil and are never applied.
type UpdateProfileRequest struct {
	Name              *string `json:"name"`
	Email             *string `json:"email"`
	ProfilePictureURL *string `json:"profilePictureUrl"`
	Bio               *string `json:"bio"`
}

// Register godoc
// @Summary Register a new user
// @Tags users
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 200 {object} service.RegisterResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/register [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.userService.Register(c.Request().Context(), req.Email, req.Password, req.Username, req.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// Login godoc
// @Summary Authenticate a user and return a placeholder token
// @Tags users
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} service.LoginResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/login [post]
func (h *UserHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.userService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// Profile godoc
// @Summary Fetch the current user's profile
// @Tags users
// @Produce json
// @Success 200 {object} service.ProfileResult
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/me [get]
func (h *UserHandler) Profile(c echo.Context) error {
	res, err := h.userService.Profile(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// UpdateProfile godoc
// @Summary Update the current user's profile fields
// @Tags users
// @Accept json
// @Produce json
// @Param request body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} service.UpdateProfileResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/me/update [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	ctx := c.Request().Context()

	// Identity is simulated: the first-found account stands in for the
	// logged-in user until a real auth collaborator threads it through.
	current, err := h.userService.Profile(ctx)
	if err != nil {
		return c.JSON(http.StatusOK, service.UpdateProfileResult{
			Status:        "failed",
			UpdatedFields: map[string]string{},
			Message:       fmt.Sprintf("Failed to update profile: %v", err),
		})
	}

	res := h.userService.UpdateProfile(ctx, current.ID, service.ProfileUpdate{
		Name:              req.Name,
		Email:             req.Email,
		ProfilePictureURL: req.ProfilePictureURL,
		Bio:               req.Bio,
	})
	return c.JSON(http.StatusOK, res)
}
