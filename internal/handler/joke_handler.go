package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"jokebox/internal/service"
)

// JokeHandler handles joke endpoints.
type JokeHandler struct {
	jokeService service.JokeService
}

// NewJokeHandler creates a new joke handler.
func NewJokeHandler(jokeService service.JokeService) *JokeHandler {
	return &JokeHandler{jokeService: jokeService}
}

// AddJokeRequest represents a joke creation request.
type AddJokeRequest struct {
	Content string `json:"content" validate:"required"`
}

// UpdateJokeRequest represents a joke content update request.
type UpdateJokeRequest struct {
	Content string `json:"content" validate:"required"`
}

// Add godoc
// @Summary Add a new joke
// @Tags admin
// @Accept json
// @Produce json
// @Param request body AddJokeRequest true "Joke content"
// @Success 200 {object} service.AddJokeResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/jokes/add [post]
func (h *JokeHandler) Add(c echo.Context) error {
	var req AddJokeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res := h.jokeService.Add(c.Request().Context(), req.Content)
	return c.JSON(http.StatusOK, res)
}

// Update godoc
// @Summary Update an existing joke
// @Tags admin
// @Accept json
// @Produce json
// @Param jokeId path string true "Joke ID"
// @Param request body UpdateJokeRequest true "New joke content"
// @Success 200 {object} service.UpdateJokeResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/jokes/update/{jokeId} [put]
func (h *JokeHandler) Update(c echo.Context) error {
	var req UpdateJokeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.jokeService.Update(c.Request().Context(), c.Param("jokeId"), req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// Delete godoc
// @Summary Delete an existing joke
// @Tags admin
// @Produce json
// @Param jokeId path string true "Joke ID"
// @Success 200 {object} service.DeleteJokeResult
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/jokes/delete/{jokeId} [delete]
func (h *JokeHandler) Delete(c echo.Context) error {
	res, err := h.jokeService.Delete(c.Request().Context(), c.Param("jokeId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// Random godoc
// @Summary Fetch one random joke
// @Tags jokes
// @Produce json
// @Success 200 {object} service.RandomJokeResult
// @Failure 500 {object} errors.ErrorResponse
// @Router /joke [get]
func (h *JokeHandler) Random(c echo.Context) error {
	res, err := h.jokeService.Random(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}
