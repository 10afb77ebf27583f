package router

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"jokebox/internal/errors"
	"jokebox/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	jokeHandler *handler.JokeHandler,
	userHandler *handler.UserHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = errorHandler

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/api-docs/*", echoSwagger.WrapHandler)

	// Admin joke routes
	admin := e.Group("/admin/jokes")
	admin.POST("/add", jokeHandler.Add)
	admin.PUT("/update/:jokeId", jokeHandler.Update)
	admin.DELETE("/delete/:jokeId", jokeHandler.Delete)

	// Public joke route
	e.GET("/joke", jokeHandler.Random)

	// User routes
	users := e.Group("/users")
	users.POST("/register", userHandler.Register)
	users.POST("/login", userHandler.Login)
	users.GET("/me", userHandler.Profile)
	users.PUT("/me/update", userHandler.UpdateProfile)
}

// errorHandler converts any error escaping a handler into the generic
// `{"error": "<message>"}` JSON shape. Errors that carry no explicit HTTP
// status collapse to 500.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := err.Error()
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		msg = fmt.Sprintf("%v", he.Message)
	}

	log.Printf("error processing request: %v", err)
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, errors.ErrorResponse{Error: msg})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
