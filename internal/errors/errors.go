package errors

import "errors"

var (
	// ErrJokeNotFound is returned when a joke lookup by id finds nothing.
	ErrJokeNotFound = errors.New("Joke not found")
	// ErrUserNotFound is returned when no user record exists.
	ErrUserNotFound = errors.New("User not found")
	// ErrInvalidRole is returned when a role string is not in the known role set.
	ErrInvalidRole = errors.New("invalid role")
)

// ErrorResponse is the generic error body returned by the HTTP boundary.
type ErrorResponse struct {
	Error string `json:"error"`
}
