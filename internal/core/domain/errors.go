package domain

import "net/http"

// Error is a request-scoped failure that carries the HTTP status the
// handler boundary should render. Anything that is not a *Error maps
// to a 500 at the boundary.
type Error struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
}

func (e *Error) Error() string { return e.Message }

func NewError(message string, status int) *Error {
	return &Error{Status: status, Message: message}
}

var (
	ErrNotAuthenticated = NewError("Access denied. User not authenticated.", http.StatusUnauthorized)
	ErrNoToken          = NewError("Access denied. No token provided.", http.StatusUnauthorized)
	ErrInvalidToken     = NewError("Invalid token.", http.StatusUnauthorized)
	ErrInsufficientRole = NewError("Access denied. Insufficient permissions.", http.StatusForbidden)
	ErrStaffRequired    = NewError("Access denied. Staff or admin role required.", http.StatusForbidden)
)
