package labels

import (
	"errors"
	"net/http"
)

var (
	// ErrNotFound indicates the requested label or relation type does not
	// exist within the project.
	ErrNotFound = errors.New("label type not found")

	// ErrDuplicate indicates the project already defines a type with the
	// same text or name.
	ErrDuplicate = errors.New("label type already exists")
)

// MapHTTPStatus translates label errors into HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
