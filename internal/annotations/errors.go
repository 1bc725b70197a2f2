package annotations

import (
	"errors"
	"net/http"
)

var (
	// ErrNotFound indicates the requested annotation does not exist.
	ErrNotFound = errors.New("annotation not found")

	// ErrDuplicate indicates the annotator already recorded an identical
	// annotation.
	ErrDuplicate = errors.New("annotation already exists")

	// ErrInvalidSpan indicates span offsets that are negative or reversed.
	ErrInvalidSpan = errors.New("span offsets are invalid")
)

// MapHTTPStatus translates annotation errors into HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidSpan):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
