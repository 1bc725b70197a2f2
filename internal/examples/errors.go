package examples

import (
	"errors"
	"net/http"
)

var (
	// ErrNotFound indicates the requested example does not exist within the
	// project.
	ErrNotFound = errors.New("example not found")

	// ErrDuplicate indicates a uniqueness conflict, such as approving an
	// example twice for the same annotator.
	ErrDuplicate = errors.New("example already exists")

	// ErrInvalidFile indicates a malformed upload request.
	ErrInvalidFile = errors.New("invalid or missing file")

	// ErrFileTooLarge indicates the upload exceeds the configured size limit.
	ErrFileTooLarge = errors.New("file exceeds maximum upload size")

	// ErrNoMedia indicates the example has no uploaded content to serve.
	ErrNoMedia = errors.New("example has no uploaded media")
)

// MapHTTPStatus translates example errors into HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrNoMedia):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidFile):
		return http.StatusBadRequest
	case errors.Is(err, ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}
