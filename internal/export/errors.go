package export

import (
	"errors"
	"net/http"

	"github.com/annexlabs/annex/internal/projects"
)

// ErrUnsupportedType indicates a project type with no export strategy.
var ErrUnsupportedType = errors.New("project type has no export strategy")

// MapHTTPStatus translates export errors into HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, projects.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnsupportedType):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
