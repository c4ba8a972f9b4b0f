package httpx

import (
	"errors"
	"net/http"

	"github.com/inkwell-blog/inkwell/internal/shared"
)

// RespondError maps domain errors to API responses. Store faults and anything
// unrecognized collapse into a generic 500 so internals never leak.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrValidation):
		Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, shared.ErrInvalidCredentials):
		Error(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, shared.ErrUnauthenticated):
		Error(w, http.StatusUnauthorized, "Access denied")
	case errors.Is(err, shared.ErrInvalidToken):
		Error(w, http.StatusForbidden, "Invalid token")
	case errors.Is(err, shared.ErrForbidden):
		Error(w, http.StatusForbidden, "Permission denied")
	case errors.Is(err, shared.ErrNotFound):
		Error(w, http.StatusNotFound, err.Error())
	default:
		Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
