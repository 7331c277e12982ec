package documents

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/neurocore/internal/tools"
)

// Domain errors for document operations.
var (
	ErrNotFound        = errors.New("document not found, try again")
	ErrDuplicate       = errors.New("document already exists")
	ErrInvalidDocument = errors.New("invalid document")
	ErrContentTooLarge = errors.New("document content exceeds maximum size")
)

// MapHTTPStatus converts domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidDocument) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrContentTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	if errors.Is(err, tools.ErrMissingIdentity) {
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}
