package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dtroode/blackjack-server/internal/model"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error    string `json:"error"`
	Category string `json:"category"`
}

// Error categories.
const (
	CategoryInvalidRequest = "invalid_request"
	CategoryValidation     = "validation"
	CategoryConflict       = "conflict"
	CategoryUnauthorized   = "unauthorized"
	CategoryNotFound       = "not_found"
	CategoryProvisioning   = "provisioning"
	CategoryUnavailable    = "unavailable"
	CategoryInternal       = "internal"
)

type httpError struct {
	status int
	body   ErrorResponse
}

func (e *httpError) Error() string {
	return e.body.Error
}

// WriteError writes the status and body err maps to.
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(he.body)
}

// Status returns the HTTP status err maps to.
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError maps domain errors to responses. Conflicts are checked before
// provisioning failures so a unique violation caught mid-saga stays a 400.
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	var conflict *model.ConflictError
	if errors.As(err, &conflict) {
		return &httpError{http.StatusBadRequest, ErrorResponse{conflict.Error(), CategoryConflict}}
	}

	var vErr *model.ValidationError
	if errors.As(err, &vErr) {
		return &httpError{http.StatusBadRequest, ErrorResponse{vErr.Reason, CategoryValidation}}
	}

	var authErr *model.AuthError
	if errors.As(err, &authErr) {
		return &httpError{http.StatusUnauthorized, ErrorResponse{authErr.Error(), CategoryUnauthorized}}
	}

	var pErr *model.ProvisioningError
	if errors.As(err, &pErr) {
		msg := "Failed to create account"
		switch pErr.Kind {
		case model.IdentityCreationFailed:
			msg = "Failed to create authentication"
		case model.ProfileCreationFailed:
			msg = "Failed to create player profile"
		}
		return &httpError{http.StatusInternalServerError, ErrorResponse{msg, CategoryProvisioning}}
	}

	switch {
	case errors.Is(err, model.ErrNotFound):
		return &httpError{http.StatusNotFound, ErrorResponse{"Player not found", CategoryNotFound}}
	case errors.Is(err, model.ErrStoreUnavailable):
		return &httpError{http.StatusInternalServerError, ErrorResponse{"Service temporarily unavailable", CategoryUnavailable}}
	default:
		return &httpError{http.StatusInternalServerError, ErrorResponse{"Internal server error", CategoryInternal}}
	}
}

// NewInvalidRequestError creates a 400 error for malformed requests.
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, ErrorResponse{message, CategoryInvalidRequest}}
}

// NewUnauthorizedError creates a 401 error for requests without credentials.
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, ErrorResponse{"Authentication required", CategoryUnauthorized}}
}

// NewInternalError creates a generic 500 error.
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, ErrorResponse{"Internal server error", CategoryInternal}}
}
