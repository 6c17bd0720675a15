package api

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/inkwellapp/inkwell-server/internal/errors"
	"github.com/inkwellapp/inkwell-server/internal/store"
)

// APIError is a custom error type that implements huma.StatusError.
// It maps domain errors to HTTP responses with consistent structure.
type APIError struct { //nolint:revive // API prefix is intentional for clarity
	status  int
	Message string `json:"message" doc:"Human-readable error message"`
	Code    string `json:"error,omitempty" doc:"Machine-readable error code"`
	Details any    `json:"details,omitempty" doc:"Additional error details"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// GetStatus implements huma.StatusError.
func (e *APIError) GetStatus() int {
	return e.status
}

// ContentType returns the content type for the error response.
func (e *APIError) ContentType(_ string) string {
	return "application/json"
}

// RegisterErrorHandler configures huma to render domain errors.
// Call this after creating the huma.API but before registering routes.
func RegisterErrorHandler() {
	huma.NewError = func(status int, message string, errs ...error) huma.StatusError {
		for _, err := range errs {
			var domainErr *domainerrors.Error
			if errors.As(err, &domainErr) {
				return &APIError{
					status:  domainErr.Code.HTTPStatus(),
					Message: domainErr.Message,
					Code:    string(domainErr.Code),
					Details: domainErr.Details,
				}
			}

			// Raw store sentinels that escaped the service layer map to 404.
			if isNotFoundError(err) {
				return &APIError{
					status:  404,
					Message: err.Error(),
					Code:    string(domainerrors.CodeNotFound),
				}
			}
		}

		// Malformed input rejected by schema validation renders as 400.
		if status == 422 {
			status = 400
		}

		return &APIError{
			status:  status,
			Message: message,
			Code:    statusToCode(status),
		}
	}
}

// isNotFoundError checks if the error is a "not found" type error from the store.
func isNotFoundError(err error) bool {
	return errors.Is(err, store.ErrNotFound) ||
		errors.Is(err, store.ErrUserNotFound) ||
		errors.Is(err, store.ErrBookNotFound) ||
		errors.Is(err, store.ErrReviewNotFound)
}

// statusToCode maps HTTP status codes to domain error codes.
func statusToCode(status int) string {
	switch status {
	case 400:
		return string(domainerrors.CodeValidation)
	case 401:
		return string(domainerrors.CodeUnauthorized)
	case 403:
		return string(domainerrors.CodeForbidden)
	case 404:
		return string(domainerrors.CodeNotFound)
	default:
		return string(domainerrors.CodeInternal)
	}
}
