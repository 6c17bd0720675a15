package errors

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeNotFound, http.StatusNotFound},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeForbidden, http.StatusForbidden},
		{CodeValidation, http.StatusBadRequest},
		{CodeAlreadyExists, http.StatusBadRequest},
		{CodeDuplicateReview, http.StatusBadRequest},
		{CodeInvalidCredentials, http.StatusBadRequest},
		{CodeInternal, http.StatusInternalServerError},
		{Code("UNKNOWN"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.HTTPStatus())
		})
	}
}

func TestErrorIsMatchesByCode(t *testing.T) {
	err := NotFound("book not found")

	assert.True(t, Is(err, ErrNotFound))
	assert.False(t, Is(err, ErrForbidden))
}

func TestErrorUnwrap(t *testing.T) {
	cause := Internal("disk failure")
	err := Wrap(cause, CodeInternal, "could not load book")

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "could not load book")
	assert.Contains(t, err.Error(), "disk failure")
}

func TestWithDetailsDoesNotMutate(t *testing.T) {
	base := Validation("invalid input")
	detailed := base.WithDetails(map[string]string{"rating": "must be between 1 and 5"})

	assert.Nil(t, base.Details)
	assert.NotNil(t, detailed.Details)
	assert.Equal(t, base.Code, detailed.Code)
}

func TestAsExtractsDomainError(t *testing.T) {
	var domainErr *Error
	err := Forbidden("Not authorized to edit this book")

	assert.True(t, As(err, &domainErr))
	assert.Equal(t, CodeForbidden, domainErr.Code)
	assert.Equal(t, http.StatusForbidden, domainErr.HTTPStatus())
}
