package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/inkwellapp/inkwell-server/internal/errors"
)

type sampleRequest struct {
	Email  string `json:"email" validate:"required,email"`
	Rating int    `json:"rating" validate:"gte=1,lte=5"`
	Name   string `json:"name,omitempty" validate:"required"`
}

func TestValidatePasses(t *testing.T) {
	v := New()

	err := v.Validate(sampleRequest{
		Email:  "ada@example.com",
		Rating: 3,
		Name:   "Ada",
	})
	assert.NoError(t, err)
}

func TestValidateUsesJSONFieldNames(t *testing.T) {
	v := New()

	err := v.Validate(sampleRequest{Email: "not-an-email", Rating: 3, Name: "Ada"})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.True(t, domainerrors.As(err, &domainErr))
	assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)

	details, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details, "email")
	assert.Equal(t, "must be a valid email address", details["email"])
}

func TestValidateStripsTagOptions(t *testing.T) {
	v := New()

	err := v.Validate(sampleRequest{Email: "ada@example.com", Rating: 3})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.True(t, domainerrors.As(err, &domainErr))
	details := domainErr.Details.(map[string]string)
	assert.Contains(t, details, "name")
	assert.Equal(t, "is required", details["name"])
}

func TestValidateRangeMessages(t *testing.T) {
	v := New()

	err := v.Validate(sampleRequest{Email: "ada@example.com", Rating: 9, Name: "Ada"})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.True(t, domainerrors.As(err, &domainErr))
	details := domainErr.Details.(map[string]string)
	assert.Equal(t, "must be less than or equal to 5", details["rating"])
}
