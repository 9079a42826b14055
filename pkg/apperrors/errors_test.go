package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundWrapsSentinel(t *testing.T) {
	err := NotFound("proposal", int64(12))
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "proposal 12 not found", err.Error())
}

func TestValidationMessage(t *testing.T) {
	err := Validation("%s is required", "name")
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, "validation failed: name is required", err.Error())
}

func TestUnavailableCarriesRemediation(t *testing.T) {
	cause := errors.New("exec: chrome not found")
	err := fmt.Errorf("export: %w", Unavailable("pdf", "install chromium", cause))

	assert.True(t, errors.Is(err, ErrUnavailable))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "install chromium", Remediation(err))
	assert.Empty(t, Remediation(errors.New("other")))
}
