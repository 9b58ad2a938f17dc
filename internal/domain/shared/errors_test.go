package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Is(t *testing.T) {
	err := NewNotFoundError("invoice", "42")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrValidation)

	wrapped := fmt.Errorf("load: %w", err)
	assert.ErrorIs(t, wrapped, ErrNotFound)

	var de *DomainError
	assert.True(t, errors.As(wrapped, &de))
	assert.Equal(t, CodeNotFound, de.Code)
	assert.Equal(t, "invoice 42 not found", de.Message)
}

func TestInvalidStateTransition(t *testing.T) {
	err := NewInvalidStateTransition("invoice", "42", "DRAFT", "send")
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Equal(t, "cannot send invoice 42 in status DRAFT", err.Error())
	assert.Equal(t, CodeInvalidState, err.AsDomainError().Code)
}

func TestDuplicateNumberError(t *testing.T) {
	err := NewDuplicateNumberError("invoice", "FAC-2024-00001")
	assert.ErrorIs(t, err, ErrDuplicateNumber)
	assert.NotErrorIs(t, err, ErrConcurrencyConflict)
}
