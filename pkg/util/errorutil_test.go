package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainErrorPassthrough(t *testing.T) {
	original := NewConflict("email already registered", nil)

	mapped := ToDomainError(original)
	require.NotNil(t, mapped)
	assert.Equal(t, "CONFLICT", mapped.Code)
	assert.Equal(t, http.StatusConflict, mapped.HTTPStatus)
}

func TestToDomainErrorMapsNoRowsToNotFound(t *testing.T) {
	mapped := ToDomainError(pgx.ErrNoRows)
	require.NotNil(t, mapped)
	assert.Equal(t, "NOT_FOUND", mapped.Code)
	assert.Equal(t, http.StatusNotFound, mapped.HTTPStatus)
}

func TestToDomainErrorHidesInternals(t *testing.T) {
	cause := errors.New("pq: relation accounts does not exist")

	mapped := ToDomainError(cause)
	require.NotNil(t, mapped)
	assert.Equal(t, "INTERNAL_ERROR", mapped.Code)
	assert.Equal(t, http.StatusInternalServerError, mapped.HTTPStatus)
	// the client-facing message never carries store error text
	assert.Equal(t, "internal server error", mapped.Message)
	assert.ErrorIs(t, mapped, cause)
}

func TestToDomainErrorNil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
}

func TestDomainErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	wrapped := NewInternalError(cause)

	var domainErr *DomainError
	require.ErrorAs(t, wrapped, &domainErr)
	assert.Equal(t, cause, errors.Unwrap(domainErr))
}
