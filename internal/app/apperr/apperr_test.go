package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindsMatchWithErrorsIs(t *testing.T) {
	cases := []struct {
		err    *Error
		kind   error
		status int
	}{
		{NotFound("role", 1), ErrNotFound, http.StatusNotFound},
		{ReferentialIntegrity("role", "fk_users_role", nil), ErrReferentialIntegrity, http.StatusConflict},
		{Validation("bad", nil, nil), ErrValidation, http.StatusBadRequest},
		{StoreUnavailable(errors.New("dial tcp")), ErrStoreUnavailable, http.StatusServiceUnavailable},
		{Internal(errors.New("boom")), ErrInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		wrapped := fmt.Errorf("op: %w", tc.err)
		assert.ErrorIs(t, wrapped, tc.kind)
		assert.Equal(t, tc.status, From(wrapped).HTTPStatus)
	}
}

func TestKindsDoNotCrossMatch(t *testing.T) {
	err := NotFound("service", 20)
	assert.NotErrorIs(t, err, ErrReferentialIntegrity)
	assert.NotErrorIs(t, err, ErrValidation)
}

func TestFromUnknownErrorIsInternal(t *testing.T) {
	cause := errors.New("something unexpected")
	e := From(cause)
	require.Equal(t, CodeInternal, e.Code)
	assert.ErrorIs(t, e, cause)
}

func TestErrorMessageIncludesCause(t *testing.T) {
	e := StoreUnavailable(errors.New("connection refused"))
	assert.Contains(t, e.Error(), "STORE_UNAVAILABLE")
	assert.Contains(t, e.Error(), "connection refused")
	assert.Equal(t, "NOT_FOUND: category 10 not found", NotFound("category", 10).Error())
}

func TestMissing(t *testing.T) {
	e := Missing("export catalog_1.json not found")
	assert.ErrorIs(t, e, ErrNotFound)
	assert.Equal(t, 404, e.HTTPStatus)
}
