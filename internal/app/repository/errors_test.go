package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"testing"

	"gestic/internal/app/apperr"
	"gestic/internal/app/ds"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestTranslate_Nil(t *testing.T) {
	assert.NoError(t, translate("role", 1, nil))
}

func TestTranslate_RecordNotFound(t *testing.T) {
	err := translate("service", 42, fmt.Errorf("load: %w", gorm.ErrRecordNotFound))
	require.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Contains(t, err.Error(), "service 42 not found")
}

func TestTranslate_PgCodes(t *testing.T) {
	tests := []struct {
		name string
		err  *pgconn.PgError
		kind error
	}{
		{"foreign key", &pgconn.PgError{Code: "23503", ConstraintName: "fk_users_role"}, apperr.ErrReferentialIntegrity},
		{"not null", &pgconn.PgError{Code: "23502", ColumnName: "name"}, apperr.ErrValidation},
		{"check", &pgconn.PgError{Code: "23514", ConstraintName: "chk_services_status"}, apperr.ErrValidation},
		{"invalid text", &pgconn.PgError{Code: "22P02"}, apperr.ErrValidation},
		{"too long", &pgconn.PgError{Code: "22001", ColumnName: "username"}, apperr.ErrValidation},
		{"connection failure", &pgconn.PgError{Code: "08006"}, apperr.ErrStoreUnavailable},
		{"admin shutdown", &pgconn.PgError{Code: "57P01"}, apperr.ErrStoreUnavailable},
		{"cannot connect now", &pgconn.PgError{Code: "57P03"}, apperr.ErrStoreUnavailable},
		{"unique", &pgconn.PgError{Code: "23505"}, apperr.ErrInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := translate("user", 1, tt.err)
			assert.ErrorIs(t, err, tt.kind)
			var pgErr *pgconn.PgError
			assert.True(t, errors.As(err, &pgErr), "driver error must stay reachable")
		})
	}
}

func TestTranslate_ValidationField(t *testing.T) {
	err := translate("user", 0, &pgconn.PgError{Code: "23502", ColumnName: "email", Message: "null value"})
	e := apperr.From(err)
	require.Len(t, e.Fields, 1)
	assert.Equal(t, "email", e.Fields[0].Field)
	assert.Equal(t, "23502", e.Fields[0].Rule)

	err = translate("service", 0, &pgconn.PgError{Code: "23514", ConstraintName: "chk_services_status"})
	e = apperr.From(err)
	require.Len(t, e.Fields, 1)
	assert.Equal(t, "chk_services_status", e.Fields[0].Field)
}

func TestTranslate_ConnectionErrors(t *testing.T) {
	errs := []error{
		&pgconn.ConnectError{Config: &pgconn.Config{Host: "db", User: "otic", Database: "gestic"}},
		&net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")},
		driver.ErrBadConn,
		context.DeadlineExceeded,
	}
	for _, in := range errs {
		assert.ErrorIs(t, translate("database", 0, in), apperr.ErrStoreUnavailable)
	}
}

func TestTranslate_KeepsClassifiedErrors(t *testing.T) {
	in := apperr.Validation("bad", nil, nil)
	assert.Same(t, in, translate("role", 0, in))
}

func TestTranslate_Unknown(t *testing.T) {
	assert.ErrorIs(t, translate("role", 0, errors.New("boom")), apperr.ErrInternal)
}

func TestValidationError(t *testing.T) {
	err := validationError(ds.Validate(&ds.Role{}))
	e := apperr.From(err)
	assert.ErrorIs(t, e, apperr.ErrValidation)
	require.Len(t, e.Fields, 1)
	assert.Equal(t, apperr.FieldError{Field: "Name", Rule: "required"}, e.Fields[0])
}
