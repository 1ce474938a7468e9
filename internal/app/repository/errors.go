package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"gestic/internal/app/apperr"
	"gestic/internal/app/ds"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// SQLSTATE codes the access layer classifies.
const (
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
	pgInvalidText         = "22P02"
	pgStringTooLong       = "22001"
	pgAdminShutdown       = "57P01"
	pgCannotConnectNow    = "57P03"
)

// translate maps driver and gorm errors onto the apperr taxonomy.
func translate(entity string, id uint, err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(entity, id)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgForeignKeyViolation:
			return apperr.ReferentialIntegrity(entity, pgErr.ConstraintName, err)
		case pgErr.Code == pgNotNullViolation || pgErr.Code == pgCheckViolation ||
			pgErr.Code == pgInvalidText || pgErr.Code == pgStringTooLong:
			field := pgErr.ColumnName
			if field == "" {
				field = pgErr.ConstraintName
			}
			return apperr.Validation(pgErr.Message, []apperr.FieldError{{Field: field, Rule: pgErr.Code}}, err)
		case strings.HasPrefix(pgErr.Code, "08") || pgErr.Code == pgAdminShutdown || pgErr.Code == pgCannotConnectNow:
			return apperr.StoreUnavailable(err)
		}
		return apperr.Internal(err)
	}

	switch {
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperr.ReferentialIntegrity(entity, "", err)
	case errors.Is(err, gorm.ErrCheckConstraintViolated), errors.Is(err, gorm.ErrInvalidData):
		return apperr.Validation(err.Error(), nil, err)
	}

	if isConnectionError(err) {
		return apperr.StoreUnavailable(err)
	}
	return apperr.Internal(err)
}

func isConnectionError(err error) bool {
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// validationError converts a ds.ValidationError into the taxonomy.
func validationError(err error) error {
	var verr *ds.ValidationError
	if !errors.As(err, &verr) {
		return apperr.Validation(err.Error(), nil, err)
	}
	fields := make([]apperr.FieldError, len(verr.Violations))
	for i, v := range verr.Violations {
		fields[i] = apperr.FieldError{Field: v.Field, Rule: v.Rule}
	}
	return apperr.Validation(verr.Error(), fields, err)
}
