// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.pub

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"context"
	"errors"
	"net"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/inkwellhq/inkwell/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Postgres SQLSTATE codes we classify explicitly.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// Classification:
//
//   - Missing rows map to NOT_FOUND.
//   - Connectivity failures (timeouts, refused connections) map to
//     STORE_UNAVAILABLE so callers know the error is retryable.
//   - Constraint violations map to CONFLICT.
//   - Everything else becomes an opaque INTERNAL_ERROR.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	// 2. Connectivity / timeout mapping: the store is unreachable, not broken.
	if isUnavailable(err) {
		return apperr.StoreUnavailable(err)
	}

	// 3. Constraint violations
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return apperr.Conflict("Resource already exists")
		case pgForeignKeyViolation:
			return apperr.Conflict("Referenced resource does not exist")
		}
	}

	// 4. Unknown query errors become Internal Server Errors
	return apperr.Internal(err)
}

// isUnavailable reports whether err represents a transient connectivity
// failure rather than a logical query error.
func isUnavailable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var opErr *net.OpError
	return errors.As(err, &opErr)
}
