// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/yomira-search/internal/platform/apperr"
)

// Wrap inspects a database error and classifies it.
//
// Every failure becomes an INTERNAL_ERROR whose cause names the failed action and,
// when available, the Postgres SQLSTATE. Search queries never expect a single row,
// so a missing row is a failure too.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return apperr.Internal(fmt.Errorf("postgres: %s failed (sqlstate %s): %w", action, pgErr.Code, err))
	}

	return apperr.Internal(fmt.Errorf("postgres: %s failed: %w", action, err))
}
