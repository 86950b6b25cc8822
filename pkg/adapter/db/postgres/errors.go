// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/momeni/mysite/pkg/core/cerr"
	"gorm.io/gorm"
)

// SQLSTATE codes which are translated to the core errors.
// See https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	codeStringTooLong       = "22001"
	codeNotNullViolation    = "23502"
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
	codeCheckViolation      = "23514"
)

// TranslateError wraps the constraint violation errors of PostgreSQL
// with the core errors, so they may be reported with a suitable HTTP
// status code. A missing record is reported as cerr.NotFound and other
// errors are returned unchanged.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return cerr.NotFound(err)
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case codeUniqueViolation:
		return cerr.Conflict(err)
	case codeForeignKeyViolation:
		return cerr.NotFound(err)
	case codeNotNullViolation, codeCheckViolation, codeStringTooLong:
		return cerr.BadRequest(err)
	default:
		return err
	}
}
