// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"context"

	"github.com/momeni/mysite/pkg/core/repo"
	"gorm.io/gorm"
)

// Tx is an ongoing transaction which is created by Conn.Tx and is
// only valid until its handler returns. The repository packages use
// it through GORM, so a post and its tags are stored atomically.
type Tx struct {
	*gorm.DB
}

func (tx *Tx) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	return execRaw(tx.DB.WithContext(ctx), sql, args)
}

// Query returns the result set of sql. The Rows must be closed
// before the next statement is sent on tx.
func (tx *Tx) Query(ctx context.Context, sql string, args ...any) (repo.Rows, error) {
	return queryRaw(tx.DB.WithContext(ctx), sql, args)
}

func (tx *Tx) IsTx() {
}

// GORM returns a session of the transaction bound to ctx.
func (tx *Tx) GORM(ctx context.Context) *gorm.DB {
	return tx.DB.WithContext(ctx)
}
