// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"context"
	"fmt"

	"github.com/momeni/mysite/pkg/core/repo"
	"gorm.io/gorm"
)

// Conn is a single pooled connection which auto-commits each
// statement. Use Tx to group statements. A Conn may not be shared
// by goroutines.
type Conn struct {
	*gorm.DB
}

// Tx runs f in a READ COMMITTED transaction. The transaction is
// committed when f returns nil. Otherwise, or if f panics, it is
// rolled back and the cause is returned as an error.
func (c *Conn) Tx(ctx context.Context, f repo.TxHandler) (err error) {
	gtx := c.DB.WithContext(ctx).Begin()
	if err = gtx.Error; err != nil {
		return fmt.Errorf("begin tx: %w", TranslateError(err))
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panicked: %v", r)
		}
		if err == nil {
			if err = gtx.Commit().Error; err != nil {
				err = fmt.Errorf("commit: %w", TranslateError(err))
			}
			return
		}
		if rbErr := gtx.Rollback().Error; rbErr != nil {
			err = fmt.Errorf("%w (rollback: %w)", err, rbErr)
		}
	}()
	return f(ctx, &Tx{DB: gtx})
}

func (c *Conn) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	return execRaw(c.DB.WithContext(ctx), sql, args)
}

func (c *Conn) Query(ctx context.Context, sql string, args ...any) (repo.Rows, error) {
	return queryRaw(c.DB.WithContext(ctx), sql, args)
}

func (c *Conn) IsConn() {
}

// GORM returns a session of the connection bound to ctx.
func (c *Conn) GORM(ctx context.Context) *gorm.DB {
	return c.DB.WithContext(ctx)
}

// execRaw runs a raw statement. Placeholders may be given as ? or
// @name and each sql must hold one statement when args is not empty.
func execRaw(gdb *gorm.DB, sql string, args []any) (int64, error) {
	res := gdb.Exec(sql, args...)
	if res.Error != nil {
		return 0, TranslateError(res.Error)
	}
	return res.RowsAffected, nil
}

func queryRaw(gdb *gorm.DB, sql string, args []any) (repo.Rows, error) {
	rows, err := gdb.Raw(sql, args...).Rows()
	if err != nil {
		return nil, TranslateError(err)
	}
	return sqlRows{rows}, nil
}
