// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import "context"

// Queryer is implemented by SQL speaking connections and transactions.
// It is not embedded in Conn or Tx since the in-memory backend has no
// SQL engine; raw statements are only used by SQL specific adapters
// and test fixtures.
type Queryer interface {
	Exec(ctx context.Context, sql string, args ...any) (count int64, err error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
}

// Rows is a forward only cursor over the Query results.
// Close must be called even if Next returned false.
type Rows interface {
	Close()
	Err() error
	Next() bool
	Scan(dest ...any) error
}
