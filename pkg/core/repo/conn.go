// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import "context"

// TxHandler runs a series of statements in the given Tx transaction.
// The transaction commits if TxHandler returns nil and rolls back
// otherwise (or if it panics).
type TxHandler func(context.Context, Tx) error

// Conn represents a database connection which is borrowed from a Pool.
// Each statement which runs directly on a Conn is auto-committed, while
// the Tx method groups several statements in one transaction.
// A Conn may not be used after its ConnHandler returns.
type Conn interface {
	Tx(ctx context.Context, handler TxHandler) error

	// IsConn method prevents a non-Conn object (such as a Tx) to
	// mistakenly implement the Conn interface.
	IsConn()
}
