// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package repo describes the persistence collaborator of the use cases
// layer. A Pool hands out connections and transactions to use cases
// which in turn pass them to the entity repositories (Stores, Posts,
// Comments, Tags, and Users). Repositories are stateless; they only
// learn about the connection or transaction at hand when their Conn or
// Tx methods are called, so the same repository instance serves all
// requests and no request-scoped state is kept in globals.
package repo

import "context"

// ConnHandler uses the given Conn connection while it is reserved.
type ConnHandler func(context.Context, Conn) error

// Pool is a concurrency-safe database connection pool.
type Pool interface {
	Conn(ctx context.Context, handler ConnHandler) error

	// Close releases all connections. The Pool may not be used after
	// calling Close.
	Close() error
}
