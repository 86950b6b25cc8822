// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package dbcontainer starts a disposable postgres:16 container for
// the integration test suites and connects a *postgres.Pool to it.
// The container is started with sqltestutil, so DOCKER_HOST must
// point to a docker or podman socket such as
// unix://$XDG_RUNTIME_DIR/podman/podman.sock before running them.
package dbcontainer

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/bitcomplete/sqltestutil"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/momeni/mysite/pkg/adapter/db/postgres"
	"github.com/momeni/mysite/pkg/adapter/db/postgres/migration"
	"github.com/stretchr/testify/assert"
)

// cannotConnectNow is reported while the server is starting up.
const cannotConnectNow = "57P03"

// New starts a container and connects to it. The timeout bounds the
// start up while ctx is also used for the shutdown. Callers must run
// the returned dfrs functions in reverse order, even if ok is false.
func New(ctx context.Context, timeout time.Duration, t *testing.T) (
	pg *sqltestutil.PostgresContainer,
	pool *postgres.Pool,
	dfrs []func(),
	ok bool,
) {
	startCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	pg, err := sqltestutil.StartPostgresContainer(startCtx, "16")
	if ok = assert.NoError(t, err, "starting postgres container"); !ok {
		return
	}
	dfrs = append(dfrs, func() {
		assert.NoError(t, pg.Shutdown(ctx), "stopping postgres container")
	})
	pool, err = connect(startCtx, pg.ConnectionString())
	if ok = assert.NoError(t, err, "connecting to postgres container"); !ok {
		return
	}
	dfrs = append(dfrs, func() {
		assert.NoError(t, pool.Close(), "closing the pool")
	})
	return
}

// connect retries NewPool while the server is still booting or
// refuses the network connections, until ctx expires.
func connect(ctx context.Context, url string) (*postgres.Pool, error) {
	for {
		pool, err := postgres.NewPool(ctx, url)
		if err == nil {
			return pool, nil
		}
		var pgErr *pgconn.PgError
		var netErr net.Error
		booting := errors.As(err, &pgErr) &&
			pgErr.SQLState() == cannotConnectNow
		if ctx.Err() != nil || !(booting || errors.As(err, &netErr)) {
			return nil, err
		}
		time.Sleep(100 * time.Millisecond)
	}
}

// NewMigrated is like New but also applies all goose migrations, so
// the repository suites start with the empty blog and catalog tables.
func NewMigrated(ctx context.Context, timeout time.Duration, t *testing.T) (
	pg *sqltestutil.PostgresContainer,
	pool *postgres.Pool,
	dfrs []func(),
	ok bool,
) {
	pg, pool, dfrs, ok = New(ctx, timeout, t)
	if !ok {
		return
	}
	m, err := migration.New(pool)
	if ok = assert.NoError(t, err, "creating migrator"); !ok {
		return
	}
	_, err = m.Up(ctx)
	ok = assert.NoError(t, err, "migrating up")
	return
}
