// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package migration_test

import (
	"context"
	"testing"
	"time"

	"github.com/momeni/mysite/internal/test/dbcontainer"
	"github.com/momeni/mysite/internal/test/schema"
	"github.com/momeni/mysite/pkg/adapter/db/postgres"
	"github.com/momeni/mysite/pkg/adapter/db/postgres/commentsrp"
	"github.com/momeni/mysite/pkg/adapter/db/postgres/migration"
	"github.com/momeni/mysite/pkg/adapter/db/postgres/postsrp"
	"github.com/momeni/mysite/pkg/adapter/db/postgres/storesrp"
	"github.com/momeni/mysite/pkg/adapter/db/postgres/tagsrp"
	"github.com/momeni/mysite/pkg/adapter/db/postgres/usersrp"
	"github.com/momeni/mysite/pkg/core/repo"
	"github.com/momeni/mysite/pkg/core/usecase/setupuc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateUpAndDown(t *testing.T) {
	ctx := context.Background()
	_, pool, dfrs, ok := dbcontainer.New(ctx, 60*time.Second, t)
	for _, f := range dfrs {
		defer f()
	}
	if !ok {
		return // errors are already logged
	}
	m, err := migration.New(pool)
	require.NoError(t, err)

	st, err := m.Status(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, st)
	assert.Equal(t, int64(1), st[0].Version)
	assert.Equal(t, "00001_init.sql", st[0].Path)
	for _, s := range st {
		assert.False(t, s.Applied, "version %d", s.Version)
	}

	vers, err := m.Up(ctx)
	require.NoError(t, err)
	assert.Len(t, vers, len(st))
	verify(ctx, t, pool, (*schema.Verifier).VerifySchema)
	require.NoError(t, setupuc.Seed(ctx, pool, setupuc.Repos{
		Stores:   storesrp.New(),
		Posts:    postsrp.New(),
		Comments: commentsrp.New(),
		Tags:     tagsrp.New(),
		Users:    usersrp.New(),
	}))
	verify(ctx, t, pool, (*schema.Verifier).VerifyDevData)

	vers, err = m.Up(ctx)
	require.NoError(t, err)
	assert.Empty(t, vers, "nothing is pending")

	st, err = m.Status(ctx)
	require.NoError(t, err)
	for _, s := range st {
		assert.True(t, s.Applied, "version %d", s.Version)
		assert.False(t, s.AppliedAt.IsZero())
	}

	for range st {
		vers, err = m.Down(ctx)
		require.NoError(t, err)
		assert.Len(t, vers, 1)
	}
	verify(ctx, t, pool, (*schema.Verifier).VerifyNoTables)
	vers, err = m.Down(ctx)
	require.NoError(t, err)
	assert.Empty(t, vers, "nothing is applied")
}

func verify(
	ctx context.Context,
	t *testing.T,
	pool *postgres.Pool,
	check func(*schema.Verifier, context.Context, *testing.T),
) {
	err := pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		check(schema.New(c.(*postgres.Conn)), ctx, t)
		return nil
	})
	require.NoError(t, err)
}
