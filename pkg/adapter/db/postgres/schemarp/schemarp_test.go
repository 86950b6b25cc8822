// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package schemarp_test

import (
	"context"
	"testing"
	"time"

	"github.com/momeni/mysite/internal/test/dbcontainer"
	"github.com/momeni/mysite/pkg/adapter/db/postgres"
	"github.com/momeni/mysite/pkg/adapter/db/postgres/schemarp"
	"github.com/momeni/mysite/pkg/adapter/hash/scram"
	"github.com/momeni/mysite/pkg/core/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepareSchemaAndRoles(t *testing.T) {
	ctx := context.Background()
	_, pool, dfrs, ok := dbcontainer.New(ctx, 60*time.Second, t)
	for _, f := range dfrs {
		defer f()
	}
	if !ok {
		return // errors are already logged
	}
	hasher := scram.SHA256()
	rp := schemarp.New("_test", hasher)
	const schemaName = "blogtest"
	roles := []repo.Role{repo.NormalRole, repo.AdminRole}

	err := pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			q := rp.Tx(tx)
			for i := 0; i < 2; i++ { // all steps are idempotent
				if err := q.CreateSchemaIfNotExists(ctx, schemaName); err != nil {
					return err
				}
				for _, role := range roles {
					if err := q.CreateRoleIfNotExists(ctx, role); err != nil {
						return err
					}
					if err := q.GrantPrivileges(ctx, schemaName, role); err != nil {
						return err
					}
					if err := q.SetSearchPath(ctx, schemaName, role); err != nil {
						return err
					}
				}
			}
			return q.ChangePasswords(ctx, roles, []string{"normal-pass", "admin-pass"})
		})
	})
	require.NoError(t, err)

	err = pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		cc := c.(*postgres.Conn)
		rows, err := cc.Query(ctx, `SELECT rolname::text, rolpassword, array_to_string(rolconfig, ',')
FROM pg_authid WHERE rolname IN ('mysite_test', 'admin_test')
ORDER BY rolname`)
		require.NoError(t, err)
		defer rows.Close()
		type role struct{ name, pass, config string }
		var got []role
		for rows.Next() {
			var r role
			require.NoError(t, rows.Scan(&r.name, &r.pass, &r.config))
			got = append(got, r)
		}
		require.NoError(t, rows.Err())
		require.Len(t, got, 2)
		assert.Equal(t, "admin_test", got[0].name)
		assert.Equal(t, "mysite_test", got[1].name)
		for i, pass := range []string{"admin-pass", "normal-pass"} {
			ok, err := hasher.Verify(pass, got[i].pass)
			require.NoError(t, err)
			assert.True(t, ok, "password of %s", got[i].name)
			assert.Equal(t, "search_path=blogtest", got[i].config)
		}
		return nil
	})
	require.NoError(t, err)
}

func TestChangePasswordsNeedsPairs(t *testing.T) {
	err := schemarp.ChangePasswords(
		context.Background(), nil, "", scram.SHA256(),
		[]repo.Role{repo.AdminRole}, nil,
	)
	assert.ErrorContains(t, err, "got 1 roles and 0 passwords")
}
