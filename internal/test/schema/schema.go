// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package schema provides database schema verifiers for the integration
// tests. A Verifier checks that the migrated tables and their columns
// are in place and may check for presence of the development suitable
// sample data. Presence of extra tables, columns, or rows is accepted.
package schema

import (
	"context"
	"fmt"
	"testing"

	"github.com/momeni/mysite/pkg/core/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Columns lists the expected columns of each table after running all
// migrations.
var Columns = map[string][]string{
	"users":     {"uid", "username"},
	"stores":    {"sid", "name", "address", "city", "state"},
	"posts":     {"pid", "title", "slug", "author_id", "body", "publish", "created", "updated", "status"},
	"comments":  {"cmid", "post_id", "name", "email", "body", "created", "updated", "active"},
	"tags":      {"tid", "name", "slug"},
	"post_tags": {"post_id", "tag_id"},
}

// Verifier wraps a connection or transaction which is used for
// querying the catalog and application tables.
type Verifier struct {
	q repo.Queryer
}

// New instantiates a Verifier struct, wrapping the `q` queryer.
func New(q repo.Queryer) *Verifier {
	return &Verifier{q}
}

// VerifySchema ensures that all tables of Columns exist in the current
// search_path with all of their columns.
func (v *Verifier) VerifySchema(ctx context.Context, t *testing.T) {
	for table, cols := range Columns {
		got := v.strings(ctx, t, `SELECT column_name::text
FROM information_schema.columns
WHERE table_schema = current_schema() AND table_name = ?`, table)
		for _, c := range cols {
			assert.Contains(t, got, c, "table %q misses a column", table)
		}
	}
}

// VerifyNoTables ensures that no table of Columns exists, as expected
// after reverting all migrations.
func (v *Verifier) VerifyNoTables(ctx context.Context, t *testing.T) {
	for table := range Columns {
		got := v.strings(ctx, t, `SELECT table_name::text
FROM information_schema.tables
WHERE table_schema = current_schema() AND table_name = ?`, table)
		assert.Empty(t, got, "table %q must not exist", table)
	}
}

// VerifyDevData checks for presence of the development suitable sample
// data and marks possible issues using the `t` testing argument.
func (v *Verifier) VerifyDevData(ctx context.Context, t *testing.T) {
	for table, minRows := range map[string]int{
		"users": 1, "stores": 3, "posts": 3, "comments": 3, "tags": 3,
	} {
		cnt := v.strings(ctx, t, fmt.Sprintf(
			"SELECT count(*)::text FROM %s", table,
		))
		require.Len(t, cnt, 1)
		var n int
		_, err := fmt.Sscan(cnt[0], &n)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, minRows, "rows of %q table", table)
	}
	published := v.strings(ctx, t,
		"SELECT slug FROM posts WHERE status = 'published' ORDER BY publish DESC",
	)
	assert.Equal(t, []string{"serving-coffee-with-go", "hello-world"}, published)
}

func (v *Verifier) strings(
	ctx context.Context, t *testing.T, sql string, args ...any,
) []string {
	rows, err := v.q.Query(ctx, sql, args...)
	require.NoError(t, err, "querying %q", sql)
	defer rows.Close()
	var ss []string
	for rows.Next() {
		var s string
		require.NoError(t, rows.Scan(&s))
		ss = append(ss, s)
	}
	require.NoError(t, rows.Err())
	return ss
}
