// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package setupuc_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/momeni/mysite/pkg/adapter/db/memory"
	"github.com/momeni/mysite/pkg/core/repo"
	"github.com/momeni/mysite/pkg/core/usecase/commentsuc"
	"github.com/momeni/mysite/pkg/core/usecase/postsuc"
	"github.com/momeni/mysite/pkg/core/usecase/setupuc"
	"github.com/momeni/mysite/pkg/core/usecase/storesuc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryRepos() setupuc.Repos {
	return setupuc.Repos{
		Stores:   memory.NewStores(),
		Posts:    memory.NewPosts(),
		Comments: memory.NewComments(),
		Tags:     memory.NewTags(),
		Users:    memory.NewUsers(),
	}
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	p := memory.NewPool()
	r := memoryRepos()
	require.NoError(t, setupuc.Seed(ctx, p, r))

	ss, err := storesuc.New(p, r.Stores).List(ctx)
	require.NoError(t, err)
	assert.Len(t, ss, 3)

	posts, err := postsuc.New(p, r.Posts, r.Tags, r.Users)
	require.NoError(t, err)
	all, err := posts.AllPosts(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	published, err := posts.PublishedPosts(ctx)
	require.NoError(t, err)
	require.Len(t, published, 2)
	assert.Equal(t, "serving-coffee-with-go", published[0].Slug)
	assert.Equal(t, []string{"Coffee", "Go"}, published[0].Tags)

	comments, err := commentsuc.New(p, r.Comments, r.Posts)
	require.NoError(t, err)
	cs, err := comments.ForPost(ctx, published[1].ID, true)
	require.NoError(t, err)
	require.Len(t, cs, 2)
	assert.ElementsMatch(
		t, []string{"Ann", "Bob"}, []string{cs[0].Name, cs[1].Name},
	)
}

// fakeDatabase records the setup steps and hands out in-memory pools.
type fakeDatabase struct {
	steps   []string
	pool    *memory.Pool
	applied []int64
	failAt  string
}

func (fd *fakeDatabase) step(s string) error {
	fd.steps = append(fd.steps, s)
	if s == fd.failAt {
		return errors.New("failed at " + s)
	}
	return nil
}

func (fd *fakeDatabase) ConnectionPool(ctx context.Context, r repo.Role) (repo.Pool, error) {
	if err := fd.step("pool " + string(r)); err != nil {
		return nil, err
	}
	return fd.pool, nil
}

func (fd *fakeDatabase) ConnectionInfo() (string, string, int) {
	return "mysite", "localhost", 5432
}

func (fd *fakeDatabase) SchemaName() string {
	return "mysite"
}

func (fd *fakeDatabase) NewSchemaRepo() repo.Schema {
	return fakeSchema{fd}
}

func (fd *fakeDatabase) NewMigrator(p repo.Pool) (repo.Migrator, error) {
	return fakeMigrator{fd}, nil
}

func (fd *fakeDatabase) RenewPasswords(
	ctx context.Context,
	change func(context.Context, []repo.Role, []string) error,
	roles ...repo.Role,
) (func() error, error) {
	passes := make([]string, len(roles))
	for i := range roles {
		passes[i] = fmt.Sprintf("pass%d", i)
	}
	if err := change(ctx, roles, passes); err != nil {
		return nil, err
	}
	return func() error { return fd.step("finalize passwords") }, nil
}

type fakeSchema struct {
	fd *fakeDatabase
}

func (fs fakeSchema) Conn(repo.Conn) repo.SchemaConnQueryer {
	return fs
}

func (fs fakeSchema) Tx(repo.Tx) repo.SchemaTxQueryer {
	return fs
}

func (fs fakeSchema) CreateSchemaIfNotExists(ctx context.Context, schema string) error {
	return fs.fd.step("create schema " + schema)
}

func (fs fakeSchema) CreateRoleIfNotExists(ctx context.Context, role repo.Role) error {
	return fs.fd.step("create role " + string(role))
}

func (fs fakeSchema) GrantPrivileges(ctx context.Context, schema string, role repo.Role) error {
	return fs.fd.step("grant " + schema + " to " + string(role))
}

func (fs fakeSchema) SetSearchPath(ctx context.Context, schema string, role repo.Role) error {
	return fs.fd.step("search_path " + schema + " for " + string(role))
}

func (fs fakeSchema) ChangePasswords(ctx context.Context, roles []repo.Role, passwords []string) error {
	return fs.fd.step(fmt.Sprintf("change passwords %v", roles))
}

type fakeMigrator struct {
	fd *fakeDatabase
}

func (fm fakeMigrator) Up(ctx context.Context) ([]int64, error) {
	if err := fm.fd.step("migrate up"); err != nil {
		return nil, err
	}
	if len(fm.fd.applied) != 0 {
		return nil, nil
	}
	fm.fd.applied = []int64{1}
	return []int64{1}, nil
}

func (fm fakeMigrator) Down(ctx context.Context) ([]int64, error) {
	if err := fm.fd.step("migrate down"); err != nil {
		return nil, err
	}
	fm.fd.applied = nil
	return []int64{1}, nil
}

func (fm fakeMigrator) Status(ctx context.Context) ([]repo.MigrationState, error) {
	return []repo.MigrationState{{
		Version: 1, Path: "00001_init.sql", Applied: len(fm.fd.applied) != 0,
	}}, nil
}

func TestInitProdSteps(t *testing.T) {
	ctx := context.Background()
	fd := &fakeDatabase{pool: memory.NewPool()}
	uc := setupuc.New(fd, memoryRepos())
	require.NoError(t, uc.InitProd(ctx))
	assert.Equal(t, []string{
		"pool admin",
		"create schema mysite",
		"create role mysite",
		"grant mysite to mysite",
		"search_path mysite for mysite",
		"change passwords [admin mysite]",
		"finalize passwords",
		"pool mysite",
		"migrate up",
	}, fd.steps)

	states, err := uc.MigrationStatus(ctx)
	require.NoError(t, err)
	require.Len(t, states, 1)
	assert.True(t, states[0].Applied)

	vers, err := uc.MigrateDown(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, vers)
}

func TestInitProdKeepsPasswordsOnFailure(t *testing.T) {
	fd := &fakeDatabase{
		pool: memory.NewPool(), failAt: "search_path mysite for mysite",
	}
	err := setupuc.New(fd, memoryRepos()).InitProd(context.Background())
	require.Error(t, err)
	assert.NotContains(t, fd.steps, "finalize passwords")
	assert.NotContains(t, fd.steps, "migrate up")
}

func TestInitDevSeeds(t *testing.T) {
	ctx := context.Background()
	fd := &fakeDatabase{pool: memory.NewPool()}
	r := memoryRepos()
	require.NoError(t, setupuc.New(fd, r).InitDev(ctx))

	ss, err := storesuc.New(fd.pool, r.Stores).List(ctx)
	require.NoError(t, err)
	assert.Len(t, ss, 3)
}
