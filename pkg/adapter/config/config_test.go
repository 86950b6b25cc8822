// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config_test

import (
	"bytes"
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/momeni/mysite/pkg/adapter/config"
	"github.com/momeni/mysite/pkg/adapter/db/memory"
	"github.com/momeni/mysite/pkg/core/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
database:
  host: 127.0.0.1
  port: 5432
  name: mysite
  pass-dir: /var/lib/mysite
gin:
  logger: true
server:
  address: 127.0.0.1:9000
  read-timeout: 3s
log:
  level: DEBUG
  format: json
blog:
  markdown: false
`

func TestParseFillsDefaults(t *testing.T) {
	c, err := config.Parse([]byte(sample))
	require.NoError(t, err)
	assert.Equal(t, config.DriverPostgres, c.Database.Driver)
	assert.Equal(t, "mysite", c.Database.SchemaName())
	assert.Equal(t, "scram-sha-256", c.Database.AuthMethod)
	name, host, port := c.Database.ConnectionInfo()
	assert.Equal(t, "mysite", name)
	assert.Equal(t, "127.0.0.1", host)
	assert.Equal(t, 5432, port)

	assert.True(t, *c.Gin.Logger)
	assert.True(t, *c.Gin.Recovery)
	assert.Equal(t, "release", c.Gin.Mode)

	assert.Equal(t, "127.0.0.1:9000", c.Server.Address)
	assert.Equal(t, 3*time.Second, time.Duration(*c.Server.ReadTimeout))
	assert.Equal(t, 10*time.Second, time.Duration(*c.Server.WriteTimeout))
	assert.Equal(t, 5*time.Second, time.Duration(*c.Server.ShutdownTimeout))

	assert.Equal(t, "debug", c.Log.Level)
	assert.False(t, *c.Blog.Markdown)
	assert.Equal(t, 30, *c.Blog.ExcerptWords)
	assert.Equal(t, 5, *c.Blog.CommentsPerMinute)
}

func TestParseRejectsBadSettings(t *testing.T) {
	for name, doc := range map[string]string{
		"empty":          "",
		"unknown key":    "databse: {}",
		"bad driver":     "database: {driver: sqlite}",
		"no host":        "database: {port: 5432, name: x, pass-dir: /tmp}",
		"bad port":       "database: {host: h, port: 0, name: x, pass-dir: /tmp}",
		"bad auth":       "database: {driver: postgres, host: h, port: 1, name: x, pass-dir: /tmp, auth-method: md5}",
		"bad gin mode":   "database: {driver: memory}\ngin: {mode: fast}",
		"short timeout":  "database: {driver: memory}\nserver: {read-timeout: 1ms}",
		"bad log level":  "database: {driver: memory}\nlog: {level: loud}",
		"bad log format": "database: {driver: memory}\nlog: {format: xml}",
		"no excerpt":     "database: {driver: memory}\nblog: {excerpt-words: 0}",
		"comments flood": "database: {driver: memory}\nblog: {comments-per-minute: 5000}",
		"bad proxy":      "database: {driver: memory}\ngin: {trusted-proxies: [proxy.local]}",
	} {
		_, err := config.Parse([]byte(doc))
		assert.Error(t, err, name)
	}
}

func TestTrustedProxies(t *testing.T) {
	c, err := config.Parse([]byte(
		"database: {driver: memory}\n" +
			"gin: {mode: test, trusted-proxies: [10.0.0.0/8, 192.168.1.1]}",
	))
	require.NoError(t, err)
	e, err := c.Gin.NewEngine()
	require.NoError(t, err)
	assert.NotNil(t, e)
}

func TestLogger(t *testing.T) {
	c, err := config.Parse([]byte(sample))
	require.NoError(t, err)
	var buf bytes.Buffer
	l := c.Log.NewLogger(&buf)
	l.Debug("hello", "k", "v")
	assert.JSONEq(t, `{"level":"DEBUG","msg":"hello","k":"v"}`,
		removeTime(t, buf.String()))
}

func removeTime(t *testing.T, line string) string {
	i := strings.Index(line, `"level"`)
	require.GreaterOrEqual(t, i, 0, line)
	return "{" + line[i:]
}

func TestResolvePath(t *testing.T) {
	t.Setenv(config.EnvVar, "")
	assert.Equal(t, config.DefaultPath, config.ResolvePath(""))
	t.Setenv(config.EnvVar, "/etc/mysite.yaml")
	assert.Equal(t, "/etc/mysite.yaml", config.ResolvePath(""))
	assert.Equal(t, "x.yaml", config.ResolvePath("x.yaml"))
}

func TestLoadSampleConfig(t *testing.T) {
	c, err := config.Load("../../../configs/sample-config.yaml")
	require.NoError(t, err)
	assert.False(t, c.Database.IsMemory())
}

func TestMemoryDriver(t *testing.T) {
	c, err := config.Parse([]byte("database: {driver: memory}"))
	require.NoError(t, err)
	ctx := context.Background()
	p1, err := c.Database.ConnectionPool(ctx, repo.AdminRole)
	require.NoError(t, err)
	p2, err := c.Database.ConnectionPool(ctx, repo.NormalRole)
	require.NoError(t, err)
	assert.Same(t, p1, p2, "roles share the in-memory pool")
	assert.IsType(t, &memory.Pool{}, p1)
	_, err = c.Database.NewMigrator(p1)
	assert.ErrorIs(t, err, config.ErrNotMigratable)
	assert.IsType(t, &memory.Stores{}, c.Database.Repos().Stores)
}

func TestRenewPasswordsAndConnectionURL(t *testing.T) {
	dir := t.TempDir()
	c, err := config.Parse([]byte(`
database:
  host: db.local
  port: 5433
  name: blog
  pass-dir: ` + dir + `
  role-suffix: _t
`))
	require.NoError(t, err)
	d := &c.Database
	var got []string
	fin, err := d.RenewPasswords(context.Background(),
		func(_ context.Context, roles []repo.Role, passes []string) error {
			assert.Equal(t, []repo.Role{repo.AdminRole, repo.NormalRole}, roles)
			got = passes
			return nil
		}, repo.AdminRole, repo.NormalRole,
	)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.NotEqual(t, got[0], got[1])

	_, err = d.ConnectionURL(repo.AdminRole, filepath.Join(dir, ".pgpass"))
	assert.Error(t, err, "not finalized yet")
	require.NoError(t, fin())
	_, err = os.Stat(filepath.Join(dir, ".pgpass.new"))
	assert.True(t, os.IsNotExist(err))

	u, err := d.ConnectionURL(repo.NormalRole, filepath.Join(dir, ".pgpass"))
	require.NoError(t, err)
	pu, err := url.Parse(u)
	require.NoError(t, err)
	assert.Equal(t, "postgresql", pu.Scheme)
	assert.Equal(t, "mysite_t", pu.User.Username())
	pass, _ := pu.User.Password()
	assert.Equal(t, got[1], pass)
	assert.Equal(t, "db.local:5433", pu.Host)
	assert.Equal(t, "/blog", pu.Path)
}
