// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/momeni/mysite/pkg/adapter/db/memory"
	"github.com/momeni/mysite/pkg/adapter/db/postgres"
	"github.com/momeni/mysite/pkg/adapter/db/postgres/commentsrp"
	"github.com/momeni/mysite/pkg/adapter/db/postgres/migration"
	"github.com/momeni/mysite/pkg/adapter/db/postgres/postsrp"
	"github.com/momeni/mysite/pkg/adapter/db/postgres/schemarp"
	"github.com/momeni/mysite/pkg/adapter/db/postgres/storesrp"
	"github.com/momeni/mysite/pkg/adapter/db/postgres/tagsrp"
	"github.com/momeni/mysite/pkg/adapter/db/postgres/usersrp"
	"github.com/momeni/mysite/pkg/adapter/hash/scram"
	"github.com/momeni/mysite/pkg/core/log"
	"github.com/momeni/mysite/pkg/core/repo"
	scrami "github.com/momeni/mysite/pkg/core/scram"
	"github.com/momeni/mysite/pkg/core/usecase/setupuc"
)

// These constants name the supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// ErrNotMigratable indicates that the configured driver keeps no
// persistent schema, so it may not be initialized or migrated.
var ErrNotMigratable = errors.New("in-memory database has no schema to migrate")

// Database contains the database related configuration settings.
// It implements the setupuc.Database interface.
type Database struct {
	// Driver is either postgres (the default) or memory. The memory
	// driver keeps all rows in the process and ignores other settings.
	Driver string `yaml:",omitempty"`

	Host    string // domain name or IP address of the DBMS server
	Port    int    // port number of the DBMS server
	Name    string // database name, like mysite
	Schema  string `yaml:",omitempty"` // tables schema, mysite by default
	PassDir string `yaml:"pass-dir"`   // path of the passwords dir

	// RoleSuffix specifies a possibly empty suffix for the database
	// role names. Normally, repo.AdminRole and repo.NormalRole roles
	// are used. Tests which share a database cluster may use unique
	// suffixes in order to create non-colliding roles.
	RoleSuffix repo.Role `yaml:"role-suffix,omitempty"`

	// AuthMethod specifies how passwords should be hashed before being
	// sent to the DBMS. Currently, scram-sha-1 and scram-sha-256 (the
	// default) are supported.
	AuthMethod string `yaml:"auth-method,omitempty"`

	hasher scrami.Hasher
	mem    *memory.Pool
}

var _ setupuc.Database = (*Database)(nil)

// IsMemory reports if the in-memory driver is configured.
func (d *Database) IsMemory() bool {
	return d.Driver == DriverMemory
}

// ConnectionPool creates a database connection pool using the
// connection information which are kept in the `d` settings.
// Initially, the .pgpass file in the d.PassDir folder is checked
// which should conform with the pgpass format with lines like this:
//
//	host:port:dbname:role:password
//
// If a database connection could not be established, passwords might
// have been updated during a previous incomplete renewal. So the
// .pgpass.new file in the same folder is checked too and upon success,
// it is moved over the .pgpass file.
//
// The `d.RoleSuffix` will be appended to the given `r` role name too.
// With the memory driver, all roles share one in-process pool.
func (d *Database) ConnectionPool(
	ctx context.Context, r repo.Role,
) (repo.Pool, error) {
	if d.IsMemory() {
		return d.mem, nil
	}
	path := filepath.Join(d.PassDir, ".pgpass")
	u, err := d.ConnectionURL(r, path)
	if err != nil {
		return nil, fmt.Errorf("using %q pass-file: %w", path, err)
	}
	p, err := postgres.NewPool(ctx, u)
	if err == nil {
		return p, nil
	}
	newPath := filepath.Join(d.PassDir, ".pgpass.new")
	log.Warn(
		ctx, "cannot connect, trying the new pass-file",
		log.Err("error", err), slog.String("path", newPath),
	)
	u, err = d.ConnectionURL(r, newPath)
	if err != nil {
		return nil, fmt.Errorf("using %q pass-file: %w", newPath, err)
	}
	p, err = postgres.NewPool(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("can use neither pass-file: %w", err)
	}
	if err = os.Rename(newPath, path); err != nil {
		p.Close()
		return nil, fmt.Errorf("os.Rename: %w", err)
	}
	return p, nil
}

// ConnectionURL returns the postgresql connection URL for the `r` role
// (suffixed by d.RoleSuffix), reading its password from the `path`
// pgpass file. Empty and `#`-commented lines are ignored.
func (d *Database) ConnectionURL(
	r repo.Role, path string,
) (string, error) {
	passLines, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading pass-file: %w", err)
	}
	r = r + d.RoleSuffix
	prfx := fmt.Sprintf("%s:%d:%s:%s:", d.Host, d.Port, d.Name, r)
	var pass string
	for _, line := range strings.Split(string(passLines), "\n") {
		if line == "" || line[0] == '#' {
			continue
		}
		if strings.HasPrefix(line, prfx) {
			pass = line[len(prfx):]
			break
		}
	}
	if pass == "" {
		return "", fmt.Errorf("no matching password line")
	}
	u := url.URL{
		Scheme: "postgresql",
		User:   url.UserPassword(string(r), pass),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.Name,
	}
	return u.String(), nil
}

// ConnectionInfo returns the database name, host, and port.
func (d *Database) ConnectionInfo() (dbName, host string, port int) {
	return d.Name, d.Host, d.Port
}

// SchemaName returns the schema which keeps the application tables.
func (d *Database) SchemaName() string {
	return d.Schema
}

// NewSchemaRepo instantiates a fresh Schema repository which suffixes
// role names by d.RoleSuffix and hashes passwords as configured by
// d.AuthMethod. ValidateAndNormalize must be called beforehand.
func (d *Database) NewSchemaRepo() repo.Schema {
	return schemarp.New(d.RoleSuffix, d.hasher)
}

// NewMigrator creates a goose based migrator for a PostgreSQL pool,
// as created by the ConnectionPool method.
func (d *Database) NewMigrator(p repo.Pool) (repo.Migrator, error) {
	pp, ok := p.(*postgres.Pool)
	if !ok {
		return nil, ErrNotMigratable
	}
	m, err := migration.New(pp)
	if err != nil {
		return nil, fmt.Errorf("migration.New: %w", err)
	}
	return m, nil
}

// RenewPasswords generates new secure passwords for the given roles
// and after recording them in the .pgpass.new file (in d.PassDir),
// will use the `change` function in order to update the passwords of
// those `roles` in the database too. The returned finalizer moves the
// .pgpass.new file over the .pgpass file and must be called after the
// `change` transaction commits.
//
// The `d.RoleSuffix` will be appended to the recorded role names.
// The `change` function must add the same suffix to the `roles` names
// in order to remain consistent with the in-file recorded information.
func (d *Database) RenewPasswords(
	ctx context.Context,
	change func(
		ctx context.Context, roles []repo.Role, passwords []string,
	) error,
	roles ...repo.Role,
) (finalizer func() error, err error) {
	if d.IsMemory() {
		return nil, ErrNotMigratable
	}
	passwords := make([]string, len(roles))
	b := make([]byte, 16) // 128 bits
	enc := base64.RawStdEncoding
	prfx := fmt.Sprintf("%s:%d:%s", d.Host, d.Port, d.Name)
	lines := make([]string, len(passwords))
	for i, r := range roles {
		if _, err = rand.Read(b); err != nil {
			return nil, fmt.Errorf("rand.Read for i=%d: %w", i, err)
		}
		passwords[i] = enc.EncodeToString(b)
		r = r + d.RoleSuffix
		lines[i] = fmt.Sprintf("%s:%s:%s\n", prfx, r, passwords[i])
	}
	orgPath := filepath.Join(d.PassDir, ".pgpass")
	newPath := filepath.Join(d.PassDir, ".pgpass.new")
	finalizer = func() error {
		return os.Rename(newPath, orgPath)
	}
	err = os.WriteFile(newPath, []byte(strings.Join(lines, "")), 0o600)
	if err != nil {
		return nil, fmt.Errorf("writing %q file: %w", newPath, err)
	}
	if err = change(ctx, roles, passwords); err != nil {
		return nil, fmt.Errorf("passwords change callback: %w", err)
	}
	return finalizer, nil
}

// Repos instantiates the entity repositories of the configured driver.
func (d *Database) Repos() setupuc.Repos {
	if d.IsMemory() {
		return setupuc.Repos{
			Stores:   memory.NewStores(),
			Posts:    memory.NewPosts(),
			Comments: memory.NewComments(),
			Tags:     memory.NewTags(),
			Users:    memory.NewUsers(),
		}
	}
	return setupuc.Repos{
		Stores:   storesrp.New(),
		Posts:    postsrp.New(),
		Comments: commentsrp.New(),
		Tags:     tagsrp.New(),
		Users:    usersrp.New(),
	}
}

// ValidateAndNormalize validates the database settings and fills the
// missing ones with their defaults. It also instantiates the password
// hasher (or the in-memory pool) as configured.
func (d *Database) ValidateAndNormalize() error {
	if d.Schema == "" {
		d.Schema = "mysite"
	}
	switch d.Driver {
	case "":
		d.Driver = DriverPostgres
	case DriverPostgres:
	case DriverMemory:
		if d.mem == nil {
			d.mem = memory.NewPool()
		}
		return nil
	default:
		return fmt.Errorf("unsupported driver: %q", d.Driver)
	}
	switch am := d.AuthMethod; am {
	case "scram-sha-1":
		d.hasher = scram.SHA1()
	case "":
		d.AuthMethod = "scram-sha-256"
		fallthrough
	case "scram-sha-256":
		d.hasher = scram.SHA256()
	default:
		return fmt.Errorf(
			"unsupported database authentication method: %q", am,
		)
	}
	switch {
	case d.Host == "":
		return errors.New("host is required")
	case d.Port <= 0 || d.Port > 65535:
		return fmt.Errorf("invalid port: %d", d.Port)
	case d.Name == "":
		return errors.New("name is required")
	case d.PassDir == "":
		return errors.New("pass-dir is required")
	}
	return nil
}
