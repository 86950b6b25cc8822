// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package setupuc provides the database setup use cases. The UseCase
// initializes a database for the development or production environment
// (creating the normal role, granting it privileges, renewing role
// passwords, and migrating the schema up) and runs the schema
// migrations on demand. It also exports Seed which fills a database
// with development suitable sample data.
//
// The Database interface represents the version-independent
// expectations from the database section of a configuration file,
// so the use cases layer does not need to know about config formats.
package setupuc

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/momeni/mysite/pkg/core/log"
	"github.com/momeni/mysite/pkg/core/repo"
)

// Database represents the database-related settings which should be
// provided by a configuration file.
type Database interface {
	// ConnectionPool creates a database connection pool for the `r`
	// role. Password values are kept in pass files, one per line with
	// this format:
	//
	//	host:port:dbname:role:password
	//
	// If a temporary passwords file (left by an interrupted passwords
	// renewal) holds the working password, it is moved over the main
	// passwords file before returning.
	ConnectionPool(ctx context.Context, r repo.Role) (repo.Pool, error)

	// ConnectionInfo returns the database name, host, and port.
	ConnectionInfo() (dbName, host string, port int)

	// SchemaName returns the schema which keeps the application
	// tables.
	SchemaName() string

	// NewSchemaRepo instantiates a fresh Schema repository. Role names
	// which are passed to its methods are suffixed automatically if a
	// role suffix is configured.
	NewSchemaRepo() repo.Schema

	// NewMigrator creates a schema migrator which runs its migrations
	// using the connections of the `p` pool.
	NewMigrator(p repo.Pool) (repo.Migrator, error)

	// RenewPasswords generates new secure passwords for the given
	// roles, records them in a temporary passwords file, and calls
	// change to update them in the database. The change function
	// runs in a transaction which is committed after RenewPasswords
	// returns; the returned finalizer moves the temporary passwords
	// file over the main one and must be called after that commit.
	RenewPasswords(
		ctx context.Context,
		change func(
			ctx context.Context,
			roles []repo.Role,
			passwords []string,
		) error,
		roles ...repo.Role,
	) (finalizer func() error, err error)
}

// UseCase represents the database setup use case.
type UseCase struct {
	db    Database
	repos Repos
}

// New creates a setup UseCase for the db database. The repos are
// used for seeding the sample data by InitDev.
func New(db Database, repos Repos) *UseCase {
	return &UseCase{db: db, repos: repos}
}

// InitProd prepares the database with the admin role and migrates its
// schema up to the latest version with the normal role.
// The admin role creates the schema and normal role (if they do not
// exist), grants ALL privileges on that schema to the normal role, sets
// the normal role search_path, and renews passwords of both roles.
// These operations are performed in a single transaction and are
// coordinated with the passwords files, so they may be repeated in
// case of an abrupt failure. Running InitProd on an initialized
// database only renews the passwords and applies pending migrations.
func (uc *UseCase) InitProd(ctx context.Context) error {
	if err := uc.prepare(ctx); err != nil {
		return fmt.Errorf("preparing schema and roles: %w", err)
	}
	if _, err := uc.MigrateUp(ctx); err != nil {
		return err
	}
	return nil
}

// InitDev performs the InitProd operations and then fills the database
// with sample stores, an author, posts, and comments.
func (uc *UseCase) InitDev(ctx context.Context) error {
	if err := uc.InitProd(ctx); err != nil {
		return err
	}
	p, err := uc.db.ConnectionPool(ctx, repo.NormalRole)
	if err != nil {
		return fmt.Errorf("creating DB pool for normal role: %w", err)
	}
	defer p.Close()
	if err := Seed(ctx, p, uc.repos); err != nil {
		return fmt.Errorf("seeding sample data: %w", err)
	}
	return nil
}

func (uc *UseCase) prepare(ctx context.Context) error {
	p, err := uc.db.ConnectionPool(ctx, repo.AdminRole)
	if err != nil {
		return fmt.Errorf("creating DB pool for admin: %w", err)
	}
	defer p.Close()
	schemaRepo := uc.db.NewSchemaRepo()
	sn := uc.db.SchemaName()
	var finalizer func() error
	err = p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			q := schemaRepo.Tx(tx)
			if err := q.CreateSchemaIfNotExists(ctx, sn); err != nil {
				return fmt.Errorf("creating %q: %w", sn, err)
			}
			if err := q.CreateRoleIfNotExists(
				ctx, repo.NormalRole,
			); err != nil {
				return fmt.Errorf("creating normal role: %w", err)
			}
			if err := q.GrantPrivileges(
				ctx, sn, repo.NormalRole,
			); err != nil {
				return fmt.Errorf("granting normal role privs: %w", err)
			}
			if err := q.SetSearchPath(
				ctx, sn, repo.NormalRole,
			); err != nil {
				return fmt.Errorf(
					"setting search_path of normal role to %q: %w",
					sn, err,
				)
			}
			finalizer, err = uc.db.RenewPasswords(
				ctx, q.ChangePasswords, repo.AdminRole, repo.NormalRole,
			)
			if err != nil {
				return fmt.Errorf("RenewPasswords: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		return fmt.Errorf("admin connection: %w", err)
	}
	if err := finalizer(); err != nil {
		return fmt.Errorf("finalizing passwords renewal: %w", err)
	}
	dbName, host, port := uc.db.ConnectionInfo()
	log.Info(
		ctx, "database roles are prepared",
		slog.String("database", dbName), slog.String("host", host),
		slog.Int("port", port), slog.String("schema", sn),
	)
	return nil
}

// MigrateUp applies all pending migrations with the normal role and
// returns their versions.
func (uc *UseCase) MigrateUp(ctx context.Context) ([]int64, error) {
	return uc.migrate(ctx, "up", repo.Migrator.Up)
}

// MigrateDown reverts the last applied migration with the normal role
// and returns its version.
func (uc *UseCase) MigrateDown(ctx context.Context) ([]int64, error) {
	return uc.migrate(ctx, "down", repo.Migrator.Down)
}

func (uc *UseCase) migrate(
	ctx context.Context, direction string,
	f func(repo.Migrator, context.Context) ([]int64, error),
) ([]int64, error) {
	var vers []int64
	err := uc.withMigrator(ctx, func(m repo.Migrator) (err error) {
		vers, err = f(m, ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("migrating %s: %w", direction, err)
	}
	for _, v := range vers {
		log.Info(
			ctx, "schema migration is done",
			slog.String("direction", direction), slog.Int64("version", v),
		)
	}
	return vers, nil
}

// MigrationStatus lists all known migrations and whether they are
// applied to the database.
func (uc *UseCase) MigrationStatus(ctx context.Context) (
	states []repo.MigrationState, err error,
) {
	err = uc.withMigrator(ctx, func(m repo.Migrator) (err error) {
		states, err = m.Status(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("migration status: %w", err)
	}
	return states, nil
}

func (uc *UseCase) withMigrator(
	ctx context.Context, f func(repo.Migrator) error,
) error {
	p, err := uc.db.ConnectionPool(ctx, repo.NormalRole)
	if err != nil {
		return fmt.Errorf("creating DB pool for normal role: %w", err)
	}
	defer p.Close()
	m, err := uc.db.NewMigrator(p)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	return f(m)
}
