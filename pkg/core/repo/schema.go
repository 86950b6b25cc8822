// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"
	"time"
)

type SchemaConnQueryer interface {
	SchemaQueryer
}

type SchemaTxQueryer interface {
	SchemaQueryer

	// ChangePasswords updates the passwords of the given roles in the
	// current transaction. The roles and passwords slices must have
	// the same number of entries, so they can be used in pair.
	// Passwords are hashed before being sent to the DBMS.
	ChangePasswords(
		ctx context.Context, roles []Role, passwords []string,
	) error
}

// SchemaQueryer covers the operations which an administrator role
// performs before the normal role can create the application tables.
type SchemaQueryer interface {
	// CreateSchemaIfNotExists creates the `schema` schema unless it
	// exists already. Existing tables are kept untouched.
	CreateSchemaIfNotExists(ctx context.Context, schema string) error

	// CreateRoleIfNotExists creates the `role` role with the login
	// option if it does not exist right now. No password is set.
	CreateRoleIfNotExists(ctx context.Context, role Role) error

	// GrantPrivileges grants ALL privileges on the `schema` schema
	// to the `role` role, so it may create and query tables there.
	GrantPrivileges(ctx context.Context, schema string, role Role) error

	// SetSearchPath alters the `role` role and sets its default
	// search_path to the `schema` schema alone.
	SetSearchPath(ctx context.Context, schema string, role Role) error
}

// Schema is the role and privileges management collaborator which is
// used by the database setup use cases.
type Schema interface {
	Conn(Conn) SchemaConnQueryer
	Tx(Tx) SchemaTxQueryer
}

// MigrationState describes one schema migration and whether it is
// applied to the database.
type MigrationState struct {
	Version   int64
	Path      string
	Applied   bool
	AppliedAt time.Time // zero if not applied
}

// Migrator applies or reverts the versioned schema migrations.
// Up applies all pending migrations and Down reverts the last applied
// one. Both return the versions which they have touched.
type Migrator interface {
	Up(ctx context.Context) ([]int64, error)
	Down(ctx context.Context) ([]int64, error)
	Status(ctx context.Context) ([]MigrationState, error)
}
