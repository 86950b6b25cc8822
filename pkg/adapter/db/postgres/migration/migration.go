// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package migration keeps the versioned database schema migrations and
// runs them with the goose library. Migration files are embedded in the
// binary, so the schema version always matches the repositories code.
// Each NNNNN_name.sql file has an Up and a Down section; versions are
// recorded in the goose_db_version table of the normal role schema.
package migration

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/momeni/mysite/pkg/adapter/db/postgres"
	"github.com/momeni/mysite/pkg/core/repo"
	"github.com/pressly/goose/v3"
)

//go:embed sql/*.sql
var embedded embed.FS

// Migrator implements the repo.Migrator interface using a goose
// Provider.
type Migrator struct {
	provider *goose.Provider
}

// New creates a Migrator which runs the embedded migrations on the
// database of the p pool.
func New(p *postgres.Pool) (*Migrator, error) {
	db, err := p.SQLDB()
	if err != nil {
		return nil, fmt.Errorf("obtaining sql.DB: %w", err)
	}
	fsys, err := fs.Sub(embedded, "sql")
	if err != nil {
		return nil, fmt.Errorf("opening embedded migrations: %w", err)
	}
	prov, err := goose.NewProvider(goose.DialectPostgres, db, fsys)
	if err != nil {
		return nil, fmt.Errorf("goose.NewProvider: %w", err)
	}
	return &Migrator{provider: prov}, nil
}

// Up applies all pending migrations, returning their versions.
func (m *Migrator) Up(ctx context.Context) ([]int64, error) {
	res, err := m.provider.Up(ctx)
	if err != nil {
		return nil, err
	}
	vers := make([]int64, 0, len(res))
	for _, r := range res {
		vers = append(vers, r.Source.Version)
	}
	return vers, nil
}

// Down reverts the last applied migration, returning its version.
// Nothing is reverted (and no error is returned) when no migration
// is applied.
func (m *Migrator) Down(ctx context.Context) ([]int64, error) {
	res, err := m.provider.Down(ctx)
	switch {
	case errors.Is(err, goose.ErrNoNextVersion):
		return nil, nil
	case err != nil:
		return nil, err
	}
	return []int64{res.Source.Version}, nil
}

// Status lists all embedded migrations in their version order.
func (m *Migrator) Status(ctx context.Context) ([]repo.MigrationState, error) {
	ss, err := m.provider.Status(ctx)
	if err != nil {
		return nil, err
	}
	states := make([]repo.MigrationState, 0, len(ss))
	for _, s := range ss {
		states = append(states, repo.MigrationState{
			Version:   s.Source.Version,
			Path:      s.Source.Path,
			Applied:   s.State == goose.StateApplied,
			AppliedAt: s.AppliedAt,
		})
	}
	return states, nil
}
