// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package postgres implements the repo.Pool, repo.Conn, and repo.Tx
// interfaces for a PostgreSQL DBMS using the GORM framework (over the
// pgx driver). Entity repositories live in its sub-packages and use
// the GORM method of Conn and Tx for their queries. Errors which are
// reported by the DBMS are translated to the core errors by the
// TranslateError function.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/momeni/mysite/pkg/core/repo"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Pool is a PostgreSQL connection pool which may be used concurrently.
type Pool struct {
	*gorm.DB
}

// gormLog forwards the slow queries and failed statements which are
// reported by GORM to the default slog logger.
type gormLog struct{}

func (gormLog) Printf(format string, args ...any) {
	slog.Warn("gorm", "msg", fmt.Sprintf(format, args...))
}

// NewPool opens a pool for the url connection string and borrows one
// connection in order to fail early if the database is unreachable.
func NewPool(ctx context.Context, url string) (*Pool, error) {
	gdb, err := gorm.Open(postgres.Open(url), &gorm.Config{
		Logger: logger.New(gormLog{}, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("opening gorm: %w", err)
	}
	pool := &Pool{DB: gdb}
	if err = pool.Conn(ctx, NoOpConnHandler); err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("checking connection: %w", err)
	}
	return pool, nil
}

type ConnHandler = repo.ConnHandler

// NoOpConnHandler accepts any connection.
func NoOpConnHandler(context.Context, repo.Conn) error {
	return nil
}

// Conn pins one connection of p for the f duration.
func (p *Pool) Conn(ctx context.Context, f ConnHandler) error {
	return p.DB.WithContext(ctx).Connection(func(gdb *gorm.DB) error {
		return f(ctx, &Conn{DB: gdb})
	})
}

// SQLDB exposes the database/sql handle for goose migrations.
func (p *Pool) SQLDB() (*sql.DB, error) {
	return p.DB.DB()
}

func (p *Pool) Close() error {
	sqlDB, err := p.DB.DB()
	if err != nil {
		return fmt.Errorf("getting sql.DB: %w", err)
	}
	return sqlDB.Close()
}
