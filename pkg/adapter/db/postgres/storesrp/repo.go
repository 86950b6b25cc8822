// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package storesrp provides a reification of the repo.Stores interface
// over the stores table.
package storesrp

import (
	"context"

	"github.com/google/uuid"
	"github.com/momeni/mysite/pkg/adapter/db/postgres"
	"github.com/momeni/mysite/pkg/core/model"
	"github.com/momeni/mysite/pkg/core/repo"
)

type Repo struct {
}

func New() *Repo {
	return &Repo{}
}

type connQueryer struct {
	*postgres.Conn
}

func (stores *Repo) Conn(c repo.Conn) repo.StoresConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Insert(ctx context.Context, s *model.Store) error {
	return Insert(ctx, cq.Conn, s)
}

func (cq connQueryer) Get(ctx context.Context, sid uuid.UUID) (*model.Store, error) {
	return Get(ctx, cq.Conn, sid)
}

func (cq connQueryer) List(ctx context.Context) ([]model.Store, error) {
	return List(ctx, cq.Conn)
}

func (cq connQueryer) Update(ctx context.Context, s *model.Store) error {
	return Update(ctx, cq.Conn, s)
}

func (cq connQueryer) Delete(ctx context.Context, sid uuid.UUID) error {
	return Delete(ctx, cq.Conn, sid)
}

type txQueryer struct {
	*postgres.Tx
}

func (stores *Repo) Tx(tx repo.Tx) repo.StoresTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Insert(ctx context.Context, s *model.Store) error {
	return Insert(ctx, tq.Tx, s)
}

func (tq txQueryer) Get(ctx context.Context, sid uuid.UUID) (*model.Store, error) {
	return Get(ctx, tq.Tx, sid)
}

func (tq txQueryer) List(ctx context.Context) ([]model.Store, error) {
	return List(ctx, tq.Tx)
}

func (tq txQueryer) Update(ctx context.Context, s *model.Store) error {
	return Update(ctx, tq.Tx, s)
}

func (tq txQueryer) Delete(ctx context.Context, sid uuid.UUID) error {
	return Delete(ctx, tq.Tx, sid)
}
