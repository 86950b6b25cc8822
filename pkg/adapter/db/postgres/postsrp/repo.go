// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package postsrp provides a reification of the repo.Posts interface
// over the posts table. The repo.PostQuery predicates are converted to
// SQL conditions, so filtering and ordering happen in the DBMS.
package postsrp

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

func (posts *Repo) Conn(c repo.Conn) repo.PostsConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Insert(ctx context.Context, p *model.Post) error {
	return Insert(ctx, cq.Conn, p)
}

func (cq connQueryer) Get(ctx context.Context, pid uuid.UUID) (*model.Post, error) {
	return Get(ctx, cq.Conn, pid)
}

func (cq connQueryer) Update(ctx context.Context, p *model.Post) error {
	return Update(ctx, cq.Conn, p)
}

func (cq connQueryer) Filter(ctx context.Context, limit int, filters ...repo.PostFilter) ([]model.Post, error) {
	return Filter(ctx, cq.Conn, limit, filters...)
}

type txQueryer struct {
	*postgres.Tx
}

// Tx wraps tx as a repo.PostsTxQueryer. Deleting a post is only
// possible in a transaction since it removes rows of three tables.
func (posts *Repo) Tx(tx repo.Tx) repo.PostsTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Insert(ctx context.Context, p *model.Post) error {
	return Insert(ctx, tq.Tx, p)
}

func (tq txQueryer) Get(ctx context.Context, pid uuid.UUID) (*model.Post, error) {
	return Get(ctx, tq.Tx, pid)
}

func (tq txQueryer) Update(ctx context.Context, p *model.Post) error {
	return Update(ctx, tq.Tx, p)
}

func (tq txQueryer) Filter(ctx context.Context, limit int, filters ...repo.PostFilter) ([]model.Post, error) {
	return Filter(ctx, tq.Tx, limit, filters...)
}

func (tq txQueryer) Delete(ctx context.Context, pid uuid.UUID) error {
	return Delete(ctx, tq.Tx, pid)
}
