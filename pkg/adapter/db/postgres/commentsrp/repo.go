// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package commentsrp provides a reification of the repo.Comments
// interface over the comments table.
package commentsrp

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

func (comments *Repo) Conn(c repo.Conn) repo.CommentsConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Insert(ctx context.Context, c *model.Comment) error {
	return Insert(ctx, cq.Conn, c)
}

func (cq connQueryer) Get(ctx context.Context, cmid uuid.UUID) (*model.Comment, error) {
	return Get(ctx, cq.Conn, cmid)
}

func (cq connQueryer) Update(ctx context.Context, c *model.Comment) error {
	return Update(ctx, cq.Conn, c)
}

func (cq connQueryer) ForPost(ctx context.Context, pid uuid.UUID, onlyActive bool) ([]model.Comment, error) {
	return ForPost(ctx, cq.Conn, pid, onlyActive)
}

type txQueryer struct {
	*postgres.Tx
}

func (comments *Repo) Tx(tx repo.Tx) repo.CommentsTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Insert(ctx context.Context, c *model.Comment) error {
	return Insert(ctx, tq.Tx, c)
}

func (tq txQueryer) Get(ctx context.Context, cmid uuid.UUID) (*model.Comment, error) {
	return Get(ctx, tq.Tx, cmid)
}

func (tq txQueryer) Update(ctx context.Context, c *model.Comment) error {
	return Update(ctx, tq.Tx, c)
}

func (tq txQueryer) ForPost(ctx context.Context, pid uuid.UUID, onlyActive bool) ([]model.Comment, error) {
	return ForPost(ctx, tq.Tx, pid, onlyActive)
}
