// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package tagsrp provides a reification of the repo.Tags interface
// over the tags and post_tags tables.
package tagsrp

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

func (tags *Repo) Conn(c repo.Conn) repo.TagsConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Names(ctx context.Context, pids ...uuid.UUID) (map[uuid.UUID][]string, error) {
	return Names(ctx, cq.Conn, pids...)
}

type txQueryer struct {
	*postgres.Tx
}

func (tags *Repo) Tx(tx repo.Tx) repo.TagsTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Names(ctx context.Context, pids ...uuid.UUID) (map[uuid.UUID][]string, error) {
	return Names(ctx, tq.Tx, pids...)
}

func (tq txQueryer) Set(ctx context.Context, pid uuid.UUID, tags []model.Tag) error {
	return Set(ctx, tq.Tx, pid, tags)
}
