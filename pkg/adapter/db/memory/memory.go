// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package memory implements the repo interfaces without a DBMS.
// All rows are kept in maps which are guarded by one mutex. Every
// statement which runs on a Conn takes that mutex, while a Tx takes it
// for its whole lifetime and works on a snapshot of the rows. That
// snapshot replaces the shared rows if the transaction commits, so the
// rolled back transactions leave no trace.
//
// It serves the use cases and web resources tests and may be selected
// with the "memory" database driver for local experiments. Data is
// lost when the process exits.
package memory

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/momeni/mysite/pkg/core/model"
	"github.com/momeni/mysite/pkg/core/repo"
)

type state struct {
	stores   map[uuid.UUID]model.Store
	users    map[uuid.UUID]model.User
	posts    map[uuid.UUID]model.Post
	comments map[uuid.UUID]model.Comment
	tags     map[string]model.Tag   // by slug
	postTags map[uuid.UUID][]string // post ID to tag slugs
}

func newState() *state {
	return &state{
		stores:   make(map[uuid.UUID]model.Store),
		users:    make(map[uuid.UUID]model.User),
		posts:    make(map[uuid.UUID]model.Post),
		comments: make(map[uuid.UUID]model.Comment),
		tags:     make(map[string]model.Tag),
		postTags: make(map[uuid.UUID][]string),
	}
}

// clone returns a copy of st which may be modified independently.
// Model values are copied by value; the only shared slices (post tags)
// are cloned too, so a snapshot never aliases the committed rows.
func (st *state) clone() *state {
	c := &state{
		stores:   maps.Clone(st.stores),
		users:    maps.Clone(st.users),
		posts:    maps.Clone(st.posts),
		comments: maps.Clone(st.comments),
		tags:     maps.Clone(st.tags),
		postTags: make(map[uuid.UUID][]string, len(st.postTags)),
	}
	for pid, slugs := range st.postTags {
		c.postTags[pid] = slices.Clone(slugs)
	}
	return c
}

// accessor is implemented by Conn and Tx, granting exclusive access
// to the rows which they may observe.
type accessor interface {
	access(f func(*state) error) error
}

// Pool is a concurrency-safe in-memory database.
type Pool struct {
	mu sync.Mutex
	st *state
}

// NewPool creates an empty in-memory database.
func NewPool() *Pool {
	return &Pool{st: newState()}
}

// Conn calls f with a connection to p. The connection may be used
// until f returns.
func (p *Pool) Conn(ctx context.Context, f repo.ConnHandler) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return f(ctx, &Conn{pool: p})
}

// Close is a no-op; rows are kept until p is garbage collected.
func (p *Pool) Close() error {
	return nil
}

// Conn is an in-memory connection. Statements which run on a Conn are
// committed right away. A Conn may not be used while one of its
// transactions is in progress.
type Conn struct {
	pool *Pool
}

func (c *Conn) access(f func(*state) error) error {
	c.pool.mu.Lock()
	defer c.pool.mu.Unlock()
	return f(c.pool.st)
}

// Tx runs f in a transaction. Transactions are serialized, so they
// observe the SERIALIZABLE isolation level. The snapshot is committed
// if f returns nil and is discarded if f fails or panics.
func (c *Conn) Tx(ctx context.Context, f repo.TxHandler) (err error) {
	c.pool.mu.Lock()
	defer c.pool.mu.Unlock()
	tx := &Tx{st: c.pool.st.clone()}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panicked: %v", r)
		}
	}()
	if err = ctx.Err(); err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err = f(ctx, tx); err != nil {
		return fmt.Errorf("handler: %w", err)
	}
	c.pool.st = tx.st
	return nil
}

// IsConn method prevents a non-Conn object (such as a Tx) to
// mistakenly implement the Conn interface.
func (c *Conn) IsConn() {
}

// Tx is an in-memory transaction. It is unsafe to be used
// concurrently.
type Tx struct {
	st *state
}

func (tx *Tx) access(f func(*state) error) error {
	return f(tx.st)
}

// IsTx method prevents a non-Tx object (such as a Conn) to
// mistakenly implement the Tx interface.
func (tx *Tx) IsTx() {
}

func unwrapConn(c repo.Conn) accessor {
	return c.(*Conn)
}

func unwrapTx(tx repo.Tx) accessor {
	return tx.(*Tx)
}
