// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package storesuc contains the store catalog UseCase which supports
// creating, listing, reading, updating, and deleting stores.
package storesuc

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/momeni/mysite/pkg/core/cerr"
	"github.com/momeni/mysite/pkg/core/log"
	"github.com/momeni/mysite/pkg/core/model"
	"github.com/momeni/mysite/pkg/core/repo"
)

// UseCase represents the store catalog use case. It holds a database
// connection pool and the stores repository instance (to be guided
// with the DB pool).
type UseCase struct {
	pool     repo.Pool
	storesrp repo.Stores
}

// New instantiates a store catalog use case.
func New(p repo.Pool, s repo.Stores) *UseCase {
	return &UseCase{pool: p, storesrp: s}
}

// Create validates s, assigns a new ID to it, and stores it.
func (stores *UseCase) Create(ctx context.Context, s *model.Store) error {
	if err := s.Validate(); err != nil {
		return cerr.BadRequest(err)
	}
	s.ID = uuid.New()
	err := stores.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return stores.storesrp.Conn(c).Insert(ctx, s)
	})
	if err != nil {
		return fmt.Errorf("inserting store: %w", err)
	}
	log.Info(ctx, "store is created", log.UUID("sid", s.ID))
	return nil
}

// Get returns the sid store.
func (stores *UseCase) Get(ctx context.Context, sid uuid.UUID) (s *model.Store, err error) {
	err = stores.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		s, err = stores.storesrp.Conn(c).Get(ctx, sid)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("getting store: %w", err)
	}
	return s, nil
}

// List returns all stores, ordered by their names.
func (stores *UseCase) List(ctx context.Context) (ss []model.Store, err error) {
	err = stores.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		ss, err = stores.storesrp.Conn(c).List(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("listing stores: %w", err)
	}
	return ss, nil
}

// Update replaces all fields of the s.ID store with s fields.
func (stores *UseCase) Update(ctx context.Context, s *model.Store) error {
	if err := s.Validate(); err != nil {
		return cerr.BadRequest(err)
	}
	err := stores.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return stores.storesrp.Conn(c).Update(ctx, s)
	})
	if err != nil {
		return fmt.Errorf("updating store: %w", err)
	}
	return nil
}

// Delete removes the sid store.
func (stores *UseCase) Delete(ctx context.Context, sid uuid.UUID) error {
	err := stores.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return stores.storesrp.Conn(c).Delete(ctx, sid)
	})
	if err != nil {
		return fmt.Errorf("deleting store: %w", err)
	}
	log.Info(ctx, "store is deleted", log.UUID("sid", sid))
	return nil
}

// Describe returns the human-readable label of s, which is formatted
// like "Java Hut (Austin,TX)".
func (stores *UseCase) Describe(s *model.Store) string {
	return s.String()
}
