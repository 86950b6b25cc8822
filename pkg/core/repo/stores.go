// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/momeni/mysite/pkg/core/model"
)

type StoresConnQueryer interface {
	StoresQueryer
}

type StoresTxQueryer interface {
	StoresQueryer
}

// StoresQueryer lists the store catalog operations. Missing stores are
// reported as cerr.NotFound errors.
type StoresQueryer interface {
	Insert(ctx context.Context, s *model.Store) error
	Get(ctx context.Context, sid uuid.UUID) (*model.Store, error)
	List(ctx context.Context) ([]model.Store, error) // ordered by name
	Update(ctx context.Context, s *model.Store) error
	Delete(ctx context.Context, sid uuid.UUID) error
}

type Stores interface {
	Conn(Conn) StoresConnQueryer
	Tx(Tx) StoresTxQueryer
}
