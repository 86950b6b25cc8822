// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package memory

import (
	"cmp"
	"context"
	"errors"
	"slices"

	"github.com/google/uuid"
	"github.com/momeni/mysite/pkg/core/cerr"
	"github.com/momeni/mysite/pkg/core/model"
	"github.com/momeni/mysite/pkg/core/repo"
)

var (
	errStoreNotFound   = errors.New("store not found")
	errUserNotFound    = errors.New("user not found")
	errPostNotFound    = errors.New("post not found")
	errCommentNotFound = errors.New("comment not found")
	errDuplicateID     = errors.New("duplicate primary key")
	errDuplicateSlug   = errors.New("a post with this slug is already published on that date")
	errDuplicateUser   = errors.New("username is already taken")
)

// Stores is the in-memory repo.Stores implementation.
type Stores struct{}

func NewStores() *Stores {
	return &Stores{}
}

type storesQueryer struct {
	accessor
}

func (s *Stores) Conn(c repo.Conn) repo.StoresConnQueryer {
	return storesQueryer{unwrapConn(c)}
}

func (s *Stores) Tx(tx repo.Tx) repo.StoresTxQueryer {
	return storesQueryer{unwrapTx(tx)}
}

func (q storesQueryer) Insert(ctx context.Context, s *model.Store) error {
	return q.access(func(st *state) error {
		if _, ok := st.stores[s.ID]; ok {
			return cerr.Conflict(errDuplicateID)
		}
		st.stores[s.ID] = *s
		return nil
	})
}

func (q storesQueryer) Get(ctx context.Context, sid uuid.UUID) (s *model.Store, err error) {
	err = q.access(func(st *state) error {
		ss, ok := st.stores[sid]
		if !ok {
			return cerr.NotFound(errStoreNotFound)
		}
		s = &ss
		return nil
	})
	return s, err
}

func (q storesQueryer) List(ctx context.Context) (ss []model.Store, err error) {
	err = q.access(func(st *state) error {
		ss = make([]model.Store, 0, len(st.stores))
		for _, s := range st.stores {
			ss = append(ss, s)
		}
		return nil
	})
	slices.SortFunc(ss, func(a, b model.Store) int {
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.ID.String(), b.ID.String())
	})
	return ss, err
}

func (q storesQueryer) Update(ctx context.Context, s *model.Store) error {
	return q.access(func(st *state) error {
		if _, ok := st.stores[s.ID]; !ok {
			return cerr.NotFound(errStoreNotFound)
		}
		st.stores[s.ID] = *s
		return nil
	})
}

func (q storesQueryer) Delete(ctx context.Context, sid uuid.UUID) error {
	return q.access(func(st *state) error {
		if _, ok := st.stores[sid]; !ok {
			return cerr.NotFound(errStoreNotFound)
		}
		delete(st.stores, sid)
		return nil
	})
}
