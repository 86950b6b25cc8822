// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package memory

import (
	"context"

	"github.com/google/uuid"
	"github.com/momeni/mysite/pkg/core/cerr"
	"github.com/momeni/mysite/pkg/core/model"
	"github.com/momeni/mysite/pkg/core/repo"
)

type Users struct{}

func NewUsers() *Users {
	return &Users{}
}

type usersQueryer struct {
	accessor
}

func (u *Users) Tx(tx repo.Tx) repo.UsersTxQueryer {
	return usersQueryer{unwrapTx(tx)}
}

func (q usersQueryer) Insert(ctx context.Context, u *model.User) error {
	return q.access(func(st *state) error {
		if _, ok := st.users[u.ID]; ok {
			return cerr.Conflict(errDuplicateID)
		}
		for _, uu := range st.users {
			if uu.Username == u.Username {
				return cerr.Conflict(errDuplicateUser)
			}
		}
		st.users[u.ID] = *u
		return nil
	})
}

func (q usersQueryer) Get(ctx context.Context, uid uuid.UUID) (u *model.User, err error) {
	err = q.access(func(st *state) error {
		uu, ok := st.users[uid]
		if !ok {
			return cerr.NotFound(errUserNotFound)
		}
		u = &uu
		return nil
	})
	return u, err
}

func (q usersQueryer) Delete(ctx context.Context, uid uuid.UUID) error {
	return q.access(func(st *state) error {
		if _, ok := st.users[uid]; !ok {
			return cerr.NotFound(errUserNotFound)
		}
		for pid, p := range st.posts {
			if p.AuthorID == uid {
				st.deletePost(pid)
			}
		}
		delete(st.users, uid)
		return nil
	})
}
