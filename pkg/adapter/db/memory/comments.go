// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package memory

import (
	"context"
	"slices"

	"github.com/google/uuid"
	"github.com/momeni/mysite/pkg/core/cerr"
	"github.com/momeni/mysite/pkg/core/model"
	"github.com/momeni/mysite/pkg/core/repo"
)

type Comments struct{}

func NewComments() *Comments {
	return &Comments{}
}

type commentsQueryer struct {
	accessor
}

func (c *Comments) Conn(cc repo.Conn) repo.CommentsConnQueryer {
	return commentsQueryer{unwrapConn(cc)}
}

func (c *Comments) Tx(tx repo.Tx) repo.CommentsTxQueryer {
	return commentsQueryer{unwrapTx(tx)}
}

func (q commentsQueryer) Insert(ctx context.Context, c *model.Comment) error {
	return q.access(func(st *state) error {
		if _, ok := st.comments[c.ID]; ok {
			return cerr.Conflict(errDuplicateID)
		}
		if _, ok := st.posts[c.PostID]; !ok {
			return cerr.NotFound(errPostNotFound)
		}
		st.comments[c.ID] = *c
		return nil
	})
}

func (q commentsQueryer) Get(ctx context.Context, cmid uuid.UUID) (c *model.Comment, err error) {
	err = q.access(func(st *state) error {
		cc, ok := st.comments[cmid]
		if !ok {
			return cerr.NotFound(errCommentNotFound)
		}
		c = &cc
		return nil
	})
	return c, err
}

func (q commentsQueryer) Update(ctx context.Context, c *model.Comment) error {
	return q.access(func(st *state) error {
		old, ok := st.comments[c.ID]
		if !ok {
			return cerr.NotFound(errCommentNotFound)
		}
		old.Name = c.Name
		old.Email = c.Email
		old.Body = c.Body
		old.Active = c.Active
		old.Updated = c.Updated
		st.comments[c.ID] = old
		return nil
	})
}

func (q commentsQueryer) ForPost(
	ctx context.Context, pid uuid.UUID, onlyActive bool,
) (cs []model.Comment, err error) {
	err = q.access(func(st *state) error {
		for _, c := range st.comments {
			if c.PostID == pid && (c.Active || !onlyActive) {
				cs = append(cs, c)
			}
		}
		return nil
	})
	slices.SortFunc(cs, func(a, b model.Comment) int {
		if c := a.Created.Compare(b.Created); c != 0 {
			return c
		}
		return compareUUID(a.ID, b.ID)
	})
	return cs, err
}
