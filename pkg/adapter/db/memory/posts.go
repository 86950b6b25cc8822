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

type Posts struct{}

func NewPosts() *Posts {
	return &Posts{}
}

type postsQueryer struct {
	accessor
}

func (p *Posts) Conn(c repo.Conn) repo.PostsConnQueryer {
	return postsQueryer{unwrapConn(c)}
}

func (p *Posts) Tx(tx repo.Tx) repo.PostsTxQueryer {
	return postsQueryer{unwrapTx(tx)}
}

// checkPost enforces the author foreign key and the unique publish
// date and slug pair, like the posts table constraints.
func (st *state) checkPost(p *model.Post) error {
	if _, ok := st.users[p.AuthorID]; !ok {
		return cerr.NotFound(errUserNotFound)
	}
	d := p.PublishDate()
	for pid, pp := range st.posts {
		if pid != p.ID && pp.Slug == p.Slug && d.Contains(pp.Publish) {
			return cerr.Conflict(errDuplicateSlug)
		}
	}
	return nil
}

func (st *state) deletePost(pid uuid.UUID) {
	for cmid, c := range st.comments {
		if c.PostID == pid {
			delete(st.comments, cmid)
		}
	}
	delete(st.postTags, pid)
	delete(st.posts, pid)
}

func (q postsQueryer) Insert(ctx context.Context, p *model.Post) error {
	return q.access(func(st *state) error {
		if _, ok := st.posts[p.ID]; ok {
			return cerr.Conflict(errDuplicateID)
		}
		if err := st.checkPost(p); err != nil {
			return err
		}
		pp := *p
		pp.Tags = nil
		st.posts[p.ID] = pp
		return nil
	})
}

func (q postsQueryer) Get(ctx context.Context, pid uuid.UUID) (p *model.Post, err error) {
	err = q.access(func(st *state) error {
		pp, ok := st.posts[pid]
		if !ok {
			return cerr.NotFound(errPostNotFound)
		}
		p = &pp
		return nil
	})
	return p, err
}

func (q postsQueryer) Update(ctx context.Context, p *model.Post) error {
	return q.access(func(st *state) error {
		old, ok := st.posts[p.ID]
		if !ok {
			return cerr.NotFound(errPostNotFound)
		}
		if err := st.checkPost(p); err != nil {
			return err
		}
		pp := *p
		pp.Created = old.Created
		pp.Tags = nil
		st.posts[p.ID] = pp
		return nil
	})
}

func (q postsQueryer) Delete(ctx context.Context, pid uuid.UUID) error {
	return q.access(func(st *state) error {
		if _, ok := st.posts[pid]; !ok {
			return cerr.NotFound(errPostNotFound)
		}
		st.deletePost(pid)
		return nil
	})
}

func (q postsQueryer) Filter(
	ctx context.Context, limit int, filters ...repo.PostFilter,
) (ps []model.Post, err error) {
	pq := repo.NewPostQuery(filters...)
	err = q.access(func(st *state) error {
		for pid, p := range st.posts {
			if pq.Matches(&p, st.postTags[pid]) {
				ps = append(ps, p)
			}
		}
		return nil
	})
	slices.SortFunc(ps, func(a, b model.Post) int {
		if c := b.Publish.Compare(a.Publish); c != 0 {
			return c
		}
		if c := b.Created.Compare(a.Created); c != 0 {
			return c
		}
		return compareUUID(a.ID, b.ID)
	})
	if limit > 0 && len(ps) > limit {
		ps = ps[:limit]
	}
	return ps, err
}

func compareUUID(a, b uuid.UUID) int {
	for i := range a {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}
