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

type Tags struct{}

func NewTags() *Tags {
	return &Tags{}
}

type tagsQueryer struct {
	accessor
}

func (t *Tags) Conn(c repo.Conn) repo.TagsConnQueryer {
	return tagsQueryer{unwrapConn(c)}
}

func (t *Tags) Tx(tx repo.Tx) repo.TagsTxQueryer {
	return tagsQueryer{unwrapTx(tx)}
}

func (q tagsQueryer) Set(ctx context.Context, pid uuid.UUID, tags []model.Tag) error {
	return q.access(func(st *state) error {
		if _, ok := st.posts[pid]; !ok {
			return cerr.NotFound(errPostNotFound)
		}
		slugs := make([]string, 0, len(tags))
		for _, t := range tags {
			if _, ok := st.tags[t.Slug]; !ok {
				st.tags[t.Slug] = t
			}
			slugs = append(slugs, t.Slug)
		}
		if len(slugs) == 0 {
			delete(st.postTags, pid)
			return nil
		}
		st.postTags[pid] = slugs
		return nil
	})
}

func (q tagsQueryer) Names(
	ctx context.Context, pids ...uuid.UUID,
) (names map[uuid.UUID][]string, err error) {
	names = make(map[uuid.UUID][]string, len(pids))
	err = q.access(func(st *state) error {
		for _, pid := range pids {
			slugs := st.postTags[pid]
			if len(slugs) == 0 {
				continue
			}
			nn := make([]string, 0, len(slugs))
			for _, s := range slugs {
				nn = append(nn, st.tags[s].Name)
			}
			slices.Sort(nn)
			names[pid] = nn
		}
		return nil
	})
	return names, err
}
