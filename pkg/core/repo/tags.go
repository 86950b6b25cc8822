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

type TagsConnQueryer interface {
	TagsQueryer
}

type TagsTxQueryer interface {
	TagsQueryer

	// Set replaces the tags of the pid post with the given normalized
	// tags, creating missing tags (by slug) as required.
	Set(ctx context.Context, pid uuid.UUID, tags []model.Tag) error
}

type TagsQueryer interface {
	// Names returns the tag names of the given posts, keyed by post
	// ID. Each list is ordered by tag name. Posts without tags have
	// no entry.
	Names(ctx context.Context, pids ...uuid.UUID) (map[uuid.UUID][]string, error)
}

// Tags is the many-to-many labels collaborator of posts.
type Tags interface {
	Conn(Conn) TagsConnQueryer
	Tx(Tx) TagsTxQueryer
}
