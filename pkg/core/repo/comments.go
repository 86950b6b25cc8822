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

type CommentsConnQueryer interface {
	CommentsQueryer
}

type CommentsTxQueryer interface {
	CommentsQueryer
}

// CommentsQueryer lists the comment operations. There is no Delete
// since comments are only removed along with their post.
type CommentsQueryer interface {
	Insert(ctx context.Context, c *model.Comment) error
	Get(ctx context.Context, cmid uuid.UUID) (*model.Comment, error)

	// Update stores the name, email, body, active, and updated fields
	// of c. The created timestamp and owning post never change.
	Update(ctx context.Context, c *model.Comment) error

	// ForPost returns the comments of pid post in their creation
	// order, only including the active ones if onlyActive is set.
	ForPost(ctx context.Context, pid uuid.UUID, onlyActive bool) ([]model.Comment, error)
}

type Comments interface {
	Conn(Conn) CommentsConnQueryer
	Tx(Tx) CommentsTxQueryer
}
