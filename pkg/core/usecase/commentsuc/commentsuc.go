// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package commentsuc contains the post comments UseCase. Readers may
// submit comments which are active by default; administrators may edit
// them or toggle their active flag. Comments are never deleted on their
// own; they go away when their post is deleted.
package commentsuc

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/mysite/pkg/core/cerr"
	"github.com/momeni/mysite/pkg/core/log"
	"github.com/momeni/mysite/pkg/core/model"
	"github.com/momeni/mysite/pkg/core/repo"
)

type UseCase struct {
	pool       repo.Pool
	commentsrp repo.Comments
	postsrp    repo.Posts

	now func() time.Time
}

// New instantiates a comments use case.
func New(
	p repo.Pool, comments repo.Comments, posts repo.Posts,
	opts ...Option,
) (*UseCase, error) {
	uc := &UseCase{pool: p, commentsrp: comments, postsrp: posts}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	if uc.now == nil {
		uc.now = func() time.Time {
			return time.Now().UTC().Truncate(time.Microsecond)
		}
	}
	return uc, nil
}

func (comments *UseCase) touch(old time.Time) time.Time {
	now := comments.now()
	if !now.After(old) {
		now = old.Add(time.Microsecond)
	}
	return now
}

// Create adds c as a new active comment of the pid post.
func (comments *UseCase) Create(ctx context.Context, pid uuid.UUID, c *model.Comment) error {
	now := comments.now()
	c.ID = uuid.New()
	c.PostID = pid
	c.Created, c.Updated = now, now
	c.Active = true
	if err := c.Validate(); err != nil {
		return cerr.BadRequest(err)
	}
	err := comments.pool.Conn(ctx, func(ctx context.Context, conn repo.Conn) error {
		return comments.commentsrp.Conn(conn).Insert(ctx, c)
	})
	if err != nil {
		return fmt.Errorf("inserting comment: %w", err)
	}
	log.Info(
		ctx, "comment is submitted",
		log.UUID("cmid", c.ID), log.UUID("pid", pid),
	)
	return nil
}

// Get returns the cmid comment.
func (comments *UseCase) Get(ctx context.Context, cmid uuid.UUID) (c *model.Comment, err error) {
	err = comments.pool.Conn(ctx, func(ctx context.Context, conn repo.Conn) error {
		c, err = comments.commentsrp.Conn(conn).Get(ctx, cmid)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("getting comment: %w", err)
	}
	return c, nil
}

// ForPost returns the comments of the pid post in their creation
// order. Inactive comments are skipped if onlyActive is true.
// A missing post is reported as a cerr.NotFound error.
func (comments *UseCase) ForPost(
	ctx context.Context, pid uuid.UUID, onlyActive bool,
) (cs []model.Comment, err error) {
	err = comments.pool.Conn(ctx, func(ctx context.Context, conn repo.Conn) error {
		if _, err := comments.postsrp.Conn(conn).Get(ctx, pid); err != nil {
			return err
		}
		cs, err = comments.commentsrp.Conn(conn).ForPost(ctx, pid, onlyActive)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	return cs, nil
}

// Update edits the name, email, and body of the c.ID comment. Other
// fields of c are ignored and filled from the stored comment.
func (comments *UseCase) Update(ctx context.Context, c *model.Comment) error {
	stored, err := comments.modify(ctx, c.ID, func(old *model.Comment) error {
		old.Name, old.Email, old.Body = c.Name, c.Email, c.Body
		if err := old.Validate(); err != nil {
			return cerr.BadRequest(err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	*c = *stored
	return nil
}

// Moderate activates or deactivates the cmid comment, returning the
// updated comment.
func (comments *UseCase) Moderate(
	ctx context.Context, cmid uuid.UUID, active bool,
) (*model.Comment, error) {
	c, err := comments.modify(ctx, cmid, func(old *model.Comment) error {
		old.Active = active
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info(
		ctx, "comment is moderated",
		log.UUID("cmid", cmid), slog.Bool("active", active),
	)
	return c, nil
}

// modify loads the cmid comment in a transaction, lets f change it,
// refreshes its updated timestamp, and stores it.
func (comments *UseCase) modify(
	ctx context.Context, cmid uuid.UUID, f func(*model.Comment) error,
) (c *model.Comment, err error) {
	err = comments.pool.Conn(ctx, func(ctx context.Context, conn repo.Conn) error {
		return conn.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			q := comments.commentsrp.Tx(tx)
			old, err := q.Get(ctx, cmid)
			if err != nil {
				return err
			}
			updated := comments.touch(old.Updated)
			if err := f(old); err != nil {
				return err
			}
			old.Updated = updated
			if err := q.Update(ctx, old); err != nil {
				return err
			}
			c = old
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("updating comment: %w", err)
	}
	return c, nil
}
