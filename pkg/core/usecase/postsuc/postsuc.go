// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package postsuc contains the blog posts UseCase. It supports writing
// posts (create, update, delete), reading all posts or only the
// published ones, and looking up one post by its publish date and
// slug as required by the post detail route.
//
// Listing functions accept a series of repo.PostFilter predicates.
// The PublishedPosts projection appends the published status predicate
// to them, so callers may narrow it but never widen it.
package postsuc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/mysite/pkg/core/cerr"
	"github.com/momeni/mysite/pkg/core/log"
	"github.com/momeni/mysite/pkg/core/model"
	"github.com/momeni/mysite/pkg/core/repo"
)

// ErrDuplicateSlug indicates that another post with the same slug is
// published on the same calendar date.
var ErrDuplicateSlug = errors.New(
	"a post with this slug is already published on that date",
)

// UseCase represents the blog posts use case. It holds a database
// connection pool and the posts, tags, and users repositories.
type UseCase struct {
	pool    repo.Pool
	postsrp repo.Posts
	tagsrp  repo.Tags
	usersrp repo.Users

	now func() time.Time
}

// New instantiates a posts use case.
// Required parameters are passed individually, while optional ones
// are passed as a series of functional options.
func New(
	p repo.Pool, posts repo.Posts, tags repo.Tags, users repo.Users,
	opts ...Option,
) (*UseCase, error) {
	uc := &UseCase{pool: p, postsrp: posts, tagsrp: tags, usersrp: users}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	if uc.now == nil {
		uc.now = wallClock
	}
	return uc, nil
}

// touch returns the current time as the new updated timestamp of a
// row which was last updated at the old time. The returned time is
// strictly after old even if the clock has not moved forward.
func (posts *UseCase) touch(old time.Time) time.Time {
	now := posts.now()
	if !now.After(old) {
		now = old.Add(time.Microsecond)
	}
	return now
}

// Create inserts p as a new post. Its ID, created, and updated fields
// are assigned here, ignoring the given values. An empty slug is
// derived from the title, a zero status means draft, and a zero
// publish time means now. The p.Tags names are normalized and
// attached to the new post.
func (posts *UseCase) Create(ctx context.Context, p *model.Post) error {
	now := posts.now()
	p.ID = uuid.New()
	p.Created, p.Updated = now, now
	if p.Slug == "" {
		p.Slug = model.Slugify(p.Title)
	}
	if p.Status == model.PostStatusInvalid {
		p.Status = model.PostStatusDraft
	}
	if p.Publish.IsZero() {
		p.Publish = now
	}
	p.Publish = p.Publish.UTC()
	tags, err := prepare(p)
	if err != nil {
		return err
	}
	err = posts.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			q := posts.postsrp.Tx(tx)
			if err := ensureUniqueSlug(ctx, q, p); err != nil {
				return err
			}
			if err := q.Insert(ctx, p); err != nil {
				return fmt.Errorf("inserting post: %w", err)
			}
			return posts.tagsrp.Tx(tx).Set(ctx, p.ID, tags)
		})
	})
	if err != nil {
		return fmt.Errorf("creating post: %w", err)
	}
	p.Tags = model.TagNames(tags)
	log.Info(
		ctx, "post is created",
		log.UUID("pid", p.ID), log.Stringer("status", p.Status),
	)
	return nil
}

// prepare validates p and normalizes its tags.
func prepare(p *model.Post) ([]model.Tag, error) {
	if err := p.Validate(); err != nil {
		return nil, cerr.BadRequest(err)
	}
	tags, err := model.NormalizeTags(p.Tags)
	if err != nil {
		return nil, cerr.BadRequest(err)
	}
	return tags, nil
}

// ensureUniqueSlug returns a conflict error if a post other than p has
// the same slug and publish date.
func ensureUniqueSlug(ctx context.Context, q repo.PostsTxQueryer, p *model.Post) error {
	ps, err := q.Filter(
		ctx, 2, repo.PublishedOn(p.PublishDate()), repo.SlugIs(p.Slug),
	)
	if err != nil {
		return fmt.Errorf("finding same slug posts: %w", err)
	}
	for _, pp := range ps {
		if pp.ID != p.ID {
			return cerr.Conflict(ErrDuplicateSlug)
		}
	}
	return nil
}

// Update replaces the p.ID post fields with p fields. The created
// timestamp is kept and the updated timestamp is refreshed. A zero
// status or publish time keeps the stored value and an empty slug is
// derived from the title. Tags are replaced if p.Tags is not nil; an
// empty non-nil slice removes them. In both cases, p is filled with
// the stored fields after update.
func (posts *UseCase) Update(ctx context.Context, p *model.Post) error {
	if p.Slug == "" {
		p.Slug = model.Slugify(p.Title)
	}
	replaceTags := p.Tags != nil
	var tags []model.Tag
	err := posts.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			q := posts.postsrp.Tx(tx)
			old, err := q.Get(ctx, p.ID)
			if err != nil {
				return fmt.Errorf("getting post: %w", err)
			}
			if p.Status == model.PostStatusInvalid {
				p.Status = old.Status
			}
			if p.Publish.IsZero() {
				p.Publish = old.Publish
			}
			p.Publish = p.Publish.UTC()
			if tags, err = prepare(p); err != nil {
				return err
			}
			p.Created = old.Created
			p.Updated = posts.touch(old.Updated)
			if err := ensureUniqueSlug(ctx, q, p); err != nil {
				return err
			}
			if err := q.Update(ctx, p); err != nil {
				return fmt.Errorf("updating post: %w", err)
			}
			tq := posts.tagsrp.Tx(tx)
			if replaceTags {
				return tq.Set(ctx, p.ID, tags)
			}
			names, err := tq.Names(ctx, p.ID)
			if err != nil {
				return fmt.Errorf("getting tags: %w", err)
			}
			tags = nil
			for _, n := range names[p.ID] {
				tags = append(tags, model.Tag{Name: n})
			}
			return nil
		})
	})
	if err != nil {
		return fmt.Errorf("updating post: %w", err)
	}
	p.Tags = model.TagNames(tags)
	return nil
}

// Delete removes the pid post together with its comments and tag
// links in one transaction.
func (posts *UseCase) Delete(ctx context.Context, pid uuid.UUID) error {
	err := posts.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			return posts.postsrp.Tx(tx).Delete(ctx, pid)
		})
	})
	if err != nil {
		return fmt.Errorf("deleting post: %w", err)
	}
	log.Info(ctx, "post is deleted", log.UUID("pid", pid))
	return nil
}

// Get returns the pid post, regardless of its status.
func (posts *UseCase) Get(ctx context.Context, pid uuid.UUID) (p *model.Post, err error) {
	err = posts.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		p, err = posts.postsrp.Conn(c).Get(ctx, pid)
		if err != nil {
			return err
		}
		return posts.attachTags(ctx, c, p)
	})
	if err != nil {
		return nil, fmt.Errorf("getting post: %w", err)
	}
	return p, nil
}

// AllPosts returns posts of all statuses which match filters, most
// recently published first.
func (posts *UseCase) AllPosts(
	ctx context.Context, filters ...repo.PostFilter,
) ([]model.Post, error) {
	return posts.filter(ctx, 0, filters...)
}

// PublishedPosts returns the published posts which match filters, most
// recently published first.
func (posts *UseCase) PublishedPosts(
	ctx context.Context, filters ...repo.PostFilter,
) ([]model.Post, error) {
	return posts.filter(ctx, 0, repo.Published(filters...)...)
}

// PostDetail returns the post which is published on the d date and
// has the given slug, among posts matching filters. Missing posts are
// reported as a cerr.NotFound error, while finding more than one post
// indicates a broken uniqueness invariant and is reported as an
// internal error.
func (posts *UseCase) PostDetail(
	ctx context.Context, d model.Date, slug string,
	filters ...repo.PostFilter,
) (*model.Post, error) {
	fs := make([]repo.PostFilter, 0, len(filters)+2)
	fs = append(fs, filters...)
	fs = append(fs, repo.PublishedOn(d), repo.SlugIs(slug))
	ps, err := posts.filter(ctx, 2, fs...)
	if err != nil {
		return nil, err
	}
	switch len(ps) {
	case 0:
		return nil, cerr.NotFound(fmt.Errorf(
			"no post with %q slug on %s", slug, d,
		))
	case 1:
		return &ps[0], nil
	default:
		log.Error(
			ctx, "post date and slug are not unique",
			log.Stringer("date", d), slog.String("slug", slug),
			log.UUID("pid1", ps[0].ID), log.UUID("pid2", ps[1].ID),
		)
		return nil, cerr.Internal(fmt.Errorf(
			"looking up %q slug on %s: %w",
			slug, d, model.ErrMultipleMatches,
		))
	}
}

func (posts *UseCase) filter(
	ctx context.Context, limit int, filters ...repo.PostFilter,
) (ps []model.Post, err error) {
	err = posts.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		ps, err = posts.postsrp.Conn(c).Filter(ctx, limit, filters...)
		if err != nil {
			return err
		}
		pps := make([]*model.Post, len(ps))
		for i := range ps {
			pps[i] = &ps[i]
		}
		return posts.attachTags(ctx, c, pps...)
	})
	if err != nil {
		return nil, fmt.Errorf("filtering posts: %w", err)
	}
	return ps, nil
}

func (posts *UseCase) attachTags(ctx context.Context, c repo.Conn, ps ...*model.Post) error {
	if len(ps) == 0 {
		return nil
	}
	pids := make([]uuid.UUID, len(ps))
	for i, p := range ps {
		pids[i] = p.ID
	}
	names, err := posts.tagsrp.Conn(c).Names(ctx, pids...)
	if err != nil {
		return fmt.Errorf("getting tags: %w", err)
	}
	for _, p := range ps {
		p.Tags = names[p.ID]
	}
	return nil
}

// CreateAuthor inserts u as a new user who may author posts. Its ID
// is assigned here.
func (posts *UseCase) CreateAuthor(ctx context.Context, u *model.User) error {
	if err := u.Validate(); err != nil {
		return cerr.BadRequest(err)
	}
	u.ID = uuid.New()
	err := posts.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			return posts.usersrp.Tx(tx).Insert(ctx, u)
		})
	})
	if err != nil {
		return fmt.Errorf("creating author: %w", err)
	}
	return nil
}

// DeleteAuthor removes the uid user with all of their posts, and
// comments of those posts, in one transaction.
func (posts *UseCase) DeleteAuthor(ctx context.Context, uid uuid.UUID) error {
	err := posts.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			return posts.usersrp.Tx(tx).Delete(ctx, uid)
		})
	})
	if err != nil {
		return fmt.Errorf("deleting author: %w", err)
	}
	log.Info(ctx, "author is deleted", log.UUID("uid", uid))
	return nil
}
