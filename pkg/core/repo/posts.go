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

type PostsConnQueryer interface {
	PostsQueryer
}

type PostsTxQueryer interface {
	PostsQueryer

	// Delete removes the pid post, its comments, and its tag links.
	Delete(ctx context.Context, pid uuid.UUID) error
}

// PostsQueryer lists the post operations. The Filter results are
// always ordered by their publish time, most recent first, breaking
// ties by their creation time (again, most recent first).
// The Post.Tags field is not filled by this queryer; see Tags.
type PostsQueryer interface {
	Insert(ctx context.Context, p *model.Post) error
	Get(ctx context.Context, pid uuid.UUID) (*model.Post, error)

	// Update stores all fields of p except its ID and created
	// timestamp. The p.Tags are ignored.
	Update(ctx context.Context, p *model.Post) error

	// Filter returns the posts which match all of the given filters.
	// A positive limit caps the number of returned posts.
	Filter(ctx context.Context, limit int, filters ...PostFilter) ([]model.Post, error)
}

type Posts interface {
	Conn(Conn) PostsConnQueryer
	Tx(Tx) PostsTxQueryer
}

// PostQuery is the conjunction of a series of post predicates. Every
// entry of every slice must hold for a post to match, so appending
// a new predicate may only narrow the matched posts. Repositories
// build their SQL (or in-memory) conditions from a PostQuery which
// is filled by applying a series of PostFilter functions.
type PostQuery struct {
	Statuses []model.PostStatus
	Slugs    []string
	Dates    []model.Date // publish date, in UTC
	Authors  []uuid.UUID
	Tags     []string // tag slugs
}

// PostFilter adds one predicate to a PostQuery.
type PostFilter func(*PostQuery)

// NewPostQuery applies filters on an empty PostQuery and returns it.
func NewPostQuery(filters ...PostFilter) *PostQuery {
	q := &PostQuery{}
	for _, f := range filters {
		f(q)
	}
	return q
}

// Matches reports whether p satisfies all predicates of q.
// The tags argument holds the tag slugs of p.
func (q *PostQuery) Matches(p *model.Post, tags []string) bool {
	for _, s := range q.Statuses {
		if p.Status != s {
			return false
		}
	}
	for _, s := range q.Slugs {
		if p.Slug != s {
			return false
		}
	}
	for _, d := range q.Dates {
		if !d.Contains(p.Publish) {
			return false
		}
	}
	for _, a := range q.Authors {
		if p.AuthorID != a {
			return false
		}
	}
	for _, t := range q.Tags {
		found := false
		for _, pt := range tags {
			if pt == t {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func StatusIs(s model.PostStatus) PostFilter {
	return func(q *PostQuery) {
		q.Statuses = append(q.Statuses, s)
	}
}

func SlugIs(slug string) PostFilter {
	return func(q *PostQuery) {
		q.Slugs = append(q.Slugs, slug)
	}
}

// PublishedOn matches posts whose publish time falls in the d date
// (from its midnight in UTC up to, and excluding, the next midnight).
func PublishedOn(d model.Date) PostFilter {
	return func(q *PostQuery) {
		q.Dates = append(q.Dates, d)
	}
}

func AuthoredBy(uid uuid.UUID) PostFilter {
	return func(q *PostQuery) {
		q.Authors = append(q.Authors, uid)
	}
}

// TaggedWith matches posts having a tag with the given slug.
func TaggedWith(tagSlug string) PostFilter {
	return func(q *PostQuery) {
		q.Tags = append(q.Tags, tagSlug)
	}
}

// Published returns the published posts projection of filters.
// The status predicate is appended after the caller filters, hence,
// no filter can widen the projection to include draft posts.
func Published(filters ...PostFilter) []PostFilter {
	fs := make([]PostFilter, 0, len(filters)+1)
	fs = append(fs, filters...)
	return append(fs, StatusIs(model.PostStatusPublished))
}
