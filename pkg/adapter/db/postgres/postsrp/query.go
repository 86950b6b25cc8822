// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postsrp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/mysite/pkg/adapter/db/postgres"
	"github.com/momeni/mysite/pkg/core/cerr"
	"github.com/momeni/mysite/pkg/core/model"
	"github.com/momeni/mysite/pkg/core/repo"
	"gorm.io/gorm"
)

var errPostNotFound = errors.New("post not found")

type gPost struct {
	PID      uuid.UUID `gorm:"primaryKey;type:uuid;column:pid"`
	Title    string    `gorm:"column:title"`
	Slug     string    `gorm:"column:slug"`
	AuthorID uuid.UUID `gorm:"type:uuid;column:author_id"`
	Body     string    `gorm:"column:body"`
	Publish  time.Time `gorm:"column:publish"`
	Created  time.Time `gorm:"column:created"`
	Updated  time.Time `gorm:"column:updated"`
	Status   string    `gorm:"column:status"`
}

func (gp *gPost) TableName() string {
	return "posts"
}

func (gp *gPost) Model() (*model.Post, error) {
	status, err := model.ParsePostStatus(gp.Status)
	if err != nil {
		return nil, fmt.Errorf("post %s status %q: %w", gp.PID, gp.Status, err)
	}
	return &model.Post{
		ID:       gp.PID,
		Title:    gp.Title,
		Slug:     gp.Slug,
		AuthorID: gp.AuthorID,
		Body:     gp.Body,
		Publish:  gp.Publish.UTC(),
		Created:  gp.Created.UTC(),
		Updated:  gp.Updated.UTC(),
		Status:   status,
	}, nil
}

func fromModel(p *model.Post) (*gPost, error) {
	if err := p.Status.Validate(); err != nil {
		return nil, cerr.BadRequest(err)
	}
	return &gPost{
		PID:      p.ID,
		Title:    p.Title,
		Slug:     p.Slug,
		AuthorID: p.AuthorID,
		Body:     p.Body,
		Publish:  p.Publish,
		Created:  p.Created,
		Updated:  p.Updated,
		Status:   p.Status.String(),
	}, nil
}

func Insert[Q postgres.Queryer](ctx context.Context, q Q, p *model.Post) error {
	gp, err := fromModel(p)
	if err != nil {
		return err
	}
	gdb := q.GORM(ctx).Create(gp)
	if err := gdb.Error; err != nil {
		return fmt.Errorf("query: %w", postgres.TranslateError(err))
	}
	return nil
}

func Get[Q postgres.Queryer](ctx context.Context, q Q, pid uuid.UUID) (*model.Post, error) {
	var gp []gPost
	gdb := q.GORM(ctx).Where("pid = ?", pid).Limit(1).Find(&gp)
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", postgres.TranslateError(err))
	}
	if len(gp) == 0 {
		return nil, cerr.NotFound(errPostNotFound)
	}
	return gp[0].Model()
}

// Update stores all columns of p except pid and created.
func Update[Q postgres.Queryer](ctx context.Context, q Q, p *model.Post) error {
	gp, err := fromModel(p)
	if err != nil {
		return err
	}
	gdb := q.GORM(ctx).Model(&gPost{PID: p.ID}).Select(
		"title", "slug", "author_id", "body", "publish", "updated", "status",
	).Updates(gp)
	if err := gdb.Error; err != nil {
		return fmt.Errorf("query: %w", postgres.TranslateError(err))
	}
	if gdb.RowsAffected == 0 {
		return cerr.NotFound(errPostNotFound)
	}
	return nil
}

// Delete removes the pid post. Its comments and post_tags rows are
// removed by the ON DELETE CASCADE foreign keys.
func Delete(ctx context.Context, tx *postgres.Tx, pid uuid.UUID) error {
	gdb := tx.GORM(ctx).Where("pid = ?", pid).Delete(&gPost{})
	if err := gdb.Error; err != nil {
		return fmt.Errorf("query: %w", postgres.TranslateError(err))
	}
	if gdb.RowsAffected == 0 {
		return cerr.NotFound(errPostNotFound)
	}
	return nil
}

// Filter returns the posts matching all filters, most recently
// published first. A positive limit caps the number of results.
func Filter[Q postgres.Queryer](
	ctx context.Context, q Q, limit int, filters ...repo.PostFilter,
) ([]model.Post, error) {
	gdb := where(q.GORM(ctx), repo.NewPostQuery(filters...))
	gdb = gdb.Order("publish DESC, created DESC, pid")
	if limit > 0 {
		gdb = gdb.Limit(limit)
	}
	var gp []gPost
	if err := gdb.Find(&gp).Error; err != nil {
		return nil, fmt.Errorf("query: %w", postgres.TranslateError(err))
	}
	ps := make([]model.Post, 0, len(gp))
	for i := range gp {
		p, err := gp[i].Model()
		if err != nil {
			return nil, err
		}
		ps = append(ps, *p)
	}
	return ps, nil
}

// where adds one WHERE condition per predicate of pq. GORM joins the
// conditions with AND.
func where(gdb *gorm.DB, pq *repo.PostQuery) *gorm.DB {
	for _, s := range pq.Statuses {
		if s.Validate() != nil {
			// no post may have an invalid status
			gdb = gdb.Where("false")
			continue
		}
		gdb = gdb.Where("status = ?", s.String())
	}
	for _, s := range pq.Slugs {
		gdb = gdb.Where("slug = ?", s)
	}
	for _, d := range pq.Dates {
		start, end := d.Bounds()
		gdb = gdb.Where("publish >= ? AND publish < ?", start, end)
	}
	for _, a := range pq.Authors {
		gdb = gdb.Where("author_id = ?", a)
	}
	for _, t := range pq.Tags {
		gdb = gdb.Where(
			`EXISTS (SELECT 1 FROM post_tags pt JOIN tags t ON t.tid = pt.tag_id
			WHERE pt.post_id = posts.pid AND t.slug = ?)`, t,
		)
	}
	return gdb
}
