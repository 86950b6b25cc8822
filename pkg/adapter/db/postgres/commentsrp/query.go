// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package commentsrp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/mysite/pkg/adapter/db/postgres"
	"github.com/momeni/mysite/pkg/core/cerr"
	"github.com/momeni/mysite/pkg/core/model"
)

var errCommentNotFound = errors.New("comment not found")

type gComment struct {
	CMID    uuid.UUID `gorm:"primaryKey;type:uuid;column:cmid"`
	PostID  uuid.UUID `gorm:"type:uuid;column:post_id"`
	Name    string    `gorm:"column:name"`
	Email   string    `gorm:"column:email"`
	Body    string    `gorm:"column:body"`
	Created time.Time `gorm:"column:created"`
	Updated time.Time `gorm:"column:updated"`
	Active  bool      `gorm:"column:active"`
}

func (gc *gComment) TableName() string {
	return "comments"
}

func (gc *gComment) Model() *model.Comment {
	return &model.Comment{
		ID:      gc.CMID,
		PostID:  gc.PostID,
		Name:    gc.Name,
		Email:   gc.Email,
		Body:    gc.Body,
		Created: gc.Created.UTC(),
		Updated: gc.Updated.UTC(),
		Active:  gc.Active,
	}
}

func fromModel(c *model.Comment) *gComment {
	return &gComment{
		CMID:    c.ID,
		PostID:  c.PostID,
		Name:    c.Name,
		Email:   c.Email,
		Body:    c.Body,
		Created: c.Created,
		Updated: c.Updated,
		Active:  c.Active,
	}
}

// Insert stores c. A missing post is reported by the post_id foreign
// key violation which is translated to a cerr.NotFound error.
func Insert[Q postgres.Queryer](ctx context.Context, q Q, c *model.Comment) error {
	gdb := q.GORM(ctx).Create(fromModel(c))
	if err := gdb.Error; err != nil {
		return fmt.Errorf("query: %w", postgres.TranslateError(err))
	}
	return nil
}

func Get[Q postgres.Queryer](ctx context.Context, q Q, cmid uuid.UUID) (*model.Comment, error) {
	var gc []gComment
	gdb := q.GORM(ctx).Where("cmid = ?", cmid).Limit(1).Find(&gc)
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", postgres.TranslateError(err))
	}
	if len(gc) == 0 {
		return nil, cerr.NotFound(errCommentNotFound)
	}
	return gc[0].Model(), nil
}

func Update[Q postgres.Queryer](ctx context.Context, q Q, c *model.Comment) error {
	gdb := q.GORM(ctx).Model(&gComment{CMID: c.ID}).Select(
		"name", "email", "body", "active", "updated",
	).Updates(fromModel(c))
	if err := gdb.Error; err != nil {
		return fmt.Errorf("query: %w", postgres.TranslateError(err))
	}
	if gdb.RowsAffected == 0 {
		return cerr.NotFound(errCommentNotFound)
	}
	return nil
}

func ForPost[Q postgres.Queryer](
	ctx context.Context, q Q, pid uuid.UUID, onlyActive bool,
) ([]model.Comment, error) {
	gdb := q.GORM(ctx).Where("post_id = ?", pid)
	if onlyActive {
		gdb = gdb.Where("active")
	}
	var gc []gComment
	if err := gdb.Order("created, cmid").Find(&gc).Error; err != nil {
		return nil, fmt.Errorf("query: %w", postgres.TranslateError(err))
	}
	cs := make([]model.Comment, 0, len(gc))
	for i := range gc {
		cs = append(cs, *gc[i].Model())
	}
	return cs, nil
}
