// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postsrs

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/momeni/mysite/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/mysite/pkg/core/model"
	"github.com/momeni/mysite/pkg/core/repo"
)

// dserID parses the name path param as a UUID. An invalid UUID can
// not identify any resource, so a 404 response is written for it.
func dserID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"detail": "not found",
		})
		return uuid.Nil, false
	}
	return id, true
}

type rawPostReq struct {
	Title   string     `json:"title" binding:"required"`
	Slug    string     `json:"slug" binding:"omitempty,slug"`
	Author  string     `json:"author" binding:"required,uuid"`
	Body    string     `json:"body" binding:"required"`
	Publish *time.Time `json:"publish"`
	Status  string     `json:"status" binding:"omitempty,oneof=draft published"`
	Tags    []string   `json:"tags"`
}

// DserPostReq decodes a post from the JSON body. Missing slug, status,
// and publish fields get their defaults in the posts use case (the
// stored status and publish time for an updated post), while an
// omitted tags list keeps the current tags of an updated post.
func (rs *resource) DserPostReq(c *gin.Context) *model.Post {
	req := &rawPostReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	p := &model.Post{
		Title:    req.Title,
		Slug:     req.Slug,
		AuthorID: uuid.MustParse(req.Author),
		Body:     req.Body,
		Tags:     req.Tags,
	}
	if req.Publish != nil {
		p.Publish = *req.Publish
	}
	if req.Status != "" {
		p.Status, _ = model.ParsePostStatus(req.Status)
	}
	return p
}

type rawListPostsReq struct {
	Status string `form:"status" binding:"omitempty,oneof=draft published"`
	Author string `form:"author" binding:"omitempty,uuid"`
	Tag    string `form:"tag" binding:"omitempty,max=100"`
	Date   string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}

// DserListPostsReq converts the query params into post filters. The
// returned slice is nil only if a response is written already.
func (rs *resource) DserListPostsReq(c *gin.Context) []repo.PostFilter {
	req := &rawListPostsReq{}
	if ok := serdser.Bind(c, req, binding.Query); !ok {
		return nil
	}
	filters := make([]repo.PostFilter, 0, 4)
	if req.Status != "" {
		s, _ := model.ParsePostStatus(req.Status)
		filters = append(filters, repo.StatusIs(s))
	}
	if req.Author != "" {
		filters = append(filters, repo.AuthoredBy(uuid.MustParse(req.Author)))
	}
	if req.Tag != "" {
		filters = append(filters, repo.TaggedWith(model.TagSlug(req.Tag)))
	}
	if req.Date != "" {
		t, _ := time.Parse(time.DateOnly, req.Date)
		filters = append(filters, repo.PublishedOn(model.DateOf(t)))
	}
	return filters
}

type rawUpdateCommentReq struct {
	Op    string `form:"op" binding:"required,oneof=activate deactivate edit"`
	Name  string `form:"name"`
	Email string `form:"email"`
	Body  string `form:"body"`
}

type updateCommentReq struct {
	op      string
	comment *model.Comment
}

func (rs *resource) DserUpdateCommentReq(c *gin.Context) *updateCommentReq {
	cmid, ok := dserID(c, "cmid")
	if !ok {
		return nil
	}
	req := &rawUpdateCommentReq{}
	if ok := serdser.Bind(c, req, binding.Form); !ok {
		return nil
	}
	errs := serdser.FieldErrors{}
	if req.Op != "edit" {
		msg := "The op=" + req.Op + " does not need comment fields."
		errs.Require(req.Name == "", "name", msg)
		errs.Require(req.Email == "", "email", msg)
		errs.Require(req.Body == "", "body", msg)
	}
	if len(errs) != 0 {
		c.JSON(http.StatusBadRequest, errs)
		return nil
	}
	return &updateCommentReq{
		op: req.Op,
		comment: &model.Comment{
			ID:    cmid,
			Name:  req.Name,
			Email: req.Email,
			Body:  req.Body,
		},
	}
}

type rawAuthorReq struct {
	Username string `json:"username" binding:"required"`
}

func (rs *resource) DserAuthorReq(c *gin.Context) *model.User {
	req := &rawAuthorReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	return &model.User{Username: req.Username}
}

// Post is the JSON representation of a post for administrators.
type Post struct {
	ID      uuid.UUID        `json:"id"`
	Title   string           `json:"title"`
	Slug    string           `json:"slug"`
	Author  uuid.UUID        `json:"author"`
	Body    string           `json:"body"`
	Publish time.Time        `json:"publish"`
	Created time.Time        `json:"created"`
	Updated time.Time        `json:"updated"`
	Status  model.PostStatus `json:"status"`
	Tags    []string         `json:"tags"`
	URL     string           `json:"url"`
}

func SerPost(p *model.Post) Post {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return Post{
		ID:      p.ID,
		Title:   p.Title,
		Slug:    p.Slug,
		Author:  p.AuthorID,
		Body:    p.Body,
		Publish: p.Publish,
		Created: p.Created,
		Updated: p.Updated,
		Status:  p.Status,
		Tags:    tags,
		URL:     p.AbsolutePath(),
	}
}

// Comment is the JSON representation of a comment for moderators.
type Comment struct {
	ID      uuid.UUID `json:"id"`
	PostID  uuid.UUID `json:"post"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Body    string    `json:"body"`
	Created time.Time `json:"created"`
	Updated time.Time `json:"updated"`
	Active  bool      `json:"active"`
}

func SerComment(c *model.Comment) Comment {
	return Comment{
		ID:      c.ID,
		PostID:  c.PostID,
		Name:    c.Name,
		Email:   c.Email,
		Body:    c.Body,
		Created: c.Created,
		Updated: c.Updated,
		Active:  c.Active,
	}
}

// Author is the JSON representation of a user who may author posts.
type Author struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}
