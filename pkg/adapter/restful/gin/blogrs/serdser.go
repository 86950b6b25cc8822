// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package blogrs

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/momeni/mysite/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/mysite/pkg/core/cerr"
	"github.com/momeni/mysite/pkg/core/model"
	"github.com/momeni/mysite/pkg/core/repo"
)

type rawListPostsReq struct {
	Tag string `form:"tag" binding:"omitempty,max=100"`
}

type listPostsReq struct {
	filters []repo.PostFilter
}

func (rs *resource) DserListPostsReq(c *gin.Context) *listPostsReq {
	req := &rawListPostsReq{}
	if ok := serdser.Bind(c, req, binding.Query); !ok {
		return nil
	}
	val := &listPostsReq{}
	if req.Tag != "" {
		sl := model.TagSlug(req.Tag)
		if sl == "" {
			c.JSON(http.StatusBadRequest, serdser.FieldErrors{
				"tag": {"tag has no letters or digits"},
			})
			return nil
		}
		val.filters = append(val.filters, repo.TaggedWith(sl))
	}
	return val
}

type rawPostPath struct {
	Year  int    `uri:"year" binding:"min=1,max=9999"`
	Month int    `uri:"month" binding:"min=1,max=12"`
	Day   int    `uri:"day" binding:"min=1,max=31"`
	Slug  string `uri:"slug" binding:"required,max=250,slug"`
}

type postPath struct {
	date model.Date
	slug string
}

// DserPostPath parses the detail route params. Malformed params and
// impossible calendar days identify no post, so they are reported as
// 404 responses.
func (rs *resource) DserPostPath(c *gin.Context) *postPath {
	req := &rawPostPath{}
	if ok := serdser.BindURI(c, req); !ok {
		return nil
	}
	d, err := model.NewDate(req.Year, time.Month(req.Month), req.Day)
	if err != nil {
		serdser.SerErr(c, cerr.NotFound(err))
		return nil
	}
	return &postPath{date: d, slug: req.Slug}
}

type rawCreateCommentReq struct {
	Name  string `json:"name" form:"name"`
	Email string `json:"email" form:"email"`
	Body  string `json:"body" form:"body"`
}

// DserCreateCommentReq decodes a JSON or form encoded comment. Fields
// are validated by the comments use case, so the same messages are
// reported for all submission channels.
func (rs *resource) DserCreateCommentReq(c *gin.Context) *model.Comment {
	req := &rawCreateCommentReq{}
	b := binding.Default(c.Request.Method, c.ContentType())
	if ok := serdser.Bind(c, req, b); !ok {
		return nil
	}
	return &model.Comment{Name: req.Name, Email: req.Email, Body: req.Body}
}

// PostSummary is a list entry of the published posts.
type PostSummary struct {
	ID      uuid.UUID `json:"id"`
	Title   string    `json:"title"`
	Slug    string    `json:"slug"`
	Author  uuid.UUID `json:"author"`
	Publish time.Time `json:"publish"`
	Tags    []string  `json:"tags"`
	Excerpt string    `json:"excerpt,omitempty"`
	URL     string    `json:"url"`
}

// PostListResp is the blog:post_list response.
type PostListResp struct {
	Posts []PostSummary `json:"posts"`
}

// PostDetailResp is the blog:post_detail response.
type PostDetailResp struct {
	PostSummary
	Body     string        `json:"body"`
	HTML     string        `json:"html,omitempty"`
	Updated  time.Time     `json:"updated"`
	Comments []CommentResp `json:"comments"`
}

// CommentResp is the public representation of a comment. E-mail
// addresses of commenters are not published.
type CommentResp struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Body    string    `json:"body"`
	Created time.Time `json:"created"`
}

func (rs *resource) summary(p *model.Post) (PostSummary, error) {
	u, err := PostURL(p)
	if err != nil {
		return PostSummary{}, fmt.Errorf("reversing %q post URL: %w", p.Slug, err)
	}
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return PostSummary{
		ID:      p.ID,
		Title:   p.Title,
		Slug:    p.Slug,
		Author:  p.AuthorID,
		Publish: p.Publish,
		Tags:    tags,
		URL:     u,
	}, nil
}

func (rs *resource) SerPostList(ps []model.Post) (*PostListResp, error) {
	resp := &PostListResp{Posts: make([]PostSummary, 0, len(ps))}
	for i := range ps {
		s, err := rs.summary(&ps[i])
		if err != nil {
			return nil, err
		}
		if rs.renderer != nil {
			s.Excerpt, err = rs.renderer.Excerpt(ps[i].Body, rs.words)
			if err != nil {
				return nil, err
			}
		}
		resp.Posts = append(resp.Posts, s)
	}
	return resp, nil
}

func (rs *resource) SerPostDetail(
	p *model.Post, cs []model.Comment,
) (*PostDetailResp, error) {
	s, err := rs.summary(p)
	if err != nil {
		return nil, err
	}
	resp := &PostDetailResp{
		PostSummary: s,
		Body:        p.Body,
		Updated:     p.Updated,
		Comments:    make([]CommentResp, 0, len(cs)),
	}
	if rs.renderer != nil {
		resp.HTML, err = rs.renderer.Render(p.Body)
		if err != nil {
			return nil, err
		}
	}
	for i := range cs {
		resp.Comments = append(resp.Comments, SerComment(&cs[i]))
	}
	return resp, nil
}

func SerComment(c *model.Comment) CommentResp {
	return CommentResp{
		ID:      c.ID,
		Name:    c.Name,
		Body:    c.Body,
		Created: c.Created,
	}
}
