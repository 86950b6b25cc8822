// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package blogrs realizes the public blog resource with its two named
// routes, the posts list and the post detail (by publish date and
// slug), in the blog namespace. Readers may also submit comments on
// the detail route. Only the published posts are visible here; see
// the postsrs package for the administration of all posts.
package blogrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/mysite/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/mysite/pkg/core/model"
	"github.com/momeni/mysite/pkg/core/repo"
	"github.com/momeni/mysite/pkg/core/usecase/commentsuc"
	"github.com/momeni/mysite/pkg/core/usecase/postsuc"
)

// Renderer converts the Markdown post bodies into HTML.
type Renderer interface {
	Render(body string) (string, error)
	Excerpt(body string, words int) (string, error)
}

type resource struct {
	posts    *postsuc.UseCase
	comments *commentsuc.UseCase
	renderer Renderer
	words    int
}

// Options holds the optional settings of the blog resource.
type Options struct {
	// Renderer converts bodies and excerpts into HTML. A nil Renderer
	// disables the HTML rendering.
	Renderer Renderer
	// ExcerptWords is the number of words which are kept in excerpts.
	ExcerptWords int
	// CommentGuards run before the comment submission handler, like
	// a rate limiter.
	CommentGuards []gin.HandlerFunc
}

// Register instantiates a resource adapting the posts and comments use
// cases with the blog routes including:
//  1. GET request to /blog/ (blog:post_list)
//     in order to list the published posts, optionally by a tag,
//  2. GET request to /blog/:year/:month/:day/:slug/ (blog:post_detail)
//     in order to fetch a published post with its active comments,
//  3. POST request to /blog/:year/:month/:day/:slug/
//     in order to submit a comment on that post.
func Register(
	r gin.IRouter,
	posts *postsuc.UseCase,
	comments *commentsuc.UseCase,
	opts Options,
) {
	rs := &resource{
		posts:    posts,
		comments: comments,
		renderer: opts.Renderer,
		words:    opts.ExcerptWords,
	}
	g := r.Group(Prefix)
	g.GET("/", rs.ListPosts)
	g.GET("/:year/:month/:day/:slug/", rs.GetPost)
	submit := append([]gin.HandlerFunc{}, opts.CommentGuards...)
	g.POST("/:year/:month/:day/:slug/", append(submit, rs.CreateComment)...)
}

func (rs *resource) ListPosts(c *gin.Context) {
	req := rs.DserListPostsReq(c)
	if req == nil {
		return
	}
	ps, err := rs.posts.PublishedPosts(c, req.filters...)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	resp, err := rs.SerPostList(ps)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// lookup finds the published post which is addressed by the path
// params, writing the error responses itself.
func (rs *resource) lookup(c *gin.Context) *model.Post {
	req := rs.DserPostPath(c)
	if req == nil {
		return nil
	}
	p, err := rs.posts.PostDetail(c, req.date, req.slug, repo.Published()...)
	if err != nil {
		serdser.SerErr(c, err)
		return nil
	}
	return p
}

func (rs *resource) GetPost(c *gin.Context) {
	p := rs.lookup(c)
	if p == nil {
		return
	}
	cs, err := rs.comments.ForPost(c, p.ID, true)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	resp, err := rs.SerPostDetail(p, cs)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (rs *resource) CreateComment(c *gin.Context) {
	p := rs.lookup(c)
	if p == nil {
		return
	}
	cm := rs.DserCreateCommentReq(c)
	if cm == nil {
		return
	}
	if err := rs.comments.Create(c, p.ID, cm); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, SerComment(cm))
}
