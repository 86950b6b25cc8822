// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package postsrs realizes the administration resources of the blog,
// covering posts of all statuses, comments moderation, and authors.
// The public (published-only) views are provided by blogrs.
package postsrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/mysite/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/mysite/pkg/core/usecase/commentsuc"
	"github.com/momeni/mysite/pkg/core/usecase/postsuc"
)

type resource struct {
	posts    *postsuc.UseCase
	comments *commentsuc.UseCase
}

// Register instantiates a resource adapting the posts and comments use
// cases with the relevant REST APIs including:
//  1. POST and GET requests to /api/mysite/v1/posts
//     in order to create a post or filter all posts,
//  2. GET, PUT, and DELETE requests to /api/mysite/v1/posts/:pid
//     in order to fetch, replace, or remove one post,
//  3. GET request to /api/mysite/v1/posts/:pid/comments
//     in order to list all comments of a post (inactive ones too),
//  4. PATCH request to /api/mysite/v1/comments/:cmid
//     in order to activate, deactivate, or edit a comment,
//  5. POST request to /api/mysite/v1/authors and DELETE request to
//     /api/mysite/v1/authors/:uid in order to manage the authors.
func Register(
	r *gin.RouterGroup,
	posts *postsuc.UseCase,
	comments *commentsuc.UseCase,
) {
	rs := &resource{posts: posts, comments: comments}
	r.POST("posts", rs.CreatePost)
	r.GET("posts", rs.ListPosts)
	r.GET("posts/:pid", rs.GetPost)
	r.PUT("posts/:pid", rs.UpdatePost)
	r.DELETE("posts/:pid", rs.DeletePost)
	r.GET("posts/:pid/comments", rs.ListComments)
	r.PATCH("comments/:cmid", rs.UpdateComment)
	r.POST("authors", rs.CreateAuthor)
	r.DELETE("authors/:uid", rs.DeleteAuthor)
}

func (rs *resource) CreatePost(c *gin.Context) {
	p := rs.DserPostReq(c)
	if p == nil {
		return
	}
	if err := rs.posts.Create(c, p); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, SerPost(p))
}

func (rs *resource) ListPosts(c *gin.Context) {
	filters := rs.DserListPostsReq(c)
	if filters == nil {
		return
	}
	ps, err := rs.posts.AllPosts(c, filters...)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	resp := make([]Post, 0, len(ps))
	for i := range ps {
		resp = append(resp, SerPost(&ps[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (rs *resource) GetPost(c *gin.Context) {
	pid, ok := dserID(c, "pid")
	if !ok {
		return
	}
	p, err := rs.posts.Get(c, pid)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, SerPost(p))
}

func (rs *resource) UpdatePost(c *gin.Context) {
	pid, ok := dserID(c, "pid")
	if !ok {
		return
	}
	p := rs.DserPostReq(c)
	if p == nil {
		return
	}
	p.ID = pid
	if err := rs.posts.Update(c, p); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, SerPost(p))
}

func (rs *resource) DeletePost(c *gin.Context) {
	pid, ok := dserID(c, "pid")
	if !ok {
		return
	}
	if err := rs.posts.Delete(c, pid); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (rs *resource) ListComments(c *gin.Context) {
	pid, ok := dserID(c, "pid")
	if !ok {
		return
	}
	cs, err := rs.comments.ForPost(c, pid, false)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	resp := make([]Comment, 0, len(cs))
	for i := range cs {
		resp = append(resp, SerComment(&cs[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (rs *resource) UpdateComment(c *gin.Context) {
	req := rs.DserUpdateCommentReq(c)
	if req == nil {
		return
	}
	cm := req.comment
	var err error
	switch req.op {
	case "activate", "deactivate":
		cm, err = rs.comments.Moderate(c, cm.ID, req.op == "activate")
	case "edit":
		err = rs.comments.Update(c, cm)
	default:
		panic("unexpected op: " + req.op)
	}
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, SerComment(cm))
}

func (rs *resource) CreateAuthor(c *gin.Context) {
	u := rs.DserAuthorReq(c)
	if u == nil {
		return
	}
	if err := rs.posts.CreateAuthor(c, u); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, Author{ID: u.ID, Username: u.Username})
}

func (rs *resource) DeleteAuthor(c *gin.Context) {
	uid, ok := dserID(c, "uid")
	if !ok {
		return
	}
	if err := rs.posts.DeleteAuthor(c, uid); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
