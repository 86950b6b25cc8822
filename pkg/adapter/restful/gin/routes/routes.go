// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package routes contains all resource packages and facilitates
// instantiation and registration of all repo, use case, and resource
// packages based on the user provided configuration settings.
package routes

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/momeni/mysite/pkg/adapter/config"
	"github.com/momeni/mysite/pkg/adapter/markdown"
	ginadapter "github.com/momeni/mysite/pkg/adapter/restful/gin"
	"github.com/momeni/mysite/pkg/adapter/restful/gin/blogrs"
	"github.com/momeni/mysite/pkg/adapter/restful/gin/postsrs"
	"github.com/momeni/mysite/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/mysite/pkg/adapter/restful/gin/storesrs"
	"github.com/momeni/mysite/pkg/core/log"
	"github.com/momeni/mysite/pkg/core/repo"
	"github.com/momeni/mysite/pkg/core/usecase/commentsuc"
	"github.com/momeni/mysite/pkg/core/usecase/postsuc"
	"github.com/momeni/mysite/pkg/core/usecase/storesuc"
)

// APIPrefix is the path which the administration APIs are mounted at.
const APIPrefix = "/api/mysite/v1"

// Register instantiates relevant repositories and use cases based on
// the c configuration settings. The p connections pool is passed to
// the use case instances, so they may acquire/release connections
// and transactions on demand. These connections/transactions will be
// passed to the repositories later in order to run relevant queries on
// them and accomplish those use cases. Each use case package is named
// like postsuc and each repository package is named like postsrp.
// Register instantiates a series of "resource" structs, from packages
// which are named like postsrs, in order to adapt the use cases
// interfaces with the REST APIs. These resources are registered as
// request handlers using the e gin-gonic engine instance, after the
// request logging and metrics middlewares. Requests are logged by the
// slog default logger.
// Possible errors will be returned after possible wrapping.
func Register(
	ctx context.Context, e *gin.Engine, p repo.Pool, c *config.Config,
) error {
	serdser.RegisterValidations()
	repos := c.Database.Repos()

	stores := storesuc.New(p, repos.Stores)
	posts, err := postsuc.New(p, repos.Posts, repos.Tags, repos.Users)
	if err != nil {
		return fmt.Errorf("creating posts use case: %w", err)
	}
	comments, err := commentsuc.New(p, repos.Comments, repos.Posts)
	if err != nil {
		return fmt.Errorf("creating comments use case: %w", err)
	}

	metrics := ginadapter.NewMetrics()
	e.Use(ginadapter.RequestLogger(slog.Default()), metrics.Middleware())
	e.GET("/metrics", metrics.Handler())

	blogOpts := blogrs.Options{
		ExcerptWords: *c.Blog.ExcerptWords,
		CommentGuards: []gin.HandlerFunc{
			ginadapter.NewRateLimiter(*c.Blog.CommentsPerMinute).Middleware(),
		},
	}
	if *c.Blog.Markdown {
		blogOpts.Renderer = markdown.New()
	}
	blogrs.Register(e, posts, comments, blogOpts)

	r := e.Group(APIPrefix)
	storesrs.Register(r, stores)
	postsrs.Register(r, posts, comments)
	log.Info(
		ctx, "routes are registered",
		slog.Bool("markdown", blogOpts.Renderer != nil),
		slog.String("api", APIPrefix), slog.String("blog", blogrs.Prefix),
	)
	return nil
}
