// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package setupuc

import (
	"context"
	"fmt"
	"time"

	"github.com/momeni/mysite/pkg/core/model"
	"github.com/momeni/mysite/pkg/core/repo"
	"github.com/momeni/mysite/pkg/core/usecase/commentsuc"
	"github.com/momeni/mysite/pkg/core/usecase/postsuc"
	"github.com/momeni/mysite/pkg/core/usecase/storesuc"
)

// Repos collects the entity repositories of one database backend.
type Repos struct {
	Stores   repo.Stores
	Posts    repo.Posts
	Comments repo.Comments
	Tags     repo.Tags
	Users    repo.Users
}

// SampleAuthor is the username of the author of seeded posts.
const SampleAuthor = "admin"

var sampleStores = []model.Store{
	{Name: "Java Hut", Address: "100 Congress Ave", City: "Austin", State: "TX"},
	{Name: "Bean There", Address: "22 Pike St", City: "Seattle", State: "WA"},
	{Name: "Grounds Up", Address: "7 Beacon St", City: "Boston", State: "MA"},
}

type samplePost struct {
	title    string
	body     string
	status   model.PostStatus
	age      time.Duration
	tags     []string
	comments []model.Comment
}

var samplePosts = []samplePost{
	{
		title:  "Hello World",
		body:   "The *first* post of this blog.",
		status: model.PostStatusPublished,
		age:    72 * time.Hour,
		tags:   []string{"News"},
		comments: []model.Comment{
			{Name: "Ann", Email: "ann@example.com", Body: "Welcome!"},
			{Name: "Bob", Email: "bob@example.com", Body: "Nice start."},
		},
	},
	{
		title:  "Serving Coffee with Go",
		body:   "A `net/http` handler walks into a café...",
		status: model.PostStatusPublished,
		age:    24 * time.Hour,
		tags:   []string{"Go", "Coffee"},
		comments: []model.Comment{
			{Name: "Cy", Email: "cy@example.com", Body: "Ha!"},
		},
	},
	{
		title:  "Upcoming Roasts",
		body:   "Not ready yet.",
		status: model.PostStatusDraft,
		tags:   []string{"Coffee"},
	},
}

// Seed fills the `p` database with sample stores, one author, two
// published posts and one draft post (with their tags), and a few
// comments. It uses the regular use cases, so seeded rows obey all
// of the validation rules and timestamp invariants.
func Seed(ctx context.Context, p repo.Pool, r Repos) error {
	stores := storesuc.New(p, r.Stores)
	for _, s := range sampleStores {
		if err := stores.Create(ctx, &s); err != nil {
			return fmt.Errorf("creating %q store: %w", s.Name, err)
		}
	}
	posts, err := postsuc.New(p, r.Posts, r.Tags, r.Users)
	if err != nil {
		return fmt.Errorf("creating posts use case: %w", err)
	}
	comments, err := commentsuc.New(p, r.Comments, r.Posts)
	if err != nil {
		return fmt.Errorf("creating comments use case: %w", err)
	}
	author := &model.User{Username: SampleAuthor}
	if err := posts.CreateAuthor(ctx, author); err != nil {
		return fmt.Errorf("creating sample author: %w", err)
	}
	now := time.Now().UTC().Truncate(time.Second)
	for _, sp := range samplePosts {
		post := &model.Post{
			Title:    sp.title,
			AuthorID: author.ID,
			Body:     sp.body,
			Publish:  now.Add(-sp.age),
			Status:   sp.status,
			Tags:     sp.tags,
		}
		if err := posts.Create(ctx, post); err != nil {
			return fmt.Errorf("creating %q post: %w", sp.title, err)
		}
		for _, c := range sp.comments {
			if err := comments.Create(ctx, post.ID, &c); err != nil {
				return fmt.Errorf(
					"commenting on %q post: %w", sp.title, err,
				)
			}
		}
	}
	return nil
}
