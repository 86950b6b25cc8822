// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package commentsuc_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/mysite/pkg/adapter/db/memory"
	"github.com/momeni/mysite/pkg/core/cerr"
	"github.com/momeni/mysite/pkg/core/model"
	"github.com/momeni/mysite/pkg/core/usecase/commentsuc"
	"github.com/momeni/mysite/pkg/core/usecase/postsuc"
	"github.com/stretchr/testify/suite"
)

type CommentsSuite struct {
	suite.Suite

	ctx     context.Context
	now     time.Time
	postsUC *postsuc.UseCase
	uc      *commentsuc.UseCase
	post    *model.Post
	other   *model.Post
}

func TestCommentsSuite(t *testing.T) {
	suite.Run(t, new(CommentsSuite))
}

func (cs *CommentsSuite) SetupTest() {
	cs.ctx = context.Background()
	cs.now = time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time { return cs.now }
	pool, posts := memory.NewPool(), memory.NewPosts()
	var err error
	cs.postsUC, err = postsuc.New(
		pool, posts, memory.NewTags(), memory.NewUsers(),
		postsuc.WithClock(clock),
	)
	cs.Require().NoError(err)
	cs.uc, err = commentsuc.New(
		pool, memory.NewComments(), posts, commentsuc.WithClock(clock),
	)
	cs.Require().NoError(err)

	u := &model.User{Username: "admin"}
	cs.Require().NoError(cs.postsUC.CreateAuthor(cs.ctx, u))
	cs.post = &model.Post{Title: "Commented", Body: "Hi.", AuthorID: u.ID}
	cs.Require().NoError(cs.postsUC.Create(cs.ctx, cs.post))
	cs.other = &model.Post{Title: "Other", Body: "Hi.", AuthorID: u.ID}
	cs.Require().NoError(cs.postsUC.Create(cs.ctx, cs.other))
}

func (cs *CommentsSuite) submit(pid uuid.UUID, name string) *model.Comment {
	c := &model.Comment{Name: name, Email: name + "@example.com", Body: "Hi"}
	cs.Require().NoError(cs.uc.Create(cs.ctx, pid, c))
	cs.now = cs.now.Add(time.Second)
	return c
}

func (cs *CommentsSuite) names(comments []model.Comment) []string {
	ns := make([]string, len(comments))
	for i, c := range comments {
		ns[i] = c.Name
	}
	return ns
}

func (cs *CommentsSuite) TestCreate() {
	c := &model.Comment{
		Name: "ann", Email: "ann@example.com", Body: "Nice",
		Active: false, PostID: cs.other.ID,
	}
	cs.Require().NoError(cs.uc.Create(cs.ctx, cs.post.ID, c))
	cs.True(c.Active)
	cs.Equal(cs.post.ID, c.PostID)
	cs.Equal(cs.now, c.Created)
	cs.Equal(cs.now, c.Updated)
	cs.Equal("Comment by ann on Commented", c.Caption(cs.post.Title))
}

func (cs *CommentsSuite) TestCreateValidation() {
	c := &model.Comment{Name: "ann", Email: "not-an-email", Body: "x"}
	err := cs.uc.Create(cs.ctx, cs.post.ID, c)
	cs.Equal(http.StatusBadRequest, cerr.StatusOf(err))

	c = &model.Comment{Name: "ann", Email: "ann@example.com", Body: "x"}
	err = cs.uc.Create(cs.ctx, uuid.New(), c)
	cs.True(cerr.IsNotFound(err))
}

func (cs *CommentsSuite) TestForPostOrderAndModeration() {
	cs.submit(cs.post.ID, "first")
	second := cs.submit(cs.post.ID, "second")
	cs.submit(cs.other.ID, "elsewhere")
	cs.submit(cs.post.ID, "third")

	all, err := cs.uc.ForPost(cs.ctx, cs.post.ID, true)
	cs.Require().NoError(err)
	cs.Equal([]string{"first", "second", "third"}, cs.names(all))

	mod, err := cs.uc.Moderate(cs.ctx, second.ID, false)
	cs.Require().NoError(err)
	cs.False(mod.Active)
	cs.True(mod.Updated.After(second.Updated))
	cs.Equal(second.Created, mod.Created)

	active, err := cs.uc.ForPost(cs.ctx, cs.post.ID, true)
	cs.Require().NoError(err)
	cs.Equal([]string{"first", "third"}, cs.names(active))

	all, err = cs.uc.ForPost(cs.ctx, cs.post.ID, false)
	cs.Require().NoError(err)
	cs.Equal([]string{"first", "second", "third"}, cs.names(all))

	_, err = cs.uc.ForPost(cs.ctx, uuid.New(), false)
	cs.True(cerr.IsNotFound(err))
}

func (cs *CommentsSuite) TestUpdateKeepsCreatedAndActive() {
	c := cs.submit(cs.post.ID, "ann")
	_, err := cs.uc.Moderate(cs.ctx, c.ID, false)
	cs.Require().NoError(err)

	edit := &model.Comment{
		ID: c.ID, Name: "Ann", Email: "ann@example.org", Body: "Edited",
		Active: true,
	}
	cs.Require().NoError(cs.uc.Update(cs.ctx, edit))
	cs.Equal("Edited", edit.Body)
	cs.False(edit.Active)
	cs.Equal(c.Created, edit.Created)
	cs.Equal(cs.post.ID, edit.PostID)

	got, err := cs.uc.Get(cs.ctx, c.ID)
	cs.Require().NoError(err)
	cs.Equal(edit, got)

	edit.Email = "bad"
	err = cs.uc.Update(cs.ctx, edit)
	cs.Equal(http.StatusBadRequest, cerr.StatusOf(err))
}

func (cs *CommentsSuite) TestDeletingPostRemovesItsCommentsOnly() {
	mine := cs.submit(cs.post.ID, "mine")
	theirs := cs.submit(cs.other.ID, "theirs")
	cs.Require().NoError(cs.postsUC.Delete(cs.ctx, cs.post.ID))

	_, err := cs.uc.Get(cs.ctx, mine.ID)
	cs.True(cerr.IsNotFound(err))
	got, err := cs.uc.Get(cs.ctx, theirs.ID)
	cs.Require().NoError(err)
	cs.Equal(theirs.ID, got.ID)
}
