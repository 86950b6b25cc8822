// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postsuc_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/mysite/pkg/adapter/db/memory"
	"github.com/momeni/mysite/pkg/core/cerr"
	"github.com/momeni/mysite/pkg/core/model"
	"github.com/momeni/mysite/pkg/core/repo"
	"github.com/momeni/mysite/pkg/core/usecase/postsuc"
	"github.com/stretchr/testify/suite"
)

var epoch = time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)

type PostsSuite struct {
	suite.Suite

	ctx    context.Context
	pool   *memory.Pool
	uc     *postsuc.UseCase
	now    time.Time
	author model.User
}

func TestPostsSuite(t *testing.T) {
	suite.Run(t, new(PostsSuite))
}

func (ps *PostsSuite) SetupTest() {
	ps.ctx = context.Background()
	ps.pool = memory.NewPool()
	ps.now = epoch
	uc, err := postsuc.New(
		ps.pool, memory.NewPosts(), memory.NewTags(), memory.NewUsers(),
		postsuc.WithClock(func() time.Time { return ps.now }),
	)
	ps.Require().NoError(err)
	ps.uc = uc
	ps.author = model.User{Username: "admin"}
	ps.Require().NoError(ps.uc.CreateAuthor(ps.ctx, &ps.author))
}

func (ps *PostsSuite) create(title string, status model.PostStatus, publish time.Time, tags ...string) *model.Post {
	p := &model.Post{
		Title:    title,
		AuthorID: ps.author.ID,
		Body:     "Body of " + title,
		Publish:  publish,
		Status:   status,
		Tags:     tags,
	}
	ps.Require().NoError(ps.uc.Create(ps.ctx, p))
	return p
}

func (ps *PostsSuite) slugs(posts []model.Post) []string {
	ss := make([]string, len(posts))
	for i, p := range posts {
		ss[i] = p.Slug
	}
	return ss
}

func (ps *PostsSuite) TestCreateDefaults() {
	p := &model.Post{Title: "Hello World", Body: "Hi.", AuthorID: ps.author.ID}
	ps.Require().NoError(ps.uc.Create(ps.ctx, p))
	ps.NotEqual(uuid.Nil, p.ID)
	ps.Equal("hello-world", p.Slug)
	ps.Equal(model.PostStatusDraft, p.Status)
	ps.Equal(epoch, p.Publish)
	ps.Equal(epoch, p.Created)
	ps.Equal(epoch, p.Updated)
	ps.Empty(p.Tags)
}

func (ps *PostsSuite) TestCreateValidation() {
	p := &model.Post{Title: "No author"}
	err := ps.uc.Create(ps.ctx, p)
	ps.Equal(http.StatusBadRequest, cerr.StatusOf(err))

	p = &model.Post{Title: "Bad slug", Slug: "a b", Body: "Hi.", AuthorID: ps.author.ID}
	err = ps.uc.Create(ps.ctx, p)
	ps.Equal(http.StatusBadRequest, cerr.StatusOf(err))

	p = &model.Post{Title: "Empty", AuthorID: ps.author.ID}
	err = ps.uc.Create(ps.ctx, p)
	ps.Equal(http.StatusBadRequest, cerr.StatusOf(err), "body is required")

	p = &model.Post{Title: "Ghost", Body: "Hi.", AuthorID: uuid.New()}
	err = ps.uc.Create(ps.ctx, p)
	ps.True(cerr.IsNotFound(err))
}

func (ps *PostsSuite) TestSlugIsUniquePerPublishDate() {
	ps.create("Hello", model.PostStatusPublished, epoch)
	p := &model.Post{
		Title:    "Hello",
		AuthorID: ps.author.ID,
		Body:     "Again.",
		Publish:  epoch.Add(13 * time.Hour),
	}
	err := ps.uc.Create(ps.ctx, p)
	ps.Equal(http.StatusConflict, cerr.StatusOf(err))
	ps.ErrorIs(err, postsuc.ErrDuplicateSlug)

	p.Publish = epoch.Add(14 * time.Hour) // next day in UTC
	ps.NoError(ps.uc.Create(ps.ctx, p))
}

func (ps *PostsSuite) TestPublishedProjection() {
	ps.create("Old", model.PostStatusPublished, epoch.Add(-48*time.Hour), "Go")
	ps.create("Draft", model.PostStatusDraft, epoch)
	ps.create("New", model.PostStatusPublished, epoch.Add(-time.Hour), "Web", "go")

	all, err := ps.uc.AllPosts(ps.ctx)
	ps.Require().NoError(err)
	ps.Equal([]string{"draft", "new", "old"}, ps.slugs(all))

	published, err := ps.uc.PublishedPosts(ps.ctx)
	ps.Require().NoError(err)
	ps.Equal([]string{"new", "old"}, ps.slugs(published))
	ps.Equal([]string{"Go", "Web"}, published[0].Tags) // "go" reuses the "Go" tag

	// a caller filter may narrow the projection but not widen it
	drafts, err := ps.uc.PublishedPosts(
		ps.ctx, repo.StatusIs(model.PostStatusDraft),
	)
	ps.Require().NoError(err)
	ps.Empty(drafts)

	tagged, err := ps.uc.PublishedPosts(ps.ctx, repo.TaggedWith("go"))
	ps.Require().NoError(err)
	ps.Equal([]string{"new", "old"}, ps.slugs(tagged))

	tagged, err = ps.uc.PublishedPosts(ps.ctx, repo.TaggedWith("web"))
	ps.Require().NoError(err)
	ps.Equal([]string{"new"}, ps.slugs(tagged))
}

func (ps *PostsSuite) TestUpdateTimestamps() {
	p := ps.create("Hello", model.PostStatusDraft, epoch, "Go")
	created := p.Created

	ps.now = epoch.Add(time.Minute)
	p.Title = "Hello again"
	p.Status = model.PostStatusPublished
	p.Created = time.Time{}
	p.Tags = nil
	ps.Require().NoError(ps.uc.Update(ps.ctx, p))
	ps.Equal(created, p.Created)
	ps.Equal(epoch.Add(time.Minute), p.Updated)
	ps.Equal([]string{"Go"}, p.Tags)

	// clock did not move, updated must still increase
	prev := p.Updated
	p.Tags = []string{}
	ps.Require().NoError(ps.uc.Update(ps.ctx, p))
	ps.True(p.Updated.After(prev))
	ps.Empty(p.Tags)

	got, err := ps.uc.Get(ps.ctx, p.ID)
	ps.Require().NoError(err)
	ps.Equal("Hello again", got.Title)
	ps.Equal(created, got.Created)
	ps.Equal(p.Updated, got.Updated)
	ps.Empty(got.Tags)
}

func (ps *PostsSuite) TestUpdateKeepsStoredStatusAndPublish() {
	p := ps.create("Hello", model.PostStatusPublished, epoch)

	ps.now = epoch.Add(time.Hour)
	edit := &model.Post{
		ID:       p.ID,
		Title:    "Hello",
		AuthorID: ps.author.ID,
		Body:     "Edited body.",
	}
	ps.Require().NoError(ps.uc.Update(ps.ctx, edit))
	ps.Equal(model.PostStatusPublished, edit.Status)
	ps.Equal(epoch, edit.Publish)

	got, err := ps.uc.Get(ps.ctx, p.ID)
	ps.Require().NoError(err)
	ps.Equal("Edited body.", got.Body)
	ps.Equal(model.PostStatusPublished, got.Status)
	ps.Equal(epoch, got.Publish)

	edit.Body = ""
	err = ps.uc.Update(ps.ctx, edit)
	ps.Equal(http.StatusBadRequest, cerr.StatusOf(err))
}

func (ps *PostsSuite) TestUpdateConflictsWithOthersOnly() {
	p1 := ps.create("One", model.PostStatusPublished, epoch)
	p2 := ps.create("Two", model.PostStatusPublished, epoch)
	ps.NoError(ps.uc.Update(ps.ctx, p1))

	p2.Slug = p1.Slug
	err := ps.uc.Update(ps.ctx, p2)
	ps.Equal(http.StatusConflict, cerr.StatusOf(err))
}

func (ps *PostsSuite) TestPostDetail() {
	p := ps.create("Hello World", model.PostStatusPublished, epoch)
	ps.create("Hello World", model.PostStatusPublished, epoch.AddDate(0, 0, 1))

	d, err := model.NewDate(2024, time.March, 5)
	ps.Require().NoError(err)
	got, err := ps.uc.PostDetail(ps.ctx, d, "hello-world")
	ps.Require().NoError(err)
	ps.Equal(p.ID, got.ID)

	_, err = ps.uc.PostDetail(ps.ctx, d, "missing")
	ps.True(cerr.IsNotFound(err))

	other, err := model.NewDate(2024, time.March, 7)
	ps.Require().NoError(err)
	_, err = ps.uc.PostDetail(ps.ctx, other, "hello-world")
	ps.True(cerr.IsNotFound(err))
}

func (ps *PostsSuite) TestDeleteAuthorCascades() {
	p := ps.create("Mine", model.PostStatusPublished, epoch)
	ps.Require().NoError(ps.uc.DeleteAuthor(ps.ctx, ps.author.ID))
	_, err := ps.uc.Get(ps.ctx, p.ID)
	ps.True(cerr.IsNotFound(err))
}

func (ps *PostsSuite) TestDelete() {
	p := ps.create("Gone", model.PostStatusDraft, epoch)
	ps.Require().NoError(ps.uc.Delete(ps.ctx, p.ID))
	ps.True(cerr.IsNotFound(ps.uc.Delete(ps.ctx, p.ID)))
}

// duplicatePosts returns every post twice from Filter, simulating a
// database which lost its unique index.
type duplicatePosts struct {
	*memory.Posts
}

type duplicateQueryer struct {
	repo.PostsConnQueryer
}

func (dp duplicatePosts) Conn(c repo.Conn) repo.PostsConnQueryer {
	return duplicateQueryer{dp.Posts.Conn(c)}
}

func (dq duplicateQueryer) Filter(
	ctx context.Context, limit int, filters ...repo.PostFilter,
) ([]model.Post, error) {
	ps, err := dq.PostsConnQueryer.Filter(ctx, limit, filters...)
	if err != nil {
		return nil, err
	}
	return append(ps, ps...), nil
}

func TestPostDetailDuplicates(t *testing.T) {
	ctx := context.Background()
	pool := memory.NewPool()
	posts, tags, users := memory.NewPosts(), memory.NewTags(), memory.NewUsers()
	writer, err := postsuc.New(pool, posts, tags, users)
	if err != nil {
		t.Fatal(err)
	}
	reader, err := postsuc.New(pool, duplicatePosts{posts}, tags, users)
	if err != nil {
		t.Fatal(err)
	}
	u := &model.User{Username: "admin"}
	if err := writer.CreateAuthor(ctx, u); err != nil {
		t.Fatal(err)
	}
	p := &model.Post{Title: "Twin", Body: "Hi.", AuthorID: u.ID, Publish: epoch}
	if err := writer.Create(ctx, p); err != nil {
		t.Fatal(err)
	}
	_, err = reader.PostDetail(ctx, p.PublishDate(), "twin")
	if !errors.Is(err, model.ErrMultipleMatches) {
		t.Fatalf("expected multiple matches error, got %v", err)
	}
	if s := cerr.StatusOf(err); s != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", s)
	}
}

func TestNewRejectsNilClock(t *testing.T) {
	_, err := postsuc.New(
		memory.NewPool(), memory.NewPosts(), memory.NewTags(),
		memory.NewUsers(), postsuc.WithClock(nil),
	)
	if err == nil {
		t.Fatal("expected an error for nil clock")
	}
}
