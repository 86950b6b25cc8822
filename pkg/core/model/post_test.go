// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model_test

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/mysite/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ExamplePost_AbsolutePath() {
	p := model.Post{
		Slug:    "hello-world",
		Publish: time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC),
	}
	fmt.Println(p.AbsolutePath())
	// Output:
	// /blog/2024/3/5/hello-world/
}

func TestParsePostStatus(t *testing.T) {
	s, err := model.ParsePostStatus("published")
	require.NoError(t, err)
	assert.Equal(t, model.PostStatusPublished, s)
	assert.Equal(t, "published", s.String())

	s, err = model.ParsePostStatus("draft")
	require.NoError(t, err)
	assert.Equal(t, model.PostStatusDraft, s)

	s, err = model.ParsePostStatus("archived")
	assert.ErrorIs(t, err, model.ErrUnknownPostStatus)
	assert.Equal(t, model.PostStatusInvalid, s)

	assert.Error(t, model.PostStatusInvalid.Validate())
	assert.Panics(t, func() { _ = model.PostStatusInvalid.String() })
}

func TestPostStatusJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Status model.PostStatus `json:"status"`
	}{model.PostStatusPublished})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"published"}`, string(b))

	var v struct {
		Status model.PostStatus `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"status":"draft"}`), &v))
	assert.Equal(t, model.PostStatusDraft, v.Status)
	assert.Error(t, json.Unmarshal([]byte(`{"status":"gone"}`), &v))
}

func TestPostValidate(t *testing.T) {
	p := model.Post{
		Title:    "Hello World",
		Slug:     "hello-world",
		AuthorID: uuid.New(),
		Body:     "Hi.",
		Publish:  time.Now(),
		Status:   model.PostStatusDraft,
	}
	require.NoError(t, p.Validate())
	assert.Equal(t, "Hello World", p.String())

	bad := p
	bad.Slug = "hello world"
	bad.AuthorID = uuid.Nil
	bad.Status = model.PostStatusInvalid
	bad.Body = ""
	var ve model.ValidationError
	require.ErrorAs(t, bad.Validate(), &ve)
	assert.Contains(t, ve, "slug")
	assert.Contains(t, ve, "author")
	assert.Contains(t, ve, "status")
	assert.Contains(t, ve, "body")
	assert.NotContains(t, ve, "title")
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "hello-world", model.Slugify("Hello, World!"))
	assert.True(t, model.IsSlug("hello_world-2"))
	assert.False(t, model.IsSlug("hello/world"))
	assert.False(t, model.IsSlug(""))
}

func TestSlugsFitTheirColumns(t *testing.T) {
	title := strings.Repeat("word ", 80)
	sl := model.Slugify(title)
	assert.LessOrEqual(t, len(sl), model.MaxSlugLength)
	assert.True(t, model.IsSlug(sl), sl)
	assert.True(t, strings.HasSuffix(sl, "word"), "cut at a hyphen")

	name := strings.Repeat("щ", model.MaxTagLength)
	tags, err := model.NormalizeTags([]string{name})
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Len(t, tags[0].Slug, model.MaxTagLength, "transliteration is cut")
	assert.Equal(t, tags[0].Slug, model.TagSlug(name))
}

func TestNewDate(t *testing.T) {
	d, err := model.NewDate(2024, time.March, 5)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05", d.String())

	start, end := d.Bounds()
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC), end)
	assert.True(t, d.Contains(time.Date(2024, 3, 5, 23, 59, 59, 0, time.UTC)))
	assert.False(t, d.Contains(end))

	for _, tc := range [][3]int{{2023, 2, 29}, {2024, 13, 1}, {2024, 4, 31}, {0, 1, 1}} {
		_, err := model.NewDate(tc[0], time.Month(tc[1]), tc[2])
		var de model.DateError
		assert.ErrorAs(t, err, &de, "date %v", tc)
	}
	_, err = model.NewDate(2024, time.February, 29)
	assert.NoError(t, err, "leap day")
}

func TestDateOfUsesUTC(t *testing.T) {
	tehran := time.FixedZone("IRST", 3*3600+1800)
	ts := time.Date(2024, 3, 6, 1, 0, 0, 0, tehran) // 2024-03-05 21:30 UTC
	assert.Equal(t, model.Date{Year: 2024, Month: time.March, Day: 5}, model.DateOf(ts))
}
