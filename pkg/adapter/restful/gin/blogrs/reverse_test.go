// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package blogrs_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/momeni/mysite/pkg/adapter/restful/gin/blogrs"
	"github.com/momeni/mysite/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ExampleReverse() {
	path, err := blogrs.Reverse(blogrs.PostDetail, 2024, 3, 5, "hello-world")
	if err != nil {
		panic(err)
	}
	fmt.Println(path)
	// Output: /blog/2024/3/5/hello-world/
}

func TestReverse(t *testing.T) {
	path, err := blogrs.Reverse(blogrs.PostList)
	require.NoError(t, err)
	assert.Equal(t, "/blog/", path)

	for name, args := range map[string][]any{
		"list with args":  {2024},
		"too few args":    {2024, 3, 5},
		"zero month":      {2024, 0, 5, "hello-world"},
		"string year":     {"2024", 3, 5, "hello-world"},
		"bad slug":        {2024, 3, 5, "hello world"},
		"non-string slug": {2024, 3, 5, 7},
	} {
		route := blogrs.PostDetail
		if name == "list with args" {
			route = blogrs.PostList
		}
		_, err := blogrs.Reverse(route, args...)
		assert.ErrorIs(t, err, blogrs.ErrNoReverseMatch, name)
	}
	_, err = blogrs.Reverse("blog:archive")
	assert.ErrorIs(t, err, blogrs.ErrNoReverseMatch)
}

func TestPostURLMatchesAbsolutePath(t *testing.T) {
	p := &model.Post{
		Slug:    "hello-world",
		Publish: time.Date(2024, time.March, 5, 23, 30, 0, 0, time.UTC),
	}
	u, err := blogrs.PostURL(p)
	require.NoError(t, err)
	assert.Equal(t, "/blog/2024/3/5/hello-world/", u)
	assert.Equal(t, p.AbsolutePath(), u)
}
