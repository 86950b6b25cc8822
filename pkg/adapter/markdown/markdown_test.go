// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package markdown_test

import (
	"fmt"
	"testing"

	"github.com/momeni/mysite/pkg/adapter/markdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ExampleRenderer_Render() {
	html, _ := markdown.New().Render("Hello *world*")
	fmt.Print(html)
	// Output: <p>Hello <em>world</em></p>
}

func TestRender(t *testing.T) {
	r := markdown.New()
	for _, tc := range []struct {
		name, body, want string
	}{
		{"empty", "", ""},
		{"heading", "# Fresh Beans", "<h1 id=\"fresh-beans\">Fresh Beans</h1>\n"},
		{"strike", "~~old~~", "<p><del>old</del></p>\n"},
		{"raw html", "<script>alert(1)</script>", "<!-- raw HTML omitted -->\n"},
		{
			"list", "- one\n- two",
			"<ul>\n<li>one</li>\n<li>two</li>\n</ul>\n",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := r.Render(tc.body)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestExcerpt(t *testing.T) {
	r := markdown.New()
	got, err := r.Excerpt("one two  three\nfour", 3)
	require.NoError(t, err)
	assert.Equal(t, "<p>one two  three…</p>\n", got)

	got, err = r.Excerpt("one two", 3)
	require.NoError(t, err)
	assert.Equal(t, "<p>one two</p>\n", got, "short bodies are kept")
}
