// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package markdown renders post bodies from Markdown into HTML using
// the goldmark library. Raw HTML in bodies is not passed through, so
// the output may be embedded in pages as is.
package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// Renderer converts Markdown texts into HTML.
type Renderer struct {
	md goldmark.Markdown
}

// New creates a Renderer supporting the GitHub flavored Markdown
// (tables, strikethrough, autolinks, and task lists) and typographic
// punctuation. Headings get automatic id attributes.
func New() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)
	return &Renderer{md: md}
}

// Render converts the body Markdown into HTML.
func (r *Renderer) Render(body string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(body), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return buf.String(), nil
}

// Excerpt renders the first `words` words of body, suffixed by an
// ellipsis if some words were dropped. Line breaks of the kept part are
// preserved, so its block structure survives.
func (r *Renderer) Excerpt(body string, words int) (string, error) {
	return r.Render(truncateWords(body, words))
}

func truncateWords(s string, n int) string {
	seen := 0
	inWord := false
	for i, c := range s {
		space := c == ' ' || c == '\t' || c == '\n' || c == '\r'
		switch {
		case space && inWord:
			inWord = false
		case !space && !inWord:
			if seen == n {
				return strings.TrimRight(s[:i], " \t\r\n") + "…"
			}
			seen++
			inWord = true
		}
	}
	return s
}
