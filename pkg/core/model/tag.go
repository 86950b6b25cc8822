// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"strings"
	"unicode/utf8"
)

// MaxTagLength is the maximum number of characters of a tag name.
const MaxTagLength = 100

// Tag is a label which may be attached to many posts. Its Slug is
// derived from its Name and is unique as well.
type Tag struct {
	Name string
	Slug string
}

// NormalizeTags trims the given tag names, drops the empty ones, and
// removes duplicates by their slugs (keeping the first spelling), so
// "Go" and "go" are the same tag.
// Names which are longer than MaxTagLength characters are reported in
// a ValidationError. Returned tags keep the input order.
func NormalizeTags(names []string) ([]Tag, error) {
	seen := make(map[string]bool, len(names))
	tags := make([]Tag, 0, len(names))
	ve := ValidationError{}
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if utf8.RuneCountInString(n) > MaxTagLength {
			ve["tags"] = append(ve["tags"], "tag "+n+" is too long")
			continue
		}
		sl := TagSlug(n)
		if sl == "" {
			ve["tags"] = append(ve["tags"], "tag "+n+" has no letters or digits")
			continue
		}
		if seen[sl] {
			continue
		}
		seen[sl] = true
		tags = append(tags, Tag{Name: n, Slug: sl})
	}
	if len(ve) != 0 {
		return nil, ve
	}
	return tags, nil
}

// TagNames returns the names of tags in order.
func TagNames(tags []Tag) []string {
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Name
	}
	return names
}
