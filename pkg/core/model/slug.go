// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gosimple/slug"
)

var slugRE = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// IsSlug reports if s is a non-empty URL-safe identifier consisting of
// ASCII letters, digits, underscores, or hyphens.
func IsSlug(s string) bool {
	return slugRE.MatchString(s)
}

// MaxSlugLength is the maximum length of a post slug.
const MaxSlugLength = 250

// Slugify derives a post slug from a title, e.g., "Hello, World!"
// becomes "hello-world". Non-ASCII letters are transliterated, which
// may lengthen the text, so the result is cut to MaxSlugLength.
func Slugify(title string) string {
	return slugify(title, MaxSlugLength)
}

// TagSlug derives the slug of a tag name, cut to MaxTagLength.
func TagSlug(name string) string {
	return slugify(name, MaxTagLength)
}

// slugify cuts the slug at the last hyphen which fits in maxLen bytes,
// or at maxLen itself if there is no such hyphen. The slug package
// only emits ASCII, so the cut never splits a character.
func slugify(s string, maxLen int) string {
	sl := slug.Make(s)
	if len(sl) <= maxLen {
		return sl
	}
	if sl[maxLen] == '-' {
		return sl[:maxLen]
	}
	cut := sl[:maxLen]
	if i := strings.LastIndexByte(cut, '-'); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, "-")
}

func validSlug(fl validator.FieldLevel) bool {
	return IsSlug(fl.Field().String())
}
