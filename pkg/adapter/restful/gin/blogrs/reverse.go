// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package blogrs

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/momeni/mysite/pkg/core/model"
)

// Names of the blog routes, qualified by the blog namespace.
const (
	PostList   = "blog:post_list"
	PostDetail = "blog:post_detail"
)

// Prefix is the path which the blog namespace is mounted at.
const Prefix = "/blog"

// ErrNoReverseMatch indicates that no route has the asked name or the
// given arguments do not fit its path params.
var ErrNoReverseMatch = errors.New("no reverse match")

// Reverse builds the path of a named route. The post_list route takes
// no arguments. The post_detail route takes the year, month, day (as
// integers), and the slug, like Reverse(PostDetail, 2024, 3, 5,
// "hello-world") which returns /blog/2024/3/5/hello-world/.
func Reverse(name string, args ...any) (string, error) {
	switch name {
	case PostList:
		if len(args) != 0 {
			return "", fmt.Errorf("%w: %s takes no arguments", ErrNoReverseMatch, name)
		}
		return Prefix + "/", nil
	case PostDetail:
		if len(args) != 4 {
			return "", fmt.Errorf(
				"%w: %s takes year, month, day, and slug", ErrNoReverseMatch, name,
			)
		}
		parts := make([]string, 0, 4)
		for _, a := range args[:3] {
			n, ok := a.(int)
			if !ok || n <= 0 {
				return "", fmt.Errorf("%w: %v is not a positive int", ErrNoReverseMatch, a)
			}
			parts = append(parts, strconv.Itoa(n))
		}
		slug, ok := args[3].(string)
		if !ok || !model.IsSlug(slug) {
			return "", fmt.Errorf("%w: %v is not a slug", ErrNoReverseMatch, args[3])
		}
		parts = append(parts, slug)
		return Prefix + "/" + strings.Join(parts, "/") + "/", nil
	default:
		return "", fmt.Errorf("%w: unknown route %q", ErrNoReverseMatch, name)
	}
}

// PostURL reverses the detail route of the p post.
func PostURL(p *model.Post) (string, error) {
	d := p.PublishDate()
	return Reverse(PostDetail, d.Year, int(d.Month), d.Day, p.Slug)
}
