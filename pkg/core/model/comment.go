// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Comment models a reader reply which belongs to exactly one post.
// Comments are always listed in their creation order and vanish with
// their post. Active is a moderation flag; new comments are active and
// only an explicit moderation action may change it.
type Comment struct {
	ID      uuid.UUID
	PostID  uuid.UUID
	Name    string `validate:"required,max=80"`
	Email   string `validate:"required,max=254,email"`
	Body    string `validate:"required"`
	Created time.Time
	Updated time.Time
	Active  bool
}

// Caption describes the comment as "Comment by {name} on {post}".
func (c *Comment) Caption(postTitle string) string {
	return fmt.Sprintf("Comment by %s on %s", c.Name, postTitle)
}

// Validate returns a ValidationError if name, email, or body are
// missing or malformed.
func (c *Comment) Validate() error {
	return validateStruct(c)
}
