// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PostStatus specifies the lifecycle status of a post. Although this
// enum is numeric, it is stored and (de)serialized as a string.
type PostStatus int

// Valid values for the PostStatus enum.
const (
	PostStatusInvalid PostStatus = iota // zero value is invalid

	PostStatusDraft     // visible to administrators only
	PostStatusPublished // visible in the public listing
)

// ErrUnknownPostStatus indicates that a given string may not be parsed
// as a known post status. The caller already knows the rejected string,
// so it is not repeated here.
var ErrUnknownPostStatus = errors.New("unknown post status")

// PostStatusError indicates an invalid numeric post status.
type PostStatusError int

// Error implements the error interface, returning a string
// representation of the PostStatusError.
func (e PostStatusError) Error() string {
	return fmt.Sprintf("invalid post status: %d", e)
}

// Validate returns nil if PostStatus value is valid. For invalid
// values, an instance of the PostStatusError will be returned.
func (s PostStatus) Validate() error {
	switch s {
	case PostStatusDraft, PostStatusPublished:
		return nil
	default:
		return PostStatusError(s)
	}
}

// String converts the PostStatus enum to its stored representation.
// Invalid post status causes a panic.
func (s PostStatus) String() string {
	switch s {
	case PostStatusDraft:
		return "draft"
	case PostStatusPublished:
		return "published"
	default:
		panic(PostStatusError(s))
	}
}

// MarshalText encodes a valid status as "draft" or "published".
func (s PostStatus) MarshalText() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes "draft" or "published" into s.
func (s *PostStatus) UnmarshalText(text []byte) error {
	ps, err := ParsePostStatus(string(text))
	if err != nil {
		return err
	}
	*s = ps
	return nil
}

// ParsePostStatus parses the given string and returns a PostStatus.
// For invalid strings, PostStatusInvalid and ErrUnknownPostStatus
// will be returned.
func ParsePostStatus(s string) (PostStatus, error) {
	switch s {
	case "draft":
		return PostStatusDraft, nil
	case "published":
		return PostStatusPublished, nil
	default:
		return PostStatusInvalid, ErrUnknownPostStatus
	}
}

// Post models a blog post. The (calendar date of Publish, Slug) pair
// is unique among all posts, while a Slug alone may repeat on other
// days. Created is assigned once when a post is inserted and Updated
// is reassigned by every write; both are managed by the posts use case
// and ignored when given by callers.
type Post struct {
	ID       uuid.UUID
	Title    string `validate:"required,max=250"`
	Slug     string `validate:"required,max=250,slug"`
	AuthorID uuid.UUID
	Body     string `validate:"required"`
	Publish  time.Time
	Created  time.Time
	Updated  time.Time
	Status   PostStatus
	Tags     []string // tag names, managed by the tagging collaborator
}

// String returns the post title.
func (p Post) String() string {
	return p.Title
}

// PublishDate returns the calendar day which the post is routed by.
func (p *Post) PublishDate() Date {
	return DateOf(p.Publish)
}

// AbsolutePath returns the canonical detail path of the post, like
// /blog/2024/3/5/hello-world/ (numbers are not zero-padded).
func (p *Post) AbsolutePath() string {
	d := p.PublishDate()
	return fmt.Sprintf(
		"/blog/%d/%d/%d/%s/", d.Year, int(d.Month), d.Day, p.Slug,
	)
}

// IsPublished reports if the post belongs to the published projection.
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}

// Validate checks the field constraints of the post. The author must be
// set, the status must be valid, and title and slug must fit their
// limits (slug must be URL-safe).
func (p *Post) Validate() error {
	err := validateStruct(p)
	ve, ok := err.(ValidationError)
	if err != nil && !ok {
		return err
	}
	if ve == nil {
		ve = ValidationError{}
	}
	if p.AuthorID == uuid.Nil {
		ve["author"] = append(ve["author"], "this field is required")
	}
	if p.Status.Validate() != nil {
		ve["status"] = append(ve["status"], "select a valid choice")
	}
	if p.Publish.IsZero() {
		ve["publish"] = append(ve["publish"], "this field is required")
	}
	if len(ve) == 0 {
		return nil
	}
	return ve
}
