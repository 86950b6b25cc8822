// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model_test

import (
	"testing"

	"github.com/momeni/mysite/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentValidate(t *testing.T) {
	c := model.Comment{Name: "Ann", Email: "ann@example.com", Body: "Nice"}
	require.NoError(t, c.Validate())
	assert.Equal(t, "Comment by Ann on Hello", c.Caption("Hello"))

	c.Email = "not-an-email"
	c.Body = ""
	var ve model.ValidationError
	require.ErrorAs(t, c.Validate(), &ve)
	assert.Equal(t, []string{"enter a valid email address"}, ve["email"])
	assert.Equal(t, []string{"this field is required"}, ve["body"])
}

func TestNormalizeTags(t *testing.T) {
	tags, err := model.NormalizeTags([]string{" Go ", "go", "", "Web Dev", "GO"})
	require.NoError(t, err)
	assert.Equal(t, []model.Tag{
		{Name: "Go", Slug: "go"},
		{Name: "Web Dev", Slug: "web-dev"},
	}, tags)
	assert.Equal(t, []string{"Go", "Web Dev"}, model.TagNames(tags))

	_, err = model.NormalizeTags([]string{"!!!"})
	var ve model.ValidationError
	assert.ErrorAs(t, err, &ve)
}
