// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/momeni/mysite/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ExampleStore_String() {
	s := model.Store{Name: "Java Hut", City: "Austin", State: "TX"}
	fmt.Println(s)
	// Output:
	// Java Hut (Austin,TX)
}

func TestStoreValidate(t *testing.T) {
	valid := model.Store{
		Name: "Java Hut", Address: "1 Main St", City: "Austin", State: "TX",
	}
	require.NoError(t, valid.Validate())

	for _, tc := range []struct {
		name  string
		edit  func(s *model.Store)
		field string
	}{
		{"long name", func(s *model.Store) { s.Name = strings.Repeat("n", 31) }, "name"},
		{"long address", func(s *model.Store) { s.Address = strings.Repeat("a", 31) }, "address"},
		{"long city", func(s *model.Store) { s.City = strings.Repeat("c", 31) }, "city"},
		{"long state", func(s *model.Store) { s.State = "TXS" }, "state"},
		{"missing name", func(s *model.Store) { s.Name = "" }, "name"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			s := valid
			tc.edit(&s)
			err := s.Validate()
			var ve model.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Len(t, ve, 1)
			assert.Contains(t, ve, tc.field)
		})
	}
}

func TestStoreLimitsCountCharacters(t *testing.T) {
	s := model.Store{
		Name:    strings.Repeat("é", 30),
		Address: "x", City: "y", State: "TX",
	}
	assert.NoError(t, s.Validate(), "30 two-byte runes fit in 30 chars")
}
