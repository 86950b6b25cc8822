// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"fmt"

	"github.com/google/uuid"
)

// Store models a physical store location of the coffeehouse.
// It has no relationships; all of its fields are bounded texts.
type Store struct {
	ID      uuid.UUID
	Name    string `validate:"required,max=30"`
	Address string `validate:"required,max=30"`
	City    string `validate:"required,max=30"`
	State   string `validate:"required,max=2"`
}

// String describes the store as "{name} ({city},{state})".
func (s Store) String() string {
	return fmt.Sprintf("%s (%s,%s)", s.Name, s.City, s.State)
}

// Validate returns a ValidationError if any field is missing or
// longer than its limit.
func (s *Store) Validate() error {
	return validateStruct(s)
}
