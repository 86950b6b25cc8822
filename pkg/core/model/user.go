// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import "github.com/google/uuid"

// User is an opaque reference to a person who may author posts.
// Identity management (passwords, sessions, permissions) is out of the
// scope of this project; users are only kept so posts can reference
// their author and vanish with them.
type User struct {
	ID       uuid.UUID
	Username string `validate:"required,max=150"`
}

// Validate returns a ValidationError if the username is missing or
// too long.
func (u *User) Validate() error {
	return validateStruct(u)
}
