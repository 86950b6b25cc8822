// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/momeni/mysite/pkg/core/model"
)

type UsersTxQueryer interface {
	Insert(ctx context.Context, u *model.User) error
	Get(ctx context.Context, uid uuid.UUID) (*model.User, error)

	// Delete removes the uid user together with all posts which are
	// authored by that user (and their comments and tag links).
	Delete(ctx context.Context, uid uuid.UUID) error
}

// Users is the opaque identity collaborator. It is only used in
// transactions because deleting a user cascades to several tables.
type Users interface {
	Tx(Tx) UsersTxQueryer
}
