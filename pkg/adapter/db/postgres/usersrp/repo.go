// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package usersrp provides a reification of the repo.Users interface.
// Deleting a user relies on the ON DELETE CASCADE constraints of the
// posts, comments, and post_tags tables.
package usersrp

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/momeni/mysite/pkg/adapter/db/postgres"
	"github.com/momeni/mysite/pkg/core/cerr"
	"github.com/momeni/mysite/pkg/core/model"
	"github.com/momeni/mysite/pkg/core/repo"
)

var errUserNotFound = errors.New("user not found")

type Repo struct {
}

func New() *Repo {
	return &Repo{}
}

type gUser struct {
	UID      uuid.UUID `gorm:"primaryKey;type:uuid;column:uid"`
	Username string    `gorm:"column:username"`
}

func (gu *gUser) TableName() string {
	return "users"
}

type txQueryer struct {
	*postgres.Tx
}

func (users *Repo) Tx(tx repo.Tx) repo.UsersTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Insert(ctx context.Context, u *model.User) error {
	gdb := tq.GORM(ctx).Create(&gUser{UID: u.ID, Username: u.Username})
	if err := gdb.Error; err != nil {
		return fmt.Errorf("query: %w", postgres.TranslateError(err))
	}
	return nil
}

func (tq txQueryer) Get(ctx context.Context, uid uuid.UUID) (*model.User, error) {
	var gu []gUser
	gdb := tq.GORM(ctx).Where("uid = ?", uid).Limit(1).Find(&gu)
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", postgres.TranslateError(err))
	}
	if len(gu) == 0 {
		return nil, cerr.NotFound(errUserNotFound)
	}
	return &model.User{ID: gu[0].UID, Username: gu[0].Username}, nil
}

func (tq txQueryer) Delete(ctx context.Context, uid uuid.UUID) error {
	gdb := tq.GORM(ctx).Where("uid = ?", uid).Delete(&gUser{})
	if err := gdb.Error; err != nil {
		return fmt.Errorf("query: %w", postgres.TranslateError(err))
	}
	if gdb.RowsAffected == 0 {
		return cerr.NotFound(errUserNotFound)
	}
	return nil
}
