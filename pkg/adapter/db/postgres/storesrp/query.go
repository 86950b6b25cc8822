// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package storesrp

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/momeni/mysite/pkg/adapter/db/postgres"
	"github.com/momeni/mysite/pkg/core/cerr"
	"github.com/momeni/mysite/pkg/core/model"
)

var errStoreNotFound = errors.New("store not found")

type gStore struct {
	SID     uuid.UUID `gorm:"primaryKey;type:uuid;column:sid"`
	Name    string    `gorm:"column:name"`
	Address string    `gorm:"column:address"`
	City    string    `gorm:"column:city"`
	State   string    `gorm:"column:state"`
}

func (gs *gStore) TableName() string {
	return "stores"
}

func (gs *gStore) Model() *model.Store {
	return &model.Store{
		ID:      gs.SID,
		Name:    gs.Name,
		Address: gs.Address,
		City:    gs.City,
		State:   gs.State,
	}
}

func fromModel(s *model.Store) *gStore {
	return &gStore{
		SID:     s.ID,
		Name:    s.Name,
		Address: s.Address,
		City:    s.City,
		State:   s.State,
	}
}

func Insert[Q postgres.Queryer](ctx context.Context, q Q, s *model.Store) error {
	gdb := q.GORM(ctx).Create(fromModel(s))
	if err := gdb.Error; err != nil {
		return fmt.Errorf("query: %w", postgres.TranslateError(err))
	}
	return nil
}

func Get[Q postgres.Queryer](ctx context.Context, q Q, sid uuid.UUID) (*model.Store, error) {
	var gs []gStore
	gdb := q.GORM(ctx).Where("sid = ?", sid).Limit(1).Find(&gs)
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", postgres.TranslateError(err))
	}
	if len(gs) == 0 {
		return nil, cerr.NotFound(errStoreNotFound)
	}
	return gs[0].Model(), nil
}

func List[Q postgres.Queryer](ctx context.Context, q Q) ([]model.Store, error) {
	var gs []gStore
	gdb := q.GORM(ctx).Order("name, sid").Find(&gs)
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", postgres.TranslateError(err))
	}
	ss := make([]model.Store, 0, len(gs))
	for i := range gs {
		ss = append(ss, *gs[i].Model())
	}
	return ss, nil
}

func Update[Q postgres.Queryer](ctx context.Context, q Q, s *model.Store) error {
	gdb := q.GORM(ctx).Model(&gStore{SID: s.ID}).Select(
		"name", "address", "city", "state",
	).Updates(fromModel(s))
	if err := gdb.Error; err != nil {
		return fmt.Errorf("query: %w", postgres.TranslateError(err))
	}
	if gdb.RowsAffected == 0 {
		return cerr.NotFound(errStoreNotFound)
	}
	return nil
}

func Delete[Q postgres.Queryer](ctx context.Context, q Q, sid uuid.UUID) error {
	gdb := q.GORM(ctx).Where("sid = ?", sid).Delete(&gStore{})
	if err := gdb.Error; err != nil {
		return fmt.Errorf("query: %w", postgres.TranslateError(err))
	}
	if gdb.RowsAffected == 0 {
		return cerr.NotFound(errStoreNotFound)
	}
	return nil
}
