// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package storesrs

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/momeni/mysite/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/mysite/pkg/core/model"
)

type rawStorePath struct {
	StoreID string `uri:"sid" binding:"required,uuid"`
}

// DserStoreID parses the sid path param.
func DserStoreID(c *gin.Context) (uuid.UUID, bool) {
	req := &rawStorePath{}
	if ok := serdser.BindURI(c, req); !ok {
		return uuid.Nil, false
	}
	return uuid.MustParse(req.StoreID), true
}

// Field limits are checked by the stores use case, so they are
// reported with the same messages for all callers.
type rawStoreReq struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address" binding:"required"`
	City    string `json:"city" binding:"required"`
	State   string `json:"state" binding:"required"`
}

func (rs *resource) DserStoreReq(c *gin.Context) *model.Store {
	req := &rawStoreReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	return &model.Store{
		Name:    req.Name,
		Address: req.Address,
		City:    req.City,
		State:   req.State,
	}
}

// Store is the JSON representation of a store. Label is the
// human-readable caption, like "Java Hut (Austin,TX)".
type Store struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Address string    `json:"address"`
	City    string    `json:"city"`
	State   string    `json:"state"`
	Label   string    `json:"label"`
}

func (rs *resource) SerStore(s *model.Store) Store {
	return Store{
		ID:      s.ID,
		Name:    s.Name,
		Address: s.Address,
		City:    s.City,
		State:   s.State,
		Label:   rs.stores.Describe(s),
	}
}
