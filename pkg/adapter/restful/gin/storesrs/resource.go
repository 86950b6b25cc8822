// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package storesrs realizes the stores resource, allowing the store
// catalog REST APIs to be accepted and delegated to the stores use case.
package storesrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/mysite/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/mysite/pkg/core/usecase/storesuc"
)

type resource struct {
	stores *storesuc.UseCase
}

// Register instantiates a resource adapting the stores use case
// instance with the relevant REST APIs including:
//  1. POST request to /api/mysite/v1/stores
//     in order to add a store to the catalog,
//  2. GET request to /api/mysite/v1/stores
//     in order to list all stores,
//  3. GET, PUT, and DELETE requests to /api/mysite/v1/stores/:sid
//     in order to fetch, replace, or remove one store.
func Register(r *gin.RouterGroup, stores *storesuc.UseCase) {
	rs := &resource{stores: stores}
	r.POST("stores", rs.CreateStore)
	r.GET("stores", rs.ListStores)
	r.GET("stores/:sid", rs.GetStore)
	r.PUT("stores/:sid", rs.UpdateStore)
	r.DELETE("stores/:sid", rs.DeleteStore)
}

func (rs *resource) CreateStore(c *gin.Context) {
	s := rs.DserStoreReq(c)
	if s == nil {
		return
	}
	if err := rs.stores.Create(c, s); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, rs.SerStore(s))
}

func (rs *resource) ListStores(c *gin.Context) {
	ss, err := rs.stores.List(c)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	resp := make([]Store, 0, len(ss))
	for i := range ss {
		resp = append(resp, rs.SerStore(&ss[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (rs *resource) GetStore(c *gin.Context) {
	sid, ok := DserStoreID(c)
	if !ok {
		return
	}
	s, err := rs.stores.Get(c, sid)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, rs.SerStore(s))
}

func (rs *resource) UpdateStore(c *gin.Context) {
	sid, ok := DserStoreID(c)
	if !ok {
		return
	}
	s := rs.DserStoreReq(c)
	if s == nil {
		return
	}
	s.ID = sid
	if err := rs.stores.Update(c, s); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, rs.SerStore(s))
}

func (rs *resource) DeleteStore(c *gin.Context) {
	sid, ok := DserStoreID(c)
	if !ok {
		return
	}
	if err := rs.stores.Delete(c, sid); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
