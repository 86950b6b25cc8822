// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package gin wraps the gin-gonic engine, so other packages (such as
// the config package) may instantiate it without depending on the
// gin-gonic module directly. It also provides the request-scoped
// logging and the Prometheus metrics middlewares.
// Resources live in sub-packages, named like storesrs, and are
// registered by the routes package.
package gin

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

type (
	HandlerFunc = gin.HandlerFunc
	Engine      = gin.Engine
)

// These constants name the gin-gonic modes.
const (
	DebugMode   = gin.DebugMode
	ReleaseMode = gin.ReleaseMode
	TestMode    = gin.TestMode
)

// SetMode sets the gin-gonic mode globally.
func SetMode(mode string) {
	gin.SetMode(mode)
}

// New creates an engine which runs the given middlewares for all
// requests. Only the trustedProxies may set the client IP by the
// X-Forwarded-For header, so a nil list makes the TCP peer address
// the client IP. Handlers may pass their *gin.Context as a context.Context
// to the use cases; it falls back to the request context, so values
// which are attached by the middlewares (like the request logger) are
// visible there.
func New(trustedProxies []string, middlewares ...HandlerFunc) (*Engine, error) {
	e := gin.New()
	e.ContextWithFallback = true
	if err := e.SetTrustedProxies(trustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	e.Use(middlewares...)
	return e, nil
}

func Logger() HandlerFunc {
	return gin.Logger()
}

func Recovery() HandlerFunc {
	return gin.Recovery()
}
