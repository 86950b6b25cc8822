// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cerr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/momeni/mysite/pkg/core/cerr"
	"github.com/stretchr/testify/assert"
)

func TestStatusOfWrappedErrors(t *testing.T) {
	base := errors.New("no such post")
	err := fmt.Errorf("detail: %w", cerr.NotFound(base))
	assert.Equal(t, http.StatusNotFound, cerr.StatusOf(err))
	assert.True(t, cerr.IsNotFound(err))
	assert.ErrorIs(t, err, base)
	assert.Equal(t, "detail: [404] no such post", err.Error())

	assert.Equal(t, 0, cerr.StatusOf(base))
	assert.Equal(t, http.StatusConflict, cerr.StatusOf(cerr.Conflict(base)))
	assert.Equal(t, http.StatusInternalServerError, cerr.StatusOf(cerr.Internal(base)))
	assert.Equal(t, http.StatusBadRequest, cerr.StatusOf(cerr.BadRequest(base)))
}
