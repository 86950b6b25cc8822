// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/momeni/mysite/pkg/adapter/db/postgres"
	"github.com/momeni/mysite/pkg/core/cerr"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslateError(t *testing.T) {
	cases := []struct {
		code   string
		status int
	}{
		{"23505", http.StatusConflict},
		{"23503", http.StatusNotFound},
		{"23502", http.StatusBadRequest},
		{"23514", http.StatusBadRequest},
		{"22001", http.StatusBadRequest},
		{"42P01", 0},
	}
	for _, c := range cases {
		t.Run(c.code, func(t *testing.T) {
			pgErr := &pgconn.PgError{Code: c.code, Message: "boom"}
			err := postgres.TranslateError(fmt.Errorf("insert: %w", pgErr))
			assert.Equal(t, c.status, cerr.StatusOf(err))
			assert.ErrorIs(t, err, pgErr)
		})
	}
	assert.Nil(t, postgres.TranslateError(nil))
	assert.True(t, cerr.IsNotFound(postgres.TranslateError(gorm.ErrRecordNotFound)))
	plain := errors.New("plain")
	assert.Equal(t, plain, postgres.TranslateError(plain))
}
