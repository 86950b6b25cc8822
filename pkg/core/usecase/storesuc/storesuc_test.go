// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package storesuc_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/momeni/mysite/pkg/adapter/db/memory"
	"github.com/momeni/mysite/pkg/core/cerr"
	"github.com/momeni/mysite/pkg/core/model"
	"github.com/momeni/mysite/pkg/core/usecase/storesuc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUseCase() *storesuc.UseCase {
	return storesuc.New(memory.NewPool(), memory.NewStores())
}

func javaHut() *model.Store {
	return &model.Store{
		Name: "Java Hut", Address: "1 Main St", City: "Austin", State: "TX",
	}
}

func TestCRUD(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase()

	s := javaHut()
	require.NoError(t, uc.Create(ctx, s))
	require.NotEqual(t, uuid.Nil, s.ID)

	got, err := uc.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s, got)
	assert.Equal(t, "Java Hut (Austin,TX)", uc.Describe(got))

	other := &model.Store{
		Name: "Bean Bar", Address: "2 Elm St", City: "Boston", State: "MA",
	}
	require.NoError(t, uc.Create(ctx, other))
	ss, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, ss, 2)
	assert.Equal(t, "Bean Bar", ss[0].Name)
	assert.Equal(t, "Java Hut", ss[1].Name)

	s.City = "Dallas"
	require.NoError(t, uc.Update(ctx, s))
	got, err = uc.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Java Hut (Dallas,TX)", got.String())

	require.NoError(t, uc.Delete(ctx, s.ID))
	_, err = uc.Get(ctx, s.ID)
	assert.True(t, cerr.IsNotFound(err))
	assert.True(t, cerr.IsNotFound(uc.Delete(ctx, s.ID)))
}

func TestCreateRejectsLongFields(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase()

	s := javaHut()
	s.State = "TEX"
	err := uc.Create(ctx, s)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, cerr.StatusOf(err))
	var ve model.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve, "state")

	ss, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ss)
}

func TestUpdateUnknownStore(t *testing.T) {
	uc := newUseCase()
	s := javaHut()
	s.ID = uuid.New()
	err := uc.Update(context.Background(), s)
	assert.True(t, cerr.IsNotFound(err))
}
