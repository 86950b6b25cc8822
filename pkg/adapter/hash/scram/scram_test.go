// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package scram_test

import (
	"strings"
	"testing"

	"github.com/momeni/mysite/pkg/adapter/hash/scram"
	corescram "github.com/momeni/mysite/pkg/core/scram"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ corescram.Hasher = scram.SHA256()

func TestHashFormat(t *testing.T) {
	for _, m := range []*scram.Mechanism{scram.SHA1(), scram.SHA256()} {
		t.Run(m.Name(), func(t *testing.T) {
			h, err := m.Hash("s3cret", "", 4096)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(h, m.Name()+"$4096:"), h)
			assert.NotContains(t, h, "'")
			assert.Equal(t, 2, strings.Count(h, "$"))

			ok, err := m.Verify("s3cret", h)
			require.NoError(t, err)
			assert.True(t, ok)
			ok, err = m.Verify("wrong", h)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestHashIsDeterministicForSalt(t *testing.T) {
	m := scram.SHA256()
	salt := "c2FsdHlzYWx0eXNhbHR5"
	h1, err := m.Hash("pass", salt, 15000)
	require.NoError(t, err)
	h2, err := m.Hash("pass", salt, 15000)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)

	h3, err := m.Hash("pass", "", 15000)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3, "random salt")
}

func TestHashRejectsBadInput(t *testing.T) {
	m := scram.SHA256()
	_, err := m.Hash("", "", 4096)
	assert.Error(t, err, "empty password")
	_, err = m.Hash("pass", "", 1000)
	assert.Error(t, err, "few iterations")
	_, err = m.Hash("pass", "not base64!", 4096)
	assert.Error(t, err, "bad salt")
}

func TestVerifyMalformed(t *testing.T) {
	m := scram.SHA256()
	h, err := scram.SHA1().Hash("pass", "", 4096)
	require.NoError(t, err)
	for _, v := range []string{
		"", "plain", h, "SCRAM-SHA-256$x:c2FsdA==$a:b", "SCRAM-SHA-256$4096:c2FsdA==",
	} {
		_, err := m.Verify("pass", v)
		assert.ErrorIs(t, err, scram.ErrMalformedVerifier, "verifier %q", v)
	}
}
