// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package scram implements the SCRAM-SHA-256 and SCRAM-SHA-1 password
// verifiers which PostgreSQL stores for its roles, using the
// github.com/xdg-go/scram module. A Mechanism satisfies the
// github.com/momeni/mysite/pkg/core/scram.Hasher interface.
package scram

import (
	"crypto/hmac"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xdg-go/scram"
)

// MinIterations is the least PBKDF2 rounds count which is accepted by
// the Hash method.
const MinIterations = 4096

// ErrMalformedVerifier indicates that a verifier string does not
// follow the SCRAM verifier format or belongs to another mechanism.
var ErrMalformedVerifier = errors.New("malformed SCRAM verifier")

// Mechanism is a SCRAM implementation with a fixed hash function.
type Mechanism struct {
	gen     scram.HashGeneratorFcn
	saltLen int // bytes
	name    string
}

// SHA1 returns the SCRAM-SHA-1 mechanism.
func SHA1() *Mechanism {
	return &Mechanism{gen: scram.SHA1, saltLen: 20, name: "SCRAM-SHA-1"}
}

// SHA256 returns the SCRAM-SHA-256 mechanism, as used by PostgreSQL
// when password_encryption is scram-sha-256.
func SHA256() *Mechanism {
	return &Mechanism{gen: scram.SHA256, saltLen: 32, name: "SCRAM-SHA-256"}
}

// Name returns the mechanism name, like SCRAM-SHA-256.
func (m *Mechanism) Name() string {
	return m.name
}

// Hash computes the verifier of pass as described by the Hasher
// interface. The output only contains printable ASCII letters without
// quotes, so it may be embedded in a DDL statement literal.
func (m *Mechanism) Hash(pass, salt string, iters int) (string, error) {
	if pass == "" {
		return "", errors.New("password must be non-empty")
	}
	if iters < MinIterations {
		return "", fmt.Errorf(
			"iterations count %d is less than %d", iters, MinIterations,
		)
	}
	if salt == "" {
		b := make([]byte, m.saltLen)
		if _, err := rand.Read(b); err != nil {
			return "", fmt.Errorf("generating salt: %w", err)
		}
		salt = base64.StdEncoding.EncodeToString(b)
	}
	sc, err := m.credentials(pass, salt, iters)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(
		"%s$%d:%s$%s:%s", m.name, iters, salt,
		base64.StdEncoding.EncodeToString(sc.StoredKey),
		base64.StdEncoding.EncodeToString(sc.ServerKey),
	), nil
}

// Verify reports if pass matches the given verifier string which must
// be produced by the same mechanism (e.g., by its Hash method or read
// from the pg_authid catalog).
func (m *Mechanism) Verify(pass, verifier string) (bool, error) {
	name, rest, ok := strings.Cut(verifier, "$")
	if !ok || name != m.name {
		return false, ErrMalformedVerifier
	}
	params, keys, ok := strings.Cut(rest, "$")
	if !ok {
		return false, ErrMalformedVerifier
	}
	itersStr, salt, ok := strings.Cut(params, ":")
	if !ok {
		return false, ErrMalformedVerifier
	}
	iters, err := strconv.Atoi(itersStr)
	if err != nil {
		return false, fmt.Errorf("%w: iterations: %w", ErrMalformedVerifier, err)
	}
	storedKey, _, ok := strings.Cut(keys, ":")
	if !ok {
		return false, ErrMalformedVerifier
	}
	want, err := base64.StdEncoding.DecodeString(storedKey)
	if err != nil {
		return false, fmt.Errorf("%w: stored key: %w", ErrMalformedVerifier, err)
	}
	sc, err := m.credentials(pass, salt, iters)
	if err != nil {
		return false, err
	}
	return hmac.Equal(sc.StoredKey, want), nil
}

func (m *Mechanism) credentials(
	pass, salt string, iters int,
) (scram.StoredCredentials, error) {
	// Username and authzID do not contribute to the derived keys.
	c, err := m.gen.NewClient("mysite", pass, "")
	if err != nil {
		return scram.StoredCredentials{}, fmt.Errorf("SASLprep of password: %w", err)
	}
	b, err := base64.StdEncoding.DecodeString(salt)
	if err != nil {
		return scram.StoredCredentials{}, fmt.Errorf("decoding salt: %w", err)
	}
	return c.GetStoredCredentials(scram.KeyFactors{
		Salt:  string(b),
		Iters: iters,
	}), nil
}
