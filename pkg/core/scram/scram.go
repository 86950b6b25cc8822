// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package scram declares what the use cases layer expects from a
// Salted Challenge Response Authentication Mechanism (SCRAM, see RFC
// 5802 and RFC 7677). The setupuc package only needs to turn database
// role passwords into SCRAM verifiers, so ALTER ROLE statements never
// carry a plaintext password (and logging them is harmless).
// The conversation parts of SCRAM are handled by PostgreSQL and its
// driver, so they are not represented here. The implementation lives
// in the adapter layer.
package scram

// Hasher computes SCRAM verifiers for a fixed underlying hash function
// (such as SHA-256). Username and authorization identity do not affect
// the stored and server keys, so they are not asked.
type Hasher interface {
	// Hash normalizes the non-empty pass with SASLprep and derives its
	// keys using PBKDF2 with iters rounds (at least 4096) and the
	// base64 encoded salt. An empty salt asks for a random one.
	// The result follows the PostgreSQL verifier format:
	//
	//	SCRAM-{SHA-X}${iters}:{b64-salt}${b64-storedKey}:{b64-serverKey}
	Hash(pass, salt string, iters int) (string, error)
}
