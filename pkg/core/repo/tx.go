// Copyright (c) 2023 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

// Tx is a unit of work which is committed or rolled back as a whole.
// A Tx may not be shared by goroutines. The PostgreSQL adapter runs
// it with the READ COMMITTED isolation level, so the post and tags
// updates of one transaction become visible together. The memory
// adapter mutates a private copy of the data and swaps it in on
// commit, serializing the writers.
type Tx interface {
	// IsTx keeps a Conn from satisfying Tx accidentally.
	IsTx()
}
