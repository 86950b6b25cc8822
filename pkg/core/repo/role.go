// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

// Role names the database user which a connection pool logs in as.
// Its password is read from the pass file which the database
// settings associate with that role.
type Role string

const (
	// AdminRole is the superuser which must be created manually.
	// The init-prod and init-dev commands use it to create the schema
	// and NormalRole, and to rotate the NormalRole password.
	AdminRole Role = "admin"

	// NormalRole owns the blog and catalog tables. It runs the
	// migrations and serves the web requests.
	NormalRole Role = "mysite"
)
