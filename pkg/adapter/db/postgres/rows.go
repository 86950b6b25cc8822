// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import "database/sql"

// sqlRows lets schemarp and the schema verifiers iterate over gorm
// raw query results without importing database/sql themselves.
type sqlRows struct {
	*sql.Rows
}

// Close drops the error of (*sql.Rows).Close because the same error
// is reported by Err after the iteration.
func (r sqlRows) Close() {
	_ = r.Rows.Close()
}
