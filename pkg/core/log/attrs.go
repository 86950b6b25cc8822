// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package log

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// Err logs the err message under key, or "<nil>" for a nil err.
func Err(key string, err error) slog.Attr {
	msg := "<nil>"
	if err != nil {
		msg = err.Error()
	}
	return slog.String(key, msg)
}

// UUID returns an Attr for the given UUID value in its canonical
// textual form.
func UUID(key string, value uuid.UUID) slog.Attr {
	return slog.String(key, value.String())
}

// Stringer returns an Attr for a value which is logged by its String
// method, such as a model.Date or model.PostStatus.
func Stringer(key string, value fmt.Stringer) slog.Attr {
	return slog.String(key, value.String())
}
