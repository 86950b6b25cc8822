// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postsuc

import (
	"errors"
	"time"
)

// Option is a functional option for the posts use case.
type Option func(uc *UseCase) error

// WithClock option configures a posts UseCase instance in order to
// take the created, updated, and default publish timestamps from the
// now function instead of the wall clock. This option may be passed
// to the New() function and is mostly useful in tests.
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) error {
		if now == nil {
			return errors.New("clock function is nil")
		}
		if uc.now != nil {
			return errors.New("clock is already configured")
		}
		uc.now = now
		return nil
	}
}

// wallClock returns the current UTC time, truncated to microseconds
// which is the timestamp precision of the PostgreSQL DBMS.
func wallClock() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
