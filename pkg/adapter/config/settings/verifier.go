// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settings

import (
	"cmp"
	"fmt"
)

// Range is the inclusive [Min, Max] interval of acceptable values of
// a numeric setting.
type Range[T cmp.Ordered] struct {
	Min, Max T
}

// OutOfRangeError reports the Name setting which has a Value out of
// its Range.
type OutOfRangeError[T cmp.Ordered] struct {
	Name  string
	Value T
	Range Range[T]
}

func (e *OutOfRangeError[T]) Error() string {
	return fmt.Sprintf(
		"%s (%v) must be in [%v, %v]",
		e.Name, e.Value, e.Range.Min, e.Range.Max,
	)
}

// Check returns an *OutOfRangeError if the `name` setting is not in
// the `r` range. A nil v is accepted, so Check may be called before
// or after filling the defaults.
func (r Range[T]) Check(name string, v *T) error {
	if v == nil || (*v >= r.Min && *v <= r.Max) {
		return nil
	}
	return &OutOfRangeError[T]{Name: name, Value: *v, Range: r}
}
