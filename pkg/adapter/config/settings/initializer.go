// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package settings provides the generic helpers which are used by the
// config package for defaulting and bounding the optional settings,
// and the Duration type for human-readable time durations.
package settings

// Nil2Zero makes a nil (*t) point to a zero T value. A non-nil (*t)
// is kept as is.
func Nil2Zero[T any](t **T) {
	if (*t) != nil {
		return
	}
	var zero T
	(*t) = &zero
}

// OverwriteNil makes a nil (*dst) point to a copy of the *src default
// value. A non-nil (*dst) or a nil src leaves (*dst) unchanged.
func OverwriteNil[T any](dst **T, src *T) {
	if (*dst) != nil || src == nil {
		return
	}
	t := *src
	(*dst) = &t
}
