// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settings

import (
	"log/slog"
	"strings"
	"time"
)

// Duration is a time.Duration which is read from YAML files in the
// time.ParseDuration format (like 1m30s) and is written back without
// its zero trailing units (like 2h instead of 2h0m0s).
type Duration time.Duration

func (d *Duration) UnmarshalText(data []byte) error {
	parsed, err := time.ParseDuration(string(data))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// String drops the zero trailing units, so 2h0m0s becomes 2h and 1m0s
// becomes 1m. A zero duration is written as 0s.
func (d Duration) String() string {
	s := time.Duration(d).String()
	s, trimmed := strings.CutSuffix(s, "m0s")
	if !trimmed {
		return s
	}
	s += "m"
	if h, ok := strings.CutSuffix(s, "h0m"); ok {
		return h + "h"
	}
	return s
}

// LogValue implements slog.LogValuer.
func (d *Duration) LogValue() slog.Value {
	if d == nil {
		return slog.StringValue("nil-duration")
	}
	return slog.DurationValue(time.Duration(*d))
}
