// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"fmt"
	"time"
)

// Date is a calendar day. Posts are routed and kept unique by the
// calendar day of their publish timestamp, evaluated in UTC.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateError indicates that year, month, and day do not form an
// existing calendar day (e.g., February 30th).
type DateError Date

// Error implements the error interface, returning a string
// representation of the DateError.
func (e DateError) Error() string {
	return fmt.Sprintf(
		"invalid calendar date: %04d-%02d-%02d", e.Year, e.Month, e.Day,
	)
}

// NewDate returns the Date for the given components or a DateError if
// they do not name a real calendar day. Years are limited to 1..9999.
func NewDate(year int, month time.Month, day int) (Date, error) {
	d := Date{Year: year, Month: month, Day: day}
	if year < 1 || year > 9999 || month < time.January || month > time.December {
		return Date{}, DateError(d)
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || t.Month() != month {
		return Date{}, DateError(d)
	}
	return d, nil
}

// DateOf returns the UTC calendar day of t.
func DateOf(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return Date{Year: y, Month: m, Day: d}
}

// Bounds returns the half-open [start, end) range of instants which
// fall on this calendar day in UTC.
func (d Date) Bounds() (start, end time.Time) {
	start = time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

// Contains reports if t falls on this calendar day.
func (d Date) Contains(t time.Time) bool {
	return DateOf(t) == d
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}
