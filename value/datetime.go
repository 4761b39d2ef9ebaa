// Copyright 2024 The toml-go Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package value

// IsValidDate reports whether year/month/day form a structurally valid
// Gregorian calendar date, per spec.md §3.1: month in [1,12], day within
// the month's length, with the usual leap-year rule for February.
func IsValidDate(year, month, day int) bool {
	if month < 1 || month > 12 {
		return false
	}
	if day < 1 {
		return false
	}
	return day <= daysInMonth(year, month)
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func daysInMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if isLeapYear(year) {
			return 29
		}
		return 28
	default:
		return 0
	}
}

// IsValidTime reports whether hour/min/sec/nanosecond form a structurally
// valid time of day, per spec.md §3.1: hour in [0,23], minute in [0,59],
// second in [0,59] with the leap-second exception of 60 allowed only on 30
// June or 31 December (checked by the caller, since that requires the
// date), and nanoseconds in [0, 999999999].
//
// allowLeapSecond lets the caller indicate that the date half of a
// datetime is 30 June or 31 December, the only dates TOML (and RFC 3339)
// permit a 60-value seconds field on.
func IsValidTime(hour, min, sec, nanosecond int, allowLeapSecond bool) bool {
	if hour < 0 || hour > 23 {
		return false
	}
	if min < 0 || min > 59 {
		return false
	}
	maxSec := 59
	if allowLeapSecond {
		maxSec = 60
	}
	if sec < 0 || sec > maxSec {
		return false
	}
	if nanosecond < 0 || nanosecond > 999_999_999 {
		return false
	}
	return true
}

// IsValidOffset reports whether an offset in minutes east of UTC is
// structurally valid: within [-1440, +1440] and decomposing into a valid
// hh:mm pair, per spec.md §3.1.
func IsValidOffset(minutes int) bool {
	if minutes < -1440 || minutes > 1440 {
		return false
	}
	abs := minutes
	if abs < 0 {
		abs = -abs
	}
	hh := abs / 60
	mm := abs % 60
	return hh <= 24 && mm <= 59
}

// IsValid reports whether dt is structurally valid for the given Kind,
// combining IsValidDate, IsValidTime, and IsValidOffset as applicable.
func IsValid(kind Kind, dt DateTime) bool {
	leapSecondOK := dt.Month == 6 && dt.Day == 30 || dt.Month == 12 && dt.Day == 31
	switch kind {
	case LocalDate:
		return IsValidDate(dt.Year, dt.Month, dt.Day)
	case LocalTime:
		return IsValidTime(dt.Hour, dt.Min, dt.Sec, dt.Nanosecond, true)
	case LocalDatetime:
		return IsValidDate(dt.Year, dt.Month, dt.Day) &&
			IsValidTime(dt.Hour, dt.Min, dt.Sec, dt.Nanosecond, leapSecondOK)
	case Datetime:
		return IsValidDate(dt.Year, dt.Month, dt.Day) &&
			IsValidTime(dt.Hour, dt.Min, dt.Sec, dt.Nanosecond, leapSecondOK) &&
			(!dt.HasOffset || IsValidOffset(dt.OffsetMinutes))
	default:
		return false
	}
}
