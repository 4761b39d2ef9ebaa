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

package parser

import (
	"strconv"
	"strings"

	"github.com/anttikivi/toml-go/token"
	"github.com/anttikivi/toml-go/value"
)

// parseDateTimeLiteral converts one of the scanner's four date/time
// lexemes into a value.DateTime, performing only the structural parse
// (field extraction); calendar/clock range validity is checked
// afterwards via value.IsValid.
func parseDateTimeLiteral(lit string, tok token.Token) (value.DateTime, error) {
	var dt value.DateTime
	rest := lit

	if tok != token.LOCAL_TIME {
		y, m, d, tail, err := takeDate(rest)
		if err != nil {
			return dt, err
		}
		dt.Year, dt.Month, dt.Day = y, m, d
		rest = tail
	}

	if tok == token.LOCAL_DATE {
		return dt, nil
	}

	if tok != token.LOCAL_TIME {
		if len(rest) == 0 || (rest[0] != 'T' && rest[0] != 't' && rest[0] != ' ') {
			return dt, strErr("expected date/time separator")
		}
		rest = rest[1:]
	}

	h, min, sec, nsec, hasNsec, tail, err := takeTime(rest)
	if err != nil {
		return dt, err
	}
	dt.Hour, dt.Min, dt.Sec, dt.Nanosecond, dt.HasNanosecond = h, min, sec, nsec, hasNsec
	rest = tail

	if tok != token.DATETIME {
		return dt, nil
	}

	if len(rest) == 0 {
		return dt, strErr("missing offset in datetime literal")
	}
	if rest[0] == 'Z' || rest[0] == 'z' {
		dt.HasOffset = true
		dt.OffsetMinutes = 0
		return dt, nil
	}
	sign := 1
	switch rest[0] {
	case '+':
	case '-':
		sign = -1
	default:
		return dt, strErr("malformed offset in datetime literal")
	}
	rest = rest[1:]
	if len(rest) != 5 || rest[2] != ':' {
		return dt, strErr("malformed offset in datetime literal")
	}
	oh, err1 := strconv.Atoi(rest[0:2])
	om, err2 := strconv.Atoi(rest[3:5])
	if err1 != nil || err2 != nil {
		return dt, strErr("malformed offset in datetime literal")
	}
	dt.HasOffset = true
	dt.OffsetMinutes = sign * (oh*60 + om)
	return dt, nil
}

func takeDate(s string) (year, month, day int, rest string, err error) {
	if len(s) < 10 || s[4] != '-' || s[7] != '-' {
		return 0, 0, 0, s, strErr("malformed date")
	}
	year, e1 := strconv.Atoi(s[0:4])
	month, e2 := strconv.Atoi(s[5:7])
	day, e3 := strconv.Atoi(s[8:10])
	if e1 != nil || e2 != nil || e3 != nil {
		return 0, 0, 0, s, strErr("malformed date")
	}
	return year, month, day, s[10:], nil
}

func takeTime(s string) (hour, min, sec, nsec int, hasNsec bool, rest string, err error) {
	if len(s) < 8 || s[2] != ':' || s[5] != ':' {
		return 0, 0, 0, 0, false, s, strErr("malformed time")
	}
	hour, e1 := strconv.Atoi(s[0:2])
	min, e2 := strconv.Atoi(s[3:5])
	sec, e3 := strconv.Atoi(s[6:8])
	if e1 != nil || e2 != nil || e3 != nil {
		return 0, 0, 0, 0, false, s, strErr("malformed time")
	}
	rest = s[8:]
	if len(rest) > 0 && rest[0] == '.' {
		j := 1
		for j < len(rest) && rest[j] >= '0' && rest[j] <= '9' {
			j++
		}
		frac := rest[1:j]
		if frac == "" {
			return 0, 0, 0, 0, false, s, strErr("malformed fractional seconds")
		}
		padded := (frac + strings.Repeat("0", 9))[:9]
		n, _ := strconv.Atoi(padded)
		nsec = n
		hasNsec = true
		rest = rest[j:]
	}
	return hour, min, sec, nsec, hasNsec, rest, nil
}
