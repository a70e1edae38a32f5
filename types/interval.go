// Copyright © 2016 Abcum Ltd
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

package types

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseInterval parses either an ISO-8601 interval ("P1Y2M3D") when the
// input starts with 'P', or the human form ("3 days 4 hours") otherwise.
func ParseInterval(s string) (Interval, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Interval{}, fmt.Errorf("empty interval")
	}
	if strings.HasPrefix(s, "P") {
		return parseISOInterval(s)
	}
	return parseHumanInterval(s)
}

func parseISOInterval(s string) (Interval, error) {

	var iv Interval
	num := strings.Builder{}
	inTime := false

	for _, r := range s[1:] {
		switch {
		case r == 'T':
			inTime = true
		case r >= '0' && r <= '9':
			num.WriteRune(r)
		case r == 'Y':
			n, err := atoi(num.String())
			if err != nil {
				return iv, err
			}
			iv.Months += n * 12
			num.Reset()
		case r == 'M' && !inTime:
			n, err := atoi(num.String())
			if err != nil {
				return iv, err
			}
			iv.Months += n
			num.Reset()
		case r == 'D':
			n, err := atoi(num.String())
			if err != nil {
				return iv, err
			}
			iv.Days += n
			num.Reset()
		case r == 'H':
			n, err := atoi(num.String())
			if err != nil {
				return iv, err
			}
			iv.Micros += n * 3600 * 1000000
			num.Reset()
		case r == 'M' && inTime:
			n, err := atoi(num.String())
			if err != nil {
				return iv, err
			}
			iv.Micros += n * 60 * 1000000
			num.Reset()
		case r == 'S':
			n, err := atoi(num.String())
			if err != nil {
				return iv, err
			}
			iv.Micros += n * 1000000
			num.Reset()
		default:
			return iv, fmt.Errorf("invalid ISO-8601 interval %q", s)
		}
	}

	return iv, nil

}

func parseHumanInterval(s string) (Interval, error) {

	var iv Interval
	fields := strings.Fields(s)

	for i := 0; i+1 < len(fields)+1 && i < len(fields); i += 2 {
		if i+1 >= len(fields) {
			return iv, fmt.Errorf("invalid interval %q", s)
		}
		n, err := atoi(fields[i])
		if err != nil {
			return iv, fmt.Errorf("invalid interval quantity %q", fields[i])
		}
		unit := strings.ToLower(strings.TrimSuffix(fields[i+1], "s"))
		switch unit {
		case "month":
			iv.Months += n
		case "year":
			iv.Months += n * 12
		case "day":
			iv.Days += n
		case "week":
			iv.Days += n * 7
		case "hour":
			iv.Micros += n * 3600 * 1000000
		case "minute", "min":
			iv.Micros += n * 60 * 1000000
		case "second", "sec":
			iv.Micros += n * 1000000
		default:
			return iv, fmt.Errorf("unknown interval unit %q", unit)
		}
	}

	return iv, nil

}

func atoi(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

// IntervalToString renders months/days/micros in the human form.
func IntervalToString(iv Interval) string {
	var parts []string
	if iv.Months != 0 {
		parts = append(parts, fmt.Sprintf("%d months", iv.Months))
	}
	if iv.Days != 0 {
		parts = append(parts, fmt.Sprintf("%d days", iv.Days))
	}
	if iv.Micros != 0 {
		parts = append(parts, fmt.Sprintf("%d seconds", iv.Micros/1000000))
	}
	if len(parts) == 0 {
		return "0 seconds"
	}
	return strings.Join(parts, " ")
}
