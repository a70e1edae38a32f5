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

// Package eval implements expression evaluation over a row: the scalar
// built-in function registry, LIKE pattern matching, aggregate
// accumulators, and the expression walker the executor calls into.
package eval

import (
	"fmt"
	"strings"

	"github.com/jugadbase/jugadb/types"
)

// Run dispatches a scalar function call by name, mirroring the fncs.Run
// single-entry-point idiom: every built-in is a plain func(args) here
// rather than a registered map, since the closed set of names is fixed by
// the grammar and a switch keeps argument-count mismatches as compile-time
// visible case bodies instead of runtime reflection.
func Run(name string, args []types.Value) (types.Value, error) {

	switch strings.ToUpper(name) {

	case "ABS":
		return mathAbs(args)
	case "ROUND":
		return mathRound(args)
	case "FLOOR":
		return mathFloor(args)
	case "CEILING", "CEIL":
		return mathCeil(args)
	case "PI":
		return mathPi(args)
	case "DEGREES":
		return mathDegrees(args)
	case "RADIANS":
		return mathRadians(args)
	case "SIN":
		return mathSin(args)
	case "COS":
		return mathCos(args)
	case "TAN":
		return mathTan(args)
	case "LOG":
		return mathLog(args)
	case "POW", "POWER":
		return mathPow(args)
	case "RAND":
		return mathRand(args)

	case "NOW":
		return timeNow(args)
	case "DATE":
		return timeDate(args)
	case "TIME":
		return timeTime(args)
	case "EXTRACT":
		return timeExtract(args)
	case "STR_TO_DATE":
		return timeStrToDate(args)

	case "CONCAT":
		return stringConcat(args)
	case "SUBSTRING":
		return stringSubstring(args)
	case "LENGTH":
		return stringLength(args)
	case "LOWER":
		return stringLower(args)
	case "UPPER":
		return stringUpper(args)
	case "TRIM":
		return stringTrim(args)
	case "REPLACE":
		return stringReplace(args)

	case "COALESCE":
		return fnCoalesce(args)
	case "IFNULL":
		return fnIfNull(args)
	case "GREATEST":
		return fnGreatest(args)
	case "LEAST":
		return fnLeast(args)

	case "UUID":
		return fnUUID(args)
	case "RANDOM_STRING":
		return fnRandomString(args)
	}

	return types.Value{}, fmt.Errorf("unknown function %s", name)

}

func wantArgs(name string, args []types.Value, n int) error {
	if len(args) != n {
		return fmt.Errorf("%s: expected %d argument(s), got %d", name, n, len(args))
	}
	return nil
}

func wantAtLeast(name string, args []types.Value, n int) error {
	if len(args) < n {
		return fmt.Errorf("%s: expected at least %d argument(s), got %d", name, n, len(args))
	}
	return nil
}
