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

package eval

import (
	"fmt"
	"time"

	"github.com/jugadbase/jugadb/types"
)

// Now is swappable so tests can pin a fixed instant instead of depending
// on wall-clock time.
var Now = time.Now

func timeNow(args []types.Value) (types.Value, error) {
	if err := wantArgs("NOW", args, 0); err != nil {
		return types.Value{}, err
	}
	return types.Value{Kind: types.KindTimestampTZ, T: Now()}, nil
}

func timeDate(args []types.Value) (types.Value, error) {
	if err := wantArgs("DATE", args, 1); err != nil {
		return types.Value{}, err
	}
	return types.CastTo(args[0], types.KindDate)
}

func timeTime(args []types.Value) (types.Value, error) {
	if err := wantArgs("TIME", args, 1); err != nil {
		return types.Value{}, err
	}
	return types.CastTo(args[0], types.KindTime)
}

// timeExtract is EXTRACT(field, value) for field in
// year/month/day/hour/minute/second.
func timeExtract(args []types.Value) (types.Value, error) {
	if err := wantArgs("EXTRACT", args, 2); err != nil {
		return types.Value{}, err
	}
	field, err := asString(args[0])
	if err != nil {
		return types.Value{}, err
	}
	temporal, err := types.CastTo(args[1], types.KindTimestampTZ)
	if err != nil {
		return types.Value{}, err
	}

	t := temporal.T
	switch field {
	case "year":
		return types.Value{Kind: types.KindInt, I: int64(t.Year())}, nil
	case "month":
		return types.Value{Kind: types.KindInt, I: int64(t.Month())}, nil
	case "day":
		return types.Value{Kind: types.KindInt, I: int64(t.Day())}, nil
	case "hour":
		return types.Value{Kind: types.KindInt, I: int64(t.Hour())}, nil
	case "minute":
		return types.Value{Kind: types.KindInt, I: int64(t.Minute())}, nil
	case "second":
		return types.Value{Kind: types.KindInt, I: int64(t.Second())}, nil
	}

	return types.Value{}, fmt.Errorf("EXTRACT: unknown field %q", field)

}

func timeStrToDate(args []types.Value) (types.Value, error) {
	if err := wantArgs("STR_TO_DATE", args, 2); err != nil {
		return types.Value{}, err
	}
	s, err := asString(args[0])
	if err != nil {
		return types.Value{}, err
	}
	layout, err := asString(args[1])
	if err != nil {
		return types.Value{}, err
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return types.Value{}, fmt.Errorf("STR_TO_DATE: %w", err)
	}
	return types.Value{Kind: types.KindDatetime, T: t}, nil
}
