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
	"strings"

	"github.com/jugadbase/jugadb/types"
	"github.com/jugadbase/jugadb/util/rand"
	"github.com/jugadbase/jugadb/util/uuid"
)

func asString(v types.Value) (string, error) {
	s, err := types.CastTo(v, types.KindText)
	if err != nil {
		return "", err
	}
	return s.S, nil
}

func text(s string) types.Value {
	return types.Value{Kind: types.KindText, S: s}
}

func stringConcat(args []types.Value) (types.Value, error) {
	if err := wantAtLeast("CONCAT", args, 1); err != nil {
		return types.Value{}, err
	}
	var b strings.Builder
	for _, a := range args {
		s, err := asString(a)
		if err != nil {
			return types.Value{}, err
		}
		b.WriteString(s)
	}
	return text(b.String()), nil
}

// stringSubstring is SUBSTRING(str, start[, length]), 1-based per the
// array-indexing convention used throughout the grammar.
func stringSubstring(args []types.Value) (types.Value, error) {
	if err := wantAtLeast("SUBSTRING", args, 2); err != nil {
		return types.Value{}, err
	}
	s, err := asString(args[0])
	if err != nil {
		return types.Value{}, err
	}
	start, err := types.CastTo(args[1], types.KindInt)
	if err != nil {
		return types.Value{}, err
	}

	runes := []rune(s)
	from := int(start.I) - 1
	if from < 0 {
		from = 0
	}
	if from > len(runes) {
		from = len(runes)
	}

	to := len(runes)
	if len(args) == 3 {
		length, err := types.CastTo(args[2], types.KindInt)
		if err != nil {
			return types.Value{}, err
		}
		to = from + int(length.I)
		if to > len(runes) {
			to = len(runes)
		}
		if to < from {
			to = from
		}
	}

	return text(string(runes[from:to])), nil
}

func stringLength(args []types.Value) (types.Value, error) {
	if err := wantArgs("LENGTH", args, 1); err != nil {
		return types.Value{}, err
	}
	s, err := asString(args[0])
	if err != nil {
		return types.Value{}, err
	}
	return types.Value{Kind: types.KindInt, I: int64(len([]rune(s)))}, nil
}

func stringLower(args []types.Value) (types.Value, error) {
	if err := wantArgs("LOWER", args, 1); err != nil {
		return types.Value{}, err
	}
	s, err := asString(args[0])
	if err != nil {
		return types.Value{}, err
	}
	return text(strings.ToLower(s)), nil
}

func stringUpper(args []types.Value) (types.Value, error) {
	if err := wantArgs("UPPER", args, 1); err != nil {
		return types.Value{}, err
	}
	s, err := asString(args[0])
	if err != nil {
		return types.Value{}, err
	}
	return text(strings.ToUpper(s)), nil
}

func stringTrim(args []types.Value) (types.Value, error) {
	if err := wantArgs("TRIM", args, 1); err != nil {
		return types.Value{}, err
	}
	s, err := asString(args[0])
	if err != nil {
		return types.Value{}, err
	}
	return text(strings.TrimSpace(s)), nil
}

func stringReplace(args []types.Value) (types.Value, error) {
	if err := wantArgs("REPLACE", args, 3); err != nil {
		return types.Value{}, err
	}
	s, err := asString(args[0])
	if err != nil {
		return types.Value{}, err
	}
	old, err := asString(args[1])
	if err != nil {
		return types.Value{}, err
	}
	new, err := asString(args[2])
	if err != nil {
		return types.Value{}, err
	}
	return text(strings.ReplaceAll(s, old, new)), nil
}

func fnCoalesce(args []types.Value) (types.Value, error) {
	if err := wantAtLeast("COALESCE", args, 1); err != nil {
		return types.Value{}, err
	}
	for _, a := range args {
		if !a.IsNull {
			return a, nil
		}
	}
	return args[len(args)-1], nil
}

func fnIfNull(args []types.Value) (types.Value, error) {
	if err := wantArgs("IFNULL", args, 2); err != nil {
		return types.Value{}, err
	}
	if args[0].IsNull {
		return args[1], nil
	}
	return args[0], nil
}

func fnGreatest(args []types.Value) (types.Value, error) {
	if err := wantAtLeast("GREATEST", args, 1); err != nil {
		return types.Value{}, err
	}
	best := args[0]
	for _, a := range args[1:] {
		if compareValues(a, best) > 0 {
			best = a
		}
	}
	return best, nil
}

func fnLeast(args []types.Value) (types.Value, error) {
	if err := wantAtLeast("LEAST", args, 1); err != nil {
		return types.Value{}, err
	}
	best := args[0]
	for _, a := range args[1:] {
		if compareValues(a, best) < 0 {
			best = a
		}
	}
	return best, nil
}

// fnUUID is UUID(), returning a fresh version-4 identifier.
func fnUUID(args []types.Value) (types.Value, error) {
	if err := wantArgs("UUID", args, 0); err != nil {
		return types.Value{}, err
	}
	return types.CastTo(text(uuid.NewV4()), types.KindUUID)
}

// fnRandomString is RANDOM_STRING(length), an alphanumeric token of the
// requested length.
func fnRandomString(args []types.Value) (types.Value, error) {
	if err := wantArgs("RANDOM_STRING", args, 1); err != nil {
		return types.Value{}, err
	}
	n, err := types.CastTo(args[0], types.KindInt)
	if err != nil {
		return types.Value{}, err
	}
	if n.I < 0 {
		return types.Value{}, fmt.Errorf("RANDOM_STRING: length must not be negative")
	}
	return text(string(rand.New(int(n.I)))), nil
}
