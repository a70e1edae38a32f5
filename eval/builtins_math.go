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
	"math"
	"math/rand"

	"github.com/jugadbase/jugadb/types"
)

func asDouble(v types.Value) (float64, error) {
	d, err := types.CastTo(v, types.KindDouble)
	if err != nil {
		return 0, err
	}
	return d.F64, nil
}

func double(f float64) types.Value {
	return types.Value{Kind: types.KindDouble, F64: f}
}

func mathAbs(args []types.Value) (types.Value, error) {
	if err := wantArgs("ABS", args, 1); err != nil {
		return types.Value{}, err
	}
	f, err := asDouble(args[0])
	if err != nil {
		return types.Value{}, err
	}
	return double(math.Abs(f)), nil
}

func mathRound(args []types.Value) (types.Value, error) {
	if err := wantArgs("ROUND", args, 1); err != nil {
		return types.Value{}, err
	}
	f, err := asDouble(args[0])
	if err != nil {
		return types.Value{}, err
	}
	return double(math.Round(f)), nil
}

func mathFloor(args []types.Value) (types.Value, error) {
	if err := wantArgs("FLOOR", args, 1); err != nil {
		return types.Value{}, err
	}
	f, err := asDouble(args[0])
	if err != nil {
		return types.Value{}, err
	}
	return double(math.Floor(f)), nil
}

func mathCeil(args []types.Value) (types.Value, error) {
	if err := wantArgs("CEILING", args, 1); err != nil {
		return types.Value{}, err
	}
	f, err := asDouble(args[0])
	if err != nil {
		return types.Value{}, err
	}
	return double(math.Ceil(f)), nil
}

func mathPi(args []types.Value) (types.Value, error) {
	if err := wantArgs("PI", args, 0); err != nil {
		return types.Value{}, err
	}
	return double(math.Pi), nil
}

func mathDegrees(args []types.Value) (types.Value, error) {
	if err := wantArgs("DEGREES", args, 1); err != nil {
		return types.Value{}, err
	}
	f, err := asDouble(args[0])
	if err != nil {
		return types.Value{}, err
	}
	return double(f * 180 / math.Pi), nil
}

func mathRadians(args []types.Value) (types.Value, error) {
	if err := wantArgs("RADIANS", args, 1); err != nil {
		return types.Value{}, err
	}
	f, err := asDouble(args[0])
	if err != nil {
		return types.Value{}, err
	}
	return double(f * math.Pi / 180), nil
}

func mathSin(args []types.Value) (types.Value, error) {
	if err := wantArgs("SIN", args, 1); err != nil {
		return types.Value{}, err
	}
	f, err := asDouble(args[0])
	if err != nil {
		return types.Value{}, err
	}
	return double(math.Sin(f)), nil
}

func mathCos(args []types.Value) (types.Value, error) {
	if err := wantArgs("COS", args, 1); err != nil {
		return types.Value{}, err
	}
	f, err := asDouble(args[0])
	if err != nil {
		return types.Value{}, err
	}
	return double(math.Cos(f)), nil
}

func mathTan(args []types.Value) (types.Value, error) {
	if err := wantArgs("TAN", args, 1); err != nil {
		return types.Value{}, err
	}
	f, err := asDouble(args[0])
	if err != nil {
		return types.Value{}, err
	}
	return double(math.Tan(f)), nil
}

// mathLog is LOG(x) (natural log) or LOG(x, base).
func mathLog(args []types.Value) (types.Value, error) {
	if err := wantAtLeast("LOG", args, 1); err != nil {
		return types.Value{}, err
	}
	x, err := asDouble(args[0])
	if err != nil {
		return types.Value{}, err
	}
	if len(args) == 1 {
		return double(math.Log(x)), nil
	}
	base, err := asDouble(args[1])
	if err != nil {
		return types.Value{}, err
	}
	return double(math.Log(x) / math.Log(base)), nil
}

func mathPow(args []types.Value) (types.Value, error) {
	if err := wantArgs("POW", args, 2); err != nil {
		return types.Value{}, err
	}
	base, err := asDouble(args[0])
	if err != nil {
		return types.Value{}, err
	}
	exp, err := asDouble(args[1])
	if err != nil {
		return types.Value{}, err
	}
	return double(math.Pow(base, exp)), nil
}

func mathRand(args []types.Value) (types.Value, error) {
	if err := wantArgs("RAND", args, 0); err != nil {
		return types.Value{}, err
	}
	return double(rand.Float64()), nil
}
