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
	stats "github.com/jugadbase/jugadb/util/math"
)

// Aggregator accumulates one group's worth of input for a single
// aggregate function call (COUNT/SUM/AVG/MIN/MAX/MEDIAN/MODE).
type Aggregator struct {
	name  string
	count int64
	sum   float64
	min   *types.Value
	max   *types.Value

	// samples holds every numeric input for the aggregates (MEDIAN, MODE)
	// that need the whole distribution rather than a running total.
	samples []float64
}

// NewAggregator builds an accumulator for the named aggregate function.
func NewAggregator(name string) (*Aggregator, error) {
	switch strings.ToUpper(name) {
	case "COUNT", "SUM", "AVG", "MIN", "MAX", "MEDIAN", "MODE":
		return &Aggregator{name: strings.ToUpper(name)}, nil
	}
	return nil, fmt.Errorf("unknown aggregate function %s", name)
}

// AddStar feeds one row into a COUNT(*) accumulator, which counts every
// row regardless of NULLs.
func (a *Aggregator) AddStar() {
	a.count++
}

// Add feeds one row's value into the accumulator. A NULL value is
// excluded from every aggregate, including COUNT(column); use AddStar for
// COUNT(*).
func (a *Aggregator) Add(v types.Value) {

	if v.IsNull {
		return
	}

	a.count++

	if a.name == "SUM" || a.name == "AVG" {
		if f, err := asDouble(v); err == nil {
			a.sum += f
		}
	}

	if a.name == "MIN" {
		if a.min == nil || compareValues(v, *a.min) < 0 {
			cp := v
			a.min = &cp
		}
	}

	if a.name == "MAX" {
		if a.max == nil || compareValues(v, *a.max) > 0 {
			cp := v
			a.max = &cp
		}
	}

	if a.name == "MEDIAN" || a.name == "MODE" {
		if f, err := asDouble(v); err == nil {
			a.samples = append(a.samples, f)
		}
	}

}

// Result returns the accumulated value.
func (a *Aggregator) Result() types.Value {
	switch a.name {
	case "COUNT":
		return types.Value{Kind: types.KindInt, I: a.count}
	case "SUM":
		return double(a.sum)
	case "AVG":
		if a.count == 0 {
			return types.Null(types.KindDouble)
		}
		return double(a.sum / float64(a.count))
	case "MIN":
		if a.min == nil {
			return types.Null(types.KindNull)
		}
		return *a.min
	case "MAX":
		if a.max == nil {
			return types.Null(types.KindNull)
		}
		return *a.max
	case "MEDIAN":
		if len(a.samples) == 0 {
			return types.Null(types.KindDouble)
		}
		return double(stats.Median(a.samples))
	case "MODE":
		modes := stats.Mode(a.samples)
		if len(modes) == 0 {
			return types.Null(types.KindDouble)
		}
		return double(modes[0])
	}
	return types.Null(types.KindNull)
}
