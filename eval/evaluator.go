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
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jugadbase/jugadb/jql"
	"github.com/jugadbase/jugadb/storage"
	"github.com/jugadbase/jugadb/types"
)

// IsAggregate reports whether name is one of the aggregate functions the
// executor must extract and accumulate across a group, rather than
// evaluate per-row through Eval.
func IsAggregate(name string) bool {
	switch strings.ToUpper(name) {
	case "COUNT", "SUM", "AVG", "MIN", "MAX", "MEDIAN", "MODE":
		return true
	}
	return false
}

// Eval walks expr against one row, resolving Column references against
// schema's column order.
func Eval(expr jql.Expr, row *storage.Row, schema *storage.TableSchema) (types.Value, error) {

	switch e := expr.(type) {

	case *jql.Literal:
		return literalValue(e), nil

	case *jql.Column:
		idx := schema.ColumnIndex(e.Name)
		if idx < 0 {
			return types.Value{}, fmt.Errorf("unknown column %q", e.Name)
		}
		return row.Values[idx], nil

	case *jql.ArrayIndex:
		col, err := Eval(e.Column, row, schema)
		if err != nil {
			return types.Value{}, err
		}
		idxVal, err := Eval(e.Index, row, schema)
		if err != nil {
			return types.Value{}, err
		}
		idxInt, err := types.CastTo(idxVal, types.KindInt)
		if err != nil {
			return types.Value{}, err
		}
		return arrayIndex(col, int(idxInt.I))

	case *jql.ArrayLiteral:
		elems := make([]types.Value, 0, len(e.Elems))
		for _, x := range e.Elems {
			v, err := Eval(x, row, schema)
			if err != nil {
				return types.Value{}, err
			}
			elems = append(elems, v)
		}
		return types.Value{Kind: types.KindArray, IsArray: true, Elems: elems}, nil

	case *jql.UnaryOp:
		rhs, err := Eval(e.Rhs, row, schema)
		if err != nil {
			return types.Value{}, err
		}
		return evalUnary(e.Op, rhs)

	case *jql.BinaryOp:
		return evalBinary(e, row, schema)

	case *jql.Between:
		lhs, err := Eval(e.Lhs, row, schema)
		if err != nil {
			return types.Value{}, err
		}
		lo, err := Eval(e.Lo, row, schema)
		if err != nil {
			return types.Value{}, err
		}
		hi, err := Eval(e.Hi, row, schema)
		if err != nil {
			return types.Value{}, err
		}
		loCmp, err := compareAligned(lhs, lo)
		if err != nil {
			return types.Value{}, err
		}
		hiCmp, err := compareAligned(lhs, hi)
		if err != nil {
			return types.Value{}, err
		}
		return boolValue(loCmp >= 0 && hiCmp <= 0), nil

	case *jql.In:
		lhs, err := Eval(e.Lhs, row, schema)
		if err != nil {
			return types.Value{}, err
		}
		for _, item := range e.List {
			v, err := Eval(item, row, schema)
			if err != nil {
				return types.Value{}, err
			}
			c, err := compareAligned(lhs, v)
			if err != nil {
				return types.Value{}, err
			}
			if c == 0 {
				return boolValue(true), nil
			}
		}
		return boolValue(false), nil

	case *jql.IsNull:
		lhs, err := Eval(e.Lhs, row, schema)
		if err != nil {
			return types.Value{}, err
		}
		isNull := lhs.IsNull
		if e.Not {
			isNull = !isNull
		}
		return boolValue(isNull), nil

	case *jql.Like:
		lhs, err := Eval(e.Lhs, row, schema)
		if err != nil {
			return types.Value{}, err
		}
		patternVal, err := Eval(e.Pattern, row, schema)
		if err != nil {
			return types.Value{}, err
		}
		s, err := asString(lhs)
		if err != nil {
			return types.Value{}, err
		}
		p, err := asString(patternVal)
		if err != nil {
			return types.Value{}, err
		}
		return boolValue(Like(s, p)), nil

	case *jql.FunctionCall:
		if IsAggregate(e.Name) {
			return types.Value{}, fmt.Errorf("aggregate function %s used outside of an aggregate context", e.Name)
		}
		args := make([]types.Value, 0, len(e.Args))
		for _, a := range e.Args {
			v, err := Eval(a, row, schema)
			if err != nil {
				return types.Value{}, err
			}
			args = append(args, v)
		}
		return Run(e.Name, args)

	case *jql.Cast:
		v, err := Eval(e.Value, row, schema)
		if err != nil {
			return types.Value{}, err
		}
		target, err := storage.KindFromTypeToken(e.Type)
		if err != nil {
			return types.Value{}, err
		}
		return types.CastTo(v, target)

	}

	return types.Value{}, fmt.Errorf("cannot evaluate expression of type %T", expr)

}

func literalValue(lit *jql.Literal) types.Value {
	switch lit.Tok {
	case jql.NULL:
		return types.Null(types.KindNull)
	case jql.L_UINT:
		return types.Value{Kind: types.KindUint, U: lit.Val.(uint64)}
	case jql.L_FLOAT:
		return types.Value{Kind: types.KindFloat, F32: lit.Val.(float32)}
	case jql.L_DOUBLE:
		return types.Value{Kind: types.KindDouble, F64: lit.Val.(float64)}
	case jql.L_STRING:
		return types.Value{Kind: types.KindString, S: lit.Val.(string)}
	case jql.L_BOOL:
		return types.Value{Kind: types.KindBool, B: lit.Val.(bool)}
	}
	return types.Null(types.KindNull)
}

func boolValue(b bool) types.Value {
	return types.Value{Kind: types.KindBool, B: b}
}

// arrayIndex resolves a 1-based array access; index 0 and out-of-range
// indices are invalid per the grammar's indexing convention.
func arrayIndex(v types.Value, idx int) (types.Value, error) {
	if !v.IsArray {
		return types.Value{}, fmt.Errorf("cannot index a non-array value")
	}
	if idx < 1 || idx > len(v.Elems) {
		return types.Value{}, fmt.Errorf("array index %d out of range [1,%d]", idx, len(v.Elems))
	}
	return v.Elems[idx-1], nil
}

func evalUnary(op jql.Token, rhs types.Value) (types.Value, error) {
	switch op {
	case jql.SUB:
		switch rhs.Kind {
		case types.KindInt:
			return types.Value{Kind: types.KindInt, I: -rhs.I}, nil
		case types.KindFloat:
			return types.Value{Kind: types.KindFloat, F32: -rhs.F32}, nil
		case types.KindDouble:
			return types.Value{Kind: types.KindDouble, F64: -rhs.F64}, nil
		case types.KindUint:
			return types.Value{Kind: types.KindInt, I: -int64(rhs.U)}, nil
		}
		return types.Value{}, fmt.Errorf("cannot negate a %s value", rhs.Kind)
	case jql.NOT:
		b, err := types.CastTo(rhs, types.KindBool)
		if err != nil {
			return types.Value{}, err
		}
		return boolValue(!b.B), nil
	}
	return types.Value{}, fmt.Errorf("unsupported unary operator %s", op)
}

func evalBinary(e *jql.BinaryOp, row *storage.Row, schema *storage.TableSchema) (types.Value, error) {

	if e.Op == jql.AND || e.Op == jql.OR {
		lhs, err := Eval(e.Lhs, row, schema)
		if err != nil {
			return types.Value{}, err
		}
		lb, err := types.CastTo(lhs, types.KindBool)
		if err != nil {
			return types.Value{}, err
		}
		if e.Op == jql.AND && !lb.B {
			return boolValue(false), nil
		}
		if e.Op == jql.OR && lb.B {
			return boolValue(true), nil
		}
		rhs, err := Eval(e.Rhs, row, schema)
		if err != nil {
			return types.Value{}, err
		}
		rb, err := types.CastTo(rhs, types.KindBool)
		if err != nil {
			return types.Value{}, err
		}
		return boolValue(rb.B), nil
	}

	lhs, err := Eval(e.Lhs, row, schema)
	if err != nil {
		return types.Value{}, err
	}
	rhs, err := Eval(e.Rhs, row, schema)
	if err != nil {
		return types.Value{}, err
	}

	switch e.Op {
	case jql.EQ, jql.NEQ, jql.LT, jql.LTE, jql.GT, jql.GTE:
		if lhs.IsNull || rhs.IsNull {
			return types.Null(types.KindBool), nil
		}
		c, err := compareAligned(lhs, rhs)
		if err != nil {
			return types.Value{}, err
		}
		switch e.Op {
		case jql.EQ:
			return boolValue(c == 0), nil
		case jql.NEQ:
			return boolValue(c != 0), nil
		case jql.LT:
			return boolValue(c < 0), nil
		case jql.LTE:
			return boolValue(c <= 0), nil
		case jql.GT:
			return boolValue(c > 0), nil
		case jql.GTE:
			return boolValue(c >= 0), nil
		}
	case jql.CONCAT:
		ls, err := asString(lhs)
		if err != nil {
			return types.Value{}, err
		}
		rs, err := asString(rhs)
		if err != nil {
			return types.Value{}, err
		}
		return text(ls + rs), nil
	case jql.ADD, jql.SUB, jql.MUL, jql.DIV, jql.MOD:
		return evalArithmetic(e.Op, lhs, rhs)
	}

	return types.Value{}, fmt.Errorf("unsupported binary operator %s", e.Op)

}

func evalArithmetic(op jql.Token, lhs, rhs types.Value) (types.Value, error) {

	if lhs.IsNull || rhs.IsNull {
		return types.Null(lhs.Kind), nil
	}

	l, err := asDouble(lhs)
	if err != nil {
		return types.Value{}, err
	}
	r, err := asDouble(rhs)
	if err != nil {
		return types.Value{}, err
	}

	var result float64
	switch op {
	case jql.ADD:
		result = l + r
	case jql.SUB:
		result = l - r
	case jql.MUL:
		result = l * r
	case jql.DIV:
		if r == 0 {
			return types.Value{}, fmt.Errorf("division by zero")
		}
		result = l / r
	case jql.MOD:
		if r == 0 {
			return types.Value{}, fmt.Errorf("division by zero")
		}
		result = float64(int64(l) % int64(r))
	}

	// integer-kinded operands with an integral result stay integral,
	// mirroring ordinary numeric-literal arithmetic in the grammar.
	if isIntegral(lhs.Kind) && isIntegral(rhs.Kind) && op != jql.DIV {
		return types.Value{Kind: types.KindInt, I: int64(result)}, nil
	}

	return double(result), nil

}

func isIntegral(k types.Kind) bool {
	return k == types.KindInt || k == types.KindUint
}

// Compare orders two evaluated values with NULLs last, for ORDER BY.
func Compare(a, b types.Value) int {
	return compareValues(a, b)
}

// compareAligned casts b onto a's Kind before comparing, the same
// cast-then-compare pattern checkForeignKey/compareForFK uses: a literal
// operand (e.g. an integer literal, always KindUint per literalValue) must
// not be compared field-by-field against a column of a different declared
// Kind (e.g. KindInt), since compareValues reads the same-named field from
// both operands and a Kind mismatch silently compares the wrong field.
func compareAligned(a, b types.Value) (int, error) {
	if a.Kind != b.Kind {
		cast, err := types.CastTo(b, a.Kind)
		if err != nil {
			return 0, err
		}
		b = cast
	}
	return compareValues(a, b), nil
}

// compareValues is KeyCompare's counterpart for in-memory evaluation,
// where no column schema (and thus no declared key size) is in hand.
func compareValues(a, b types.Value) int {

	if a.IsNull && b.IsNull {
		return 0
	}
	if a.IsNull {
		return 1
	}
	if b.IsNull {
		return -1
	}

	if a.IsArray || b.IsArray {
		n := len(a.Elems)
		if len(b.Elems) < n {
			n = len(b.Elems)
		}
		for i := 0; i < n; i++ {
			if c := compareValues(a.Elems[i], b.Elems[i]); c != 0 {
				return c
			}
		}
		return intCompare(int64(len(a.Elems)), int64(len(b.Elems)))
	}

	switch a.Kind {
	case types.KindInt:
		return intCompare(a.I, b.I)
	case types.KindUint:
		return intCompare(int64(a.U), int64(b.U))
	case types.KindFloat:
		return floatCompare(float64(a.F32), float64(b.F32))
	case types.KindDouble:
		return floatCompare(a.F64, b.F64)
	case types.KindBool:
		if a.B == b.B {
			return 0
		}
		if !a.B {
			return -1
		}
		return 1
	case types.KindUUID:
		return bytes.Compare(a.UUID[:], b.UUID[:])
	case types.KindDate, types.KindTime, types.KindTimeTZ, types.KindDatetime, types.KindDatetimeTZ, types.KindTimestamp, types.KindTimestampTZ:
		return timeCompare(a.T, b.T)
	default:
		return strings.Compare(a.S, b.S)
	}

}

func intCompare(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func floatCompare(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func timeCompare(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	}
	return 0
}
