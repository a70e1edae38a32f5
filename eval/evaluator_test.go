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
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/jugadbase/jugadb/jql"
	"github.com/jugadbase/jugadb/storage"
	"github.com/jugadbase/jugadb/types"
)

func testSchema() *storage.TableSchema {
	return &storage.TableSchema{
		TableName: "accounts",
		Columns: []*storage.ColumnSchema{
			{Name: "id", Type: types.KindInt},
			{Name: "balance", Type: types.KindDouble},
			{Name: "tags", Type: types.KindText, IsArray: true},
		},
	}
}

func testRow() *storage.Row {
	return &storage.Row{
		Values: []types.Value{
			{Kind: types.KindInt, I: 7},
			{Kind: types.KindDouble, F64: 42.5},
			{Kind: types.KindText, IsArray: true, Elems: []types.Value{
				{Kind: types.KindText, S: "a"},
				{Kind: types.KindText, S: "b"},
			}},
		},
	}
}

func TestEvalColumnAndArithmetic(t *testing.T) {

	schema := testSchema()
	row := testRow()

	Convey("a Column resolves against the schema's column order", t, func() {
		v, err := Eval(&jql.Column{Name: "balance"}, row, schema)
		So(err, ShouldBeNil)
		So(v.F64, ShouldEqual, 42.5)
	})

	Convey("arithmetic over mixed int/double operands promotes to double", t, func() {
		expr := &jql.BinaryOp{
			Op:  jql.ADD,
			Lhs: &jql.Column{Name: "id"},
			Rhs: &jql.Column{Name: "balance"},
		}
		v, err := Eval(expr, row, schema)
		So(err, ShouldBeNil)
		So(v.Kind, ShouldEqual, types.KindDouble)
		So(v.F64, ShouldEqual, 49.5)
	})

	Convey("comparisons with a NULL operand yield NULL, not false", t, func() {
		expr := &jql.BinaryOp{
			Op:  jql.EQ,
			Lhs: &jql.Literal{Tok: jql.NULL},
			Rhs: &jql.Column{Name: "id"},
		}
		v, err := Eval(expr, row, schema)
		So(err, ShouldBeNil)
		So(v.IsNull, ShouldBeTrue)
	})

}

func TestEvalArrayIndex(t *testing.T) {

	schema := testSchema()
	row := testRow()

	Convey("array indexing is 1-based", t, func() {
		expr := &jql.ArrayIndex{
			Column: &jql.Column{Name: "tags"},
			Index:  &jql.Literal{Tok: jql.L_UINT, Val: uint64(1)},
		}
		v, err := Eval(expr, row, schema)
		So(err, ShouldBeNil)
		So(v.S, ShouldEqual, "a")
	})

	Convey("index 0 is invalid", t, func() {
		expr := &jql.ArrayIndex{
			Column: &jql.Column{Name: "tags"},
			Index:  &jql.Literal{Tok: jql.L_UINT, Val: uint64(0)},
		}
		_, err := Eval(expr, row, schema)
		So(err, ShouldNotBeNil)
	})

	Convey("an out-of-range index is invalid", t, func() {
		expr := &jql.ArrayIndex{
			Column: &jql.Column{Name: "tags"},
			Index:  &jql.Literal{Tok: jql.L_UINT, Val: uint64(3)},
		}
		_, err := Eval(expr, row, schema)
		So(err, ShouldNotBeNil)
	})

}

func TestEvalBuiltinFunction(t *testing.T) {

	schema := testSchema()
	row := testRow()

	Convey("a scalar function call dispatches through the registry", t, func() {
		expr := &jql.FunctionCall{Name: "abs", Args: []jql.Expr{
			&jql.UnaryOp{Op: jql.SUB, Rhs: &jql.Column{Name: "balance"}},
		}}
		v, err := Eval(expr, row, schema)
		So(err, ShouldBeNil)
		So(v.F64, ShouldEqual, 42.5)
	})

	Convey("an aggregate name cannot be evaluated per-row", t, func() {
		expr := &jql.FunctionCall{Name: "sum", Args: []jql.Expr{&jql.Column{Name: "balance"}}}
		_, err := Eval(expr, row, schema)
		So(err, ShouldNotBeNil)
	})

}
