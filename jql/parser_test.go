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

package jql

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestParseCreate(t *testing.T) {
	Convey("CREATE TABLE with a primary key and a foreign key parses", t, func() {
		stmt, err := Parse(`CREATE TABLE orders (id INT PRIMKEY, customer_id INT FRNKEY REF customers(id));`)
		So(err, ShouldBeNil)
		create, ok := stmt.(*CreateStatement)
		So(ok, ShouldBeTrue)
		So(create.Table, ShouldEqual, "orders")
		So(create.Columns, ShouldHaveLength, 2)
		So(create.Columns[0].IsPrimaryKey, ShouldBeTrue)
		So(create.Columns[1].IsForeignKey, ShouldBeTrue)
		So(create.Columns[1].ForeignTable, ShouldEqual, "customers")
	})
}

func TestParseSelectShortenedKeywords(t *testing.T) {
	Convey("SELECT with DISCT and LIM parses using the shortened keywords", t, func() {
		stmt, err := Parse(`SELECT DISCT * FROM accounts WHERE balance > 0 ORDER BY balance DESC LIM 5 OFFSET 1;`)
		So(err, ShouldBeNil)
		sel, ok := stmt.(*SelectStatement)
		So(ok, ShouldBeTrue)
		So(sel.Distinct, ShouldBeTrue)
		So(sel.Table, ShouldEqual, "accounts")
		So(sel.OrderBy, ShouldHaveLength, 1)
		So(sel.OrderBy[0].Desc, ShouldBeTrue)
		So(*sel.Limit, ShouldEqual, 5)
		So(*sel.Offset, ShouldEqual, 1)
	})
}

func TestParseInsert(t *testing.T) {
	Convey("INSERT with an explicit column list parses multiple value rows", t, func() {
		stmt, err := Parse(`INSERT INTO accounts (id, balance) VALUES (1, 10.5), (2, 20.5);`)
		So(err, ShouldBeNil)
		ins, ok := stmt.(*InsertStatement)
		So(ok, ShouldBeTrue)
		So(ins.Columns, ShouldResemble, []string{"id", "balance"})
		So(ins.Rows, ShouldHaveLength, 2)
	})
}

func TestParseUpdateArrayAssignment(t *testing.T) {
	Convey("UPDATE supports col[idx] = expr array-element assignment", t, func() {
		stmt, err := Parse(`UPDATE accounts SET tags[1] = "x" WHERE id = 1;`)
		So(err, ShouldBeNil)
		upd, ok := stmt.(*UpdateStatement)
		So(ok, ShouldBeTrue)
		So(upd.Set, ShouldHaveLength, 1)
		So(upd.Set[0].Index, ShouldNotBeNil)
	})
}

func TestParseEmptyQuery(t *testing.T) {
	Convey("an empty query is a parse error, not a panic", t, func() {
		_, err := Parse("   ")
		So(err, ShouldNotBeNil)
	})
}

func TestParseExprStandalone(t *testing.T) {
	Convey("ParseExpr parses a bare expression for a persisted DEFAULT/CHECK clause", t, func() {
		expr, err := ParseExpr(`balance >= 0`)
		So(err, ShouldBeNil)
		bin, ok := expr.(*BinaryOp)
		So(ok, ShouldBeTrue)
		So(bin.Op, ShouldEqual, GTE)
	})
}

func TestParseNotBindsLooserThanComparison(t *testing.T) {
	Convey("NOT age = 30 parses as NOT (age = 30), not (NOT age) = 30", t, func() {
		expr, err := ParseExpr(`NOT age = 30`)
		So(err, ShouldBeNil)
		not, ok := expr.(*UnaryOp)
		So(ok, ShouldBeTrue)
		So(not.Op, ShouldEqual, NOT)
		cmp, ok := not.Rhs.(*BinaryOp)
		So(ok, ShouldBeTrue)
		So(cmp.Op, ShouldEqual, EQ)
	})
	Convey("NOT age = 30 AND active leaves AND outside NOT's scope", t, func() {
		expr, err := ParseExpr(`NOT age = 30 AND active`)
		So(err, ShouldBeNil)
		and, ok := expr.(*BinaryOp)
		So(ok, ShouldBeTrue)
		So(and.Op, ShouldEqual, AND)
		not, ok := and.Lhs.(*UnaryOp)
		So(ok, ShouldBeTrue)
		So(not.Op, ShouldEqual, NOT)
		_, ok = not.Rhs.(*BinaryOp)
		So(ok, ShouldBeTrue)
	})
}
