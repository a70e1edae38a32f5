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

package storage

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/jugadbase/jugadb/jql"
	"github.com/jugadbase/jugadb/types"
)

func TestCatalogFlushReload(t *testing.T) {

	Convey("a catalog survives Flush and Open with schema, DEFAULT and CHECK intact", t, func() {
		dir := t.TempDir()

		db, err := Open(dir)
		So(err, ShouldBeNil)

		defaultExpr, err := jql.ParseExpr("0")
		So(err, ShouldBeNil)
		checkExpr, err := jql.ParseExpr("balance >= 0")
		So(err, ShouldBeNil)

		schema := &TableSchema{
			TableName: "accounts",
			Columns: []*ColumnSchema{
				{Name: "id", Type: types.KindInt, IsPrimaryKey: true, IsUnique: true, IsNotNull: true},
				{
					Name: "balance", Type: types.KindInt,
					HasDefault: true, Default: defaultExpr, DefaultText: "0",
					HasCheck: true, CheckExpr: checkExpr, CheckText: "balance >= 0",
				},
			},
		}
		So(db.CreateTable(schema), ShouldBeNil)
		So(db.Flush(), ShouldBeNil)

		reopened, err := Open(dir)
		So(err, ShouldBeNil)

		got := reopened.GetTable("accounts")
		So(got, ShouldNotBeNil)
		So(got.Columns, ShouldHaveLength, 2)
		So(got.Columns[0].IsPrimaryKey, ShouldBeTrue)
		So(got.Columns[1].DefaultText, ShouldEqual, "0")
		So(got.Columns[1].Default, ShouldNotBeNil)
		So(got.Columns[1].CheckText, ShouldEqual, "balance >= 0")
		So(got.Columns[1].CheckExpr, ShouldNotBeNil)
	})

	Convey("DropTable removes the table and its backing files", t, func() {
		dir := t.TempDir()
		db, err := Open(dir)
		So(err, ShouldBeNil)

		So(db.CreateTable(&TableSchema{TableName: "t", Columns: []*ColumnSchema{{Name: "id", Type: types.KindInt}}}), ShouldBeNil)
		So(db.DropTable("t"), ShouldBeNil)
		So(db.GetTable("t"), ShouldBeNil)
		So(db.TableNames(), ShouldBeEmpty)
	})

}
