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

	"github.com/jugadbase/jugadb/types"
)

func testSchema() *TableSchema {
	return &TableSchema{
		TableName:   "accounts",
		ColumnCount: 2,
		Columns: []*ColumnSchema{
			{Name: "id", Type: types.KindInt, IsPrimaryKey: true},
			{Name: "name", Type: types.KindText},
		},
	}
}

func TestRowEncodeDecodeRoundTrip(t *testing.T) {

	Convey("a row encodes and decodes back to the same values", t, func() {
		schema := testSchema()
		row := &Row{ID: RowID{PageID: 0, RowID: 3}, Values: []types.Value{
			{Kind: types.KindInt, I: 7},
			{Kind: types.KindText, S: "alice"},
		}}

		raw, err := EncodeRow(schema, row)
		So(err, ShouldBeNil)

		decoded, err := DecodeRow(schema, row.ID, raw)
		So(err, ShouldBeNil)
		So(decoded.Values[0].I, ShouldEqual, 7)
		So(decoded.Values[1].S, ShouldEqual, "alice")
	})

	Convey("a NULL column round-trips as null with the declared kind", t, func() {
		schema := testSchema()
		row := &Row{Values: []types.Value{
			{Kind: types.KindInt, I: 1},
			types.Null(types.KindText),
		}}

		raw, err := EncodeRow(schema, row)
		So(err, ShouldBeNil)

		decoded, err := DecodeRow(schema, RowID{}, raw)
		So(err, ShouldBeNil)
		So(decoded.Values[1].IsNull, ShouldBeTrue)
	})

	Convey("an array column round-trips every element", t, func() {
		schema := &TableSchema{Columns: []*ColumnSchema{
			{Name: "tags", Type: types.KindText, IsArray: true},
		}}
		row := &Row{Values: []types.Value{
			{Kind: types.KindText, IsArray: true, Elems: []types.Value{
				{Kind: types.KindText, S: "a"},
				{Kind: types.KindText, S: "b"},
			}},
		}}

		raw, err := EncodeRow(schema, row)
		So(err, ShouldBeNil)

		decoded, err := DecodeRow(schema, RowID{}, raw)
		So(err, ShouldBeNil)
		So(decoded.Values[0].Elems, ShouldHaveLength, 2)
		So(decoded.Values[0].Elems[1].S, ShouldEqual, "b")
	})

}

func TestToastWrapResolve(t *testing.T) {

	Convey("a small value passes through Wrap untouched", t, func() {
		toast := &Toast{chunks: make(map[uint32][]byte)}
		v := types.Value{Kind: types.KindText, S: "short"}
		out, err := toast.Wrap(v)
		So(err, ShouldBeNil)
		So(out.IsToast, ShouldBeFalse)
		So(out.S, ShouldEqual, "short")
	})

	Convey("a value past ToastChunkSize is relocated and resolves back to itself", t, func() {
		toast := &Toast{chunks: make(map[uint32][]byte)}
		big := make([]byte, types.ToastChunkSize+10)
		for i := range big {
			big[i] = 'x'
		}
		v := types.Value{Kind: types.KindText, S: string(big)}

		wrapped, err := toast.Wrap(v)
		So(err, ShouldBeNil)
		So(wrapped.IsToast, ShouldBeTrue)

		resolved, err := toast.Resolve(wrapped, 0)
		So(err, ShouldBeNil)
		So(resolved.S, ShouldEqual, v.S)
	})

	Convey("a NULL value is never relocated", t, func() {
		toast := &Toast{chunks: make(map[uint32][]byte)}
		out, err := toast.Wrap(types.Null(types.KindText))
		So(err, ShouldBeNil)
		So(out.IsToast, ShouldBeFalse)
	})

}
