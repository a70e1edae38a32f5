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
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/jugadbase/jugadb/types"
)

func TestHeapInsertDeleteReload(t *testing.T) {

	Convey("a heap persists live rows and tombstones deleted ones across reload", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "accounts.heap")
		schema := testSchema()

		h, err := OpenHeap(path)
		So(err, ShouldBeNil)

		r1 := h.InsertRow(&Row{Values: []types.Value{{Kind: types.KindInt, I: 1}, {Kind: types.KindText, S: "alice"}}})
		r2 := h.InsertRow(&Row{Values: []types.Value{{Kind: types.KindInt, I: 2}, {Kind: types.KindText, S: "bob"}}})
		So(h.All(), ShouldHaveLength, 2)

		h.Delete(r1.ID.RowID)
		So(h.All(), ShouldHaveLength, 1)

		So(h.Flush(schema), ShouldBeNil)

		reloaded, err := OpenHeap(path)
		So(err, ShouldBeNil)
		So(reloaded.Decode(schema), ShouldBeNil)

		rows := reloaded.All()
		So(rows, ShouldHaveLength, 1)
		So(rows[0].Values[1].S, ShouldEqual, "bob")

		Convey("the next inserted row does not reuse a tombstoned RowID", func() {
			r3 := reloaded.InsertRow(&Row{Values: []types.Value{{Kind: types.KindInt, I: 3}, {Kind: types.KindText, S: "carol"}}})
			So(r3.ID.RowID, ShouldNotEqual, r1.ID.RowID)
			So(r3.ID.RowID, ShouldBeGreaterThan, r2.ID.RowID)
		})
	})

	Convey("opening a heap file that does not exist yet yields an empty heap", t, func() {
		dir := t.TempDir()
		h, err := OpenHeap(filepath.Join(dir, "missing.heap"))
		So(err, ShouldBeNil)
		So(h.All(), ShouldBeEmpty)
	})

}
