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

package btree

import (
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/jugadbase/jugadb/storage"
	"github.com/jugadbase/jugadb/types"
)

func intKey(n int64) types.Value { return types.Value{Kind: types.KindInt, I: n} }

func TestTreeInsertSearchDelete(t *testing.T) {

	Convey("a tree built with a forced small order splits and still finds every key", t, func() {
		tr := New(1, types.KindInt, 0)
		tr.Order = 3 // force splitting well before 1000 inserts

		const n = 50
		for i := int64(0); i < n; i++ {
			tr.Insert(intKey(i), storage.RowID{PageID: 0, RowID: uint16(i)})
		}

		for i := int64(0); i < n; i++ {
			row, err := tr.Search(intKey(i))
			So(err, ShouldBeNil)
			So(row.RowID, ShouldEqual, uint16(i))
		}

		So(tr.Contains(intKey(n)), ShouldBeFalse)
	})

	Convey("deleting a key removes it while leaving the rest reachable", t, func() {
		tr := New(2, types.KindInt, 0)
		tr.Order = 3

		const n = 30
		for i := int64(0); i < n; i++ {
			tr.Insert(intKey(i), storage.RowID{RowID: uint16(i)})
		}

		for i := int64(0); i < n; i += 2 {
			ok := tr.Delete(intKey(i))
			So(ok, ShouldBeTrue)
		}

		for i := int64(0); i < n; i++ {
			_, err := tr.Search(intKey(i))
			if i%2 == 0 {
				So(err, ShouldEqual, ErrNotFound)
			} else {
				So(err, ShouldBeNil)
			}
		}
	})

	Convey("deleting an absent key reports false and leaves the tree intact", t, func() {
		tr := New(3, types.KindInt, 0)
		tr.Insert(intKey(1), storage.RowID{RowID: 1})
		So(tr.Delete(intKey(99)), ShouldBeFalse)
		So(tr.Contains(intKey(1)), ShouldBeTrue)
	})

}

func TestTreeSaveLoadRoundTrip(t *testing.T) {

	Convey("a tree persists and reloads with every key/row pointer intact", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "idx.btree")

		tr := New(7, types.KindInt, 0)
		tr.Order = 3
		for i := int64(0); i < 40; i++ {
			tr.Insert(intKey(i), storage.RowID{PageID: uint32(i / 10), RowID: uint16(i)})
		}

		So(Save(tr, path), ShouldBeNil)

		loaded, err := Load(path)
		So(err, ShouldBeNil)
		So(loaded.ID, ShouldEqual, tr.ID)
		So(loaded.KeyType, ShouldEqual, types.KindInt)

		for i := int64(0); i < 40; i++ {
			row, err := loaded.Search(intKey(i))
			So(err, ShouldBeNil)
			So(row.RowID, ShouldEqual, uint16(i))
		}
	})

}

func TestKeyCompareNullsSortLast(t *testing.T) {

	Convey("a null key compares greater than any non-null key", t, func() {
		So(KeyCompare(types.Null(types.KindInt), intKey(0)), ShouldEqual, 1)
		So(KeyCompare(intKey(0), types.Null(types.KindInt)), ShouldEqual, -1)
	})

}
