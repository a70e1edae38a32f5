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

package engine

import (
	"fmt"

	"github.com/jugadbase/jugadb/jql"
)

// executeDelete applies every referencing table's ON DELETE action before
// removing each matched row from the heap and its indexes.
func (db *Database) executeDelete(stmt *jql.DeleteStatement) (*Result, error) {

	schema := db.store.GetTable(stmt.Table)
	if schema == nil {
		return nil, fmt.Errorf("table %q does not exist", stmt.Table)
	}

	resolved, err := db.resolveRows(stmt.Table, schema, db.store.Heap(stmt.Table).All())
	if err != nil {
		return nil, err
	}

	matched, err := db.filterRows(schema, resolved, stmt.Where)
	if err != nil {
		return nil, err
	}

	deleted := 0

	for _, resolvedRow := range matched {

		if err := db.propagateReferentialDelete(stmt.Table, schema, resolvedRow.Values); err != nil {
			return nil, err
		}

		// row is the heap-resident row, so its (possibly still
		// TOAST-tagged) values match what indexFor built the tree from.
		row := db.store.Heap(stmt.Table).Get(resolvedRow.ID.RowID)

		for i, col := range schema.Columns {
			if !col.IsPrimaryKey && !col.IsUnique && !col.IsIndex {
				continue
			}
			if row.Values[i].IsNull {
				continue
			}
			tree, err := db.indexFor(stmt.Table, col)
			if err != nil {
				return nil, err
			}
			tree.Delete(row.Values[i])
			db.indexes.Touch(stmt.Table, col.Name, tree)
		}

		db.store.Heap(stmt.Table).Delete(row.ID.RowID)
		deleted++

	}

	return okResult(deleted), nil

}
