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

	"github.com/jugadbase/jugadb/eval"
	"github.com/jugadbase/jugadb/jql"
	"github.com/jugadbase/jugadb/storage"
	"github.com/jugadbase/jugadb/types"
)

// executeUpdate applies every SET assignment to each matching row,
// re-validates constraints, keeps affected B-tree indexes in step, and
// propagates CASCADE/SET NULL to any table whose FOREIGN KEY references
// this table's updated column.
func (db *Database) executeUpdate(stmt *jql.UpdateStatement) (*Result, error) {

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

	updated := 0

	for _, resolvedRow := range matched {

		// row is the heap-resident row resolvedRow was derived from; the
		// update is written back through row, not resolvedRow, so a
		// TOAST descriptor column that is left unchanged keeps being
		// stored out of line instead of being inlined back into the row.
		row := db.store.Heap(stmt.Table).Get(resolvedRow.ID.RowID)

		rawBefore := append([]types.Value(nil), row.Values...)
		next := append([]types.Value(nil), resolvedRow.Values...)

		for _, asn := range stmt.Set {
			idx := schema.ColumnIndex(asn.Column)
			if idx < 0 {
				return nil, fmt.Errorf("unknown column %q", asn.Column)
			}
			v, err := eval.Eval(asn.Value, resolvedRow, schema)
			if err != nil {
				return nil, fmt.Errorf("column %q: %w", asn.Column, err)
			}
			if asn.Index == nil {
				next[idx] = v
				continue
			}
			if err := assignArrayElement(&next[idx], asn.Index, v, resolvedRow, schema); err != nil {
				return nil, fmt.Errorf("column %q: %w", asn.Column, err)
			}
		}

		candidate := &storage.Row{ID: row.ID, Values: next}
		if err := db.castRow(schema, candidate); err != nil {
			return nil, err
		}
		if err := db.enforceConstraints(schema, candidate, &row.ID); err != nil {
			return nil, err
		}
		if err := db.toastRow(stmt.Table, schema, candidate); err != nil {
			return nil, err
		}

		// the row takes its new values before referencing rows are updated,
		// so a cascaded child's FOREIGN KEY re-check finds the new key.
		row.Values = candidate.Values

		if err := db.propagateReferentialUpdate(stmt.Table, schema, rawBefore, candidate.Values); err != nil {
			row.Values = rawBefore
			return nil, err
		}

		if err := db.reindexRow(stmt.Table, schema, row.ID, rawBefore, candidate.Values); err != nil {
			return nil, err
		}

		updated++

	}

	return okResult(updated), nil

}

// assignArrayElement evaluates a 1-based array index against target's
// current value and replaces that element with v.
func assignArrayElement(target *types.Value, indexExpr jql.Expr, v types.Value, row *storage.Row, schema *storage.TableSchema) error {

	idxVal, err := eval.Eval(indexExpr, row, schema)
	if err != nil {
		return err
	}
	idxCast, err := types.CastTo(idxVal, types.KindInt)
	if err != nil {
		return err
	}
	idx := int(idxCast.I)

	if !target.IsArray {
		return fmt.Errorf("not an array")
	}
	if idx < 1 || idx > len(target.Elems) {
		return fmt.Errorf("array index %d out of range [1,%d]", idx, len(target.Elems))
	}

	elems := append([]types.Value(nil), target.Elems...)
	elems[idx-1] = v
	target.Elems = elems

	return nil

}

// reindexRow removes an updated row's old indexed-column keys and
// inserts the new ones, for every PRIMARY KEY/UNIQUE/INDEX column whose
// value actually changed.
func (db *Database) reindexRow(table string, schema *storage.TableSchema, rowID storage.RowID, before, after []types.Value) error {
	for i, col := range schema.Columns {
		if !col.IsPrimaryKey && !col.IsUnique && !col.IsIndex {
			continue
		}
		if types.Display(before[i]) == types.Display(after[i]) {
			continue
		}
		tree, err := db.indexFor(table, col)
		if err != nil {
			return err
		}
		if !before[i].IsNull {
			tree.Delete(before[i])
		}
		if !after[i].IsNull {
			tree.Insert(after[i], rowID)
		}
		db.indexes.Touch(table, col.Name, tree)
	}
	return nil
}
