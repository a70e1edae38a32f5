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

// executeInsert applies, per row and in column order: DEFAULT for an
// omitted value, SERIAL allocation, the cast matrix, then NOT NULL /
// UNIQUE / CHECK / FOREIGN KEY enforcement, before appending the row to
// the table heap and its indexes.
func (db *Database) executeInsert(stmt *jql.InsertStatement) (*Result, error) {

	schema := db.store.GetTable(stmt.Table)
	if schema == nil {
		return nil, fmt.Errorf("table %q does not exist", stmt.Table)
	}

	positions, err := columnPositions(schema, stmt.Columns)
	if err != nil {
		return nil, err
	}

	inserted := 0

	for _, exprs := range stmt.Rows {
		if len(exprs) != len(positions) {
			return nil, fmt.Errorf("table %q: expected %d values, got %d", stmt.Table, len(positions), len(exprs))
		}

		values := make([]types.Value, len(schema.Columns))
		set := make([]bool, len(schema.Columns))

		for i, expr := range exprs {
			pos := positions[i]
			v, err := eval.Eval(expr, &storage.Row{Values: values}, schema)
			if err != nil {
				return nil, fmt.Errorf("column %q: %w", schema.Columns[pos].Name, err)
			}
			values[pos] = v
			set[pos] = true
		}

		if err := db.fillDefaults(schema, values, set); err != nil {
			return nil, err
		}

		for i, col := range schema.Columns {
			if col.HasSequence && !set[i] {
				values[i] = types.Value{Kind: types.KindInt, I: db.store.Sequence(stmt.Table).Next()}
			}
		}

		row := &storage.Row{Values: values}
		if err := db.castRow(schema, row); err != nil {
			return nil, err
		}
		if err := db.enforceConstraints(schema, row, nil); err != nil {
			return nil, err
		}
		if err := db.toastRow(stmt.Table, schema, row); err != nil {
			return nil, err
		}

		row = db.store.Heap(stmt.Table).InsertRow(row)

		if err := db.indexRow(stmt.Table, schema, row); err != nil {
			return nil, err
		}

		inserted++

	}

	return okResult(inserted), nil

}

// columnPositions maps an (optionally omitted) explicit column list to
// schema column indexes; nil means every column in schema order.
func columnPositions(schema *storage.TableSchema, columns []string) ([]int, error) {
	if columns == nil {
		positions := make([]int, len(schema.Columns))
		for i := range positions {
			positions[i] = i
		}
		return positions, nil
	}
	positions := make([]int, len(columns))
	for i, name := range columns {
		idx := schema.ColumnIndex(name)
		if idx < 0 {
			return nil, fmt.Errorf("unknown column %q", name)
		}
		positions[i] = idx
	}
	return positions, nil
}

func (db *Database) fillDefaults(schema *storage.TableSchema, values []types.Value, set []bool) error {
	for i, col := range schema.Columns {
		if set[i] || !col.HasDefault {
			continue
		}
		v, err := eval.Eval(col.Default, &storage.Row{Values: values}, schema)
		if err != nil {
			return fmt.Errorf("column %q: default expression: %w", col.Name, err)
		}
		values[i] = v
		set[i] = true
	}
	return nil
}

func (db *Database) castRow(schema *storage.TableSchema, row *storage.Row) error {
	for i, col := range schema.Columns {
		v := row.Values[i]
		v.VarcharLen, v.DecimalP, v.DecimalS = col.VarcharLen, col.DecimalP, col.DecimalS
		if v.IsNull {
			row.Values[i] = types.Null(col.Type)
			continue
		}
		cast, err := types.CastTo(v, col.Type)
		if err != nil {
			return fmt.Errorf("column %q: %w", col.Name, err)
		}
		cast.VarcharLen, cast.DecimalP, cast.DecimalS = col.VarcharLen, col.DecimalP, col.DecimalS
		row.Values[i] = cast
	}
	return nil
}

// enforceConstraints checks NOT NULL, UNIQUE, CHECK, and FOREIGN KEY for
// row. excludeRowID, when non-nil, is the row's own id (for UPDATE
// re-validation, so a row does not conflict with itself).
func (db *Database) enforceConstraints(schema *storage.TableSchema, row *storage.Row, excludeRowID *storage.RowID) error {

	for i, col := range schema.Columns {
		v := row.Values[i]

		if col.IsNotNull && v.IsNull {
			return fmt.Errorf("column %q: NOT NULL constraint violated", col.Name)
		}

		if (col.IsUnique || col.IsPrimaryKey) && !v.IsNull {
			if err := db.checkUnique(schema, col, v, excludeRowID); err != nil {
				return err
			}
		}

		if col.IsForeignKey && !v.IsNull {
			if err := db.checkForeignKey(col, v); err != nil {
				return err
			}
		}
	}

	for _, col := range schema.Columns {
		if !col.HasCheck {
			continue
		}
		result, err := eval.Eval(col.CheckExpr, row, schema)
		if err != nil {
			return fmt.Errorf("column %q: CHECK expression: %w", col.Name, err)
		}
		ok, err := types.CastTo(result, types.KindBool)
		if err != nil || !ok.B {
			return fmt.Errorf("column %q: CHECK constraint violated", col.Name)
		}
	}

	return nil

}

func (db *Database) checkUnique(schema *storage.TableSchema, col *storage.ColumnSchema, v types.Value, excludeRowID *storage.RowID) error {

	tree, err := db.indexFor(schema.TableName, col)
	if err != nil {
		return err
	}

	rowID, err := tree.Search(v)
	if err != nil {
		return nil // not found: unique
	}
	if excludeRowID != nil && rowID == *excludeRowID {
		return nil
	}

	return fmt.Errorf("column %q: UNIQUE constraint violated for value %v", col.Name, types.Display(v))

}

// checkForeignKey scans the referenced table's heap for a live row whose
// referenced column matches v.
func (db *Database) checkForeignKey(col *storage.ColumnSchema, v types.Value) error {

	refSchema := db.store.GetTable(col.ForeignTable)
	if refSchema == nil {
		return fmt.Errorf("column %q: referenced table %q does not exist", col.Name, col.ForeignTable)
	}

	refCol := refSchema.ColumnIndex(col.ForeignColumn)
	if refCol < 0 {
		return fmt.Errorf("column %q: referenced column %q does not exist", col.Name, col.ForeignColumn)
	}

	for _, r := range db.store.Heap(col.ForeignTable).All() {
		if r.Values[refCol].IsNull {
			continue
		}
		if compareForFK(r.Values[refCol], v) {
			return nil
		}
	}

	return fmt.Errorf("column %q: FOREIGN KEY constraint violated: no matching row in %s.%s", col.Name, col.ForeignTable, col.ForeignColumn)

}

func compareForFK(a, b types.Value) bool {
	av, err := types.CastTo(a, b.Kind)
	if err != nil {
		return false
	}
	return types.Display(av) == types.Display(b)
}

// indexRow inserts row's primary-key/unique-column entries into their
// B-trees.
func (db *Database) indexRow(table string, schema *storage.TableSchema, row *storage.Row) error {
	for i, col := range schema.Columns {
		if !col.IsPrimaryKey && !col.IsUnique && !col.IsIndex {
			continue
		}
		tree, err := db.indexFor(table, col)
		if err != nil {
			return err
		}
		if !row.Values[i].IsNull {
			tree.Insert(row.Values[i], row.ID)
		}
		db.indexes.Touch(table, col.Name, tree)
	}
	return nil
}

// toastRow relocates any column value whose encoded size exceeds the
// TOAST chunk size into the table's TOAST store.
func (db *Database) toastRow(table string, schema *storage.TableSchema, row *storage.Row) error {
	toast := db.store.Toast(table)
	for i, col := range schema.Columns {
		v, err := toast.Wrap(row.Values[i])
		if err != nil {
			return fmt.Errorf("column %q: %w", col.Name, err)
		}
		row.Values[i] = v
	}
	return nil
}
