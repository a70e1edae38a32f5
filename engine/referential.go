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
	"strings"

	"github.com/jugadbase/jugadb/jql"
	"github.com/jugadbase/jugadb/storage"
	"github.com/jugadbase/jugadb/types"
)

// referencingColumns returns every (table, column) across the catalog
// whose FOREIGN KEY points at table.column.
func (db *Database) referencingColumns(table, column string) []*storage.ColumnSchema {
	var out []*storage.ColumnSchema
	for _, name := range db.store.TableNames() {
		schema := db.store.GetTable(name)
		for _, col := range schema.Columns {
			if col.IsForeignKey && col.ForeignTable == table && col.ForeignColumn == column {
				out = append(out, col)
			}
		}
	}
	return out
}

// tableOf returns the table a ColumnSchema belongs to by scanning the
// catalog (ColumnSchema itself carries no back-reference).
func (db *Database) tableOf(col *storage.ColumnSchema) string {
	for _, name := range db.store.TableNames() {
		schema := db.store.GetTable(name)
		for _, c := range schema.Columns {
			if c == col {
				return name
			}
		}
	}
	return ""
}

// propagateReferentialUpdate re-enters Process for every foreign table
// referencing an updated PRIMARY KEY/UNIQUE column whose value changed,
// per the ON UPDATE action: CASCADE rewrites the referencing rows,
// SET NULL nulls them out, RESTRICT rejects the update outright.
func (db *Database) propagateReferentialUpdate(table string, schema *storage.TableSchema, before, after []types.Value) error {
	for i, col := range schema.Columns {
		if !col.IsPrimaryKey && !col.IsUnique {
			continue
		}
		if types.Display(before[i]) == types.Display(after[i]) {
			continue
		}
		for _, fk := range db.referencingColumns(table, col.Name) {
			refTable := db.tableOf(fk)
			switch fk.OnUpdate {
			case jql.Cascade:
				query := fmt.Sprintf("UPDATE %s SET %s = %s WHERE %s = %s;",
					refTable, fk.Name, literalFor(after[i]), fk.Name, literalFor(before[i]))
				if err := db.runCascade(query); err != nil {
					return err
				}
			case jql.SetNull:
				query := fmt.Sprintf("UPDATE %s SET %s = NULL WHERE %s = %s;",
					refTable, fk.Name, fk.Name, literalFor(before[i]))
				if err := db.runCascade(query); err != nil {
					return err
				}
			case jql.Restrict, jql.NoAction:
				if db.hasMatchingRow(refTable, fk.Name, before[i]) {
					return fmt.Errorf("update on %q.%q restricted by %s.%s", table, col.Name, refTable, fk.Name)
				}
			}
		}
	}
	return nil
}

// propagateReferentialDelete applies each referencing table's ON DELETE
// action before a row carrying key is removed from table.
func (db *Database) propagateReferentialDelete(table string, schema *storage.TableSchema, key []types.Value) error {
	for i, col := range schema.Columns {
		if !col.IsPrimaryKey && !col.IsUnique {
			continue
		}
		if key[i].IsNull {
			continue
		}
		for _, fk := range db.referencingColumns(table, col.Name) {
			refTable := db.tableOf(fk)
			switch fk.OnDelete {
			case jql.Cascade:
				query := fmt.Sprintf("DELETE FROM %s WHERE %s = %s;", refTable, fk.Name, literalFor(key[i]))
				if err := db.runCascade(query); err != nil {
					return err
				}
			case jql.SetNull:
				query := fmt.Sprintf("UPDATE %s SET %s = NULL WHERE %s = %s;", refTable, fk.Name, fk.Name, literalFor(key[i]))
				if err := db.runCascade(query); err != nil {
					return err
				}
			case jql.Restrict, jql.NoAction:
				if db.hasMatchingRow(refTable, fk.Name, key[i]) {
					return fmt.Errorf("delete on %q restricted by %s.%s", table, refTable, fk.Name)
				}
			}
		}
	}
	return nil
}

// runCascade re-enters the executor with a synthesized query, surfacing
// either a Go error or the query's own CodeError result as an error.
func (db *Database) runCascade(query string) error {
	res, err := db.processLocked(query)
	if err != nil {
		return err
	}
	if res.Exec.Code == CodeError {
		return fmt.Errorf("cascade %q: %s", query, res.Exec.Message)
	}
	return nil
}

func (db *Database) hasMatchingRow(table, column string, v types.Value) bool {
	schema := db.store.GetTable(table)
	idx := schema.ColumnIndex(column)
	for _, row := range db.store.Heap(table).All() {
		if !row.Values[idx].IsNull && types.Display(row.Values[idx]) == types.Display(v) {
			return true
		}
	}
	return false
}

// literalFor renders v as a JQL literal for a synthesized cascade query.
func literalFor(v types.Value) string {
	if v.IsNull {
		return "NULL"
	}
	switch v.Kind {
	case types.KindInt:
		return fmt.Sprintf("%d", v.I)
	case types.KindUint:
		return fmt.Sprintf("%d", v.U)
	case types.KindFloat:
		return fmt.Sprintf("%v", v.F32)
	case types.KindDouble:
		return fmt.Sprintf("%v", v.F64)
	case types.KindBool:
		if v.B {
			return "TRUE"
		}
		return "FALSE"
	default:
		return "'" + strings.ReplaceAll(fmt.Sprintf("%v", types.Display(v)), "'", "''") + "'"
	}
}
