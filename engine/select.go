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

// executeSelect filters, sorts, paginates, and projects, in the order the
// ordering guarantees require: WHERE before ORDER BY, ORDER BY before
// OFFSET, OFFSET before LIMIT, LIMIT before projection, with aggregates
// computed over the filtered row set rather than the projected one.
func (db *Database) executeSelect(stmt *jql.SelectStatement) (*Result, error) {

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

	if len(stmt.GroupBy) > 0 || hasAggregate(stmt.Projections) || hasAggregate([]jql.Expr{stmt.Having}) {
		return db.executeAggregateSelect(stmt, schema, matched)
	}

	sortRows(matched, stmt.OrderBy, schema)

	matched = paginate(matched, stmt.Offset, stmt.Limit)

	columns, rows, owns, err := projectRows(stmt.Projections, matched, schema)
	if err != nil {
		return nil, err
	}

	if stmt.Distinct {
		rows = dedupRows(rows)
	}

	return &Result{Exec: ExecutionResult{
		Code:     CodeOK,
		Columns:  columns,
		Rows:     rows,
		RowCount: len(rows),
		OwnsRows: owns,
	}}, nil

}

// resolveRows replaces every TOAST-relocated column value in rows with
// its real value, so WHERE evaluation, sorting, and projection never see
// a bare {is_toast, toast_id} descriptor. Rows with nothing toasted are
// returned as-is (same pointer). SELECT, UPDATE and DELETE all call it;
// UPDATE/DELETE then look up the heap-resident row by id for mutation and
// index maintenance.
func (db *Database) resolveRows(table string, schema *storage.TableSchema, rows []*storage.Row) ([]*storage.Row, error) {
	toast := db.store.Toast(table)
	out := make([]*storage.Row, len(rows))
	for i, row := range rows {
		resolved, err := toast.ResolveRow(schema, row)
		if err != nil {
			return nil, err
		}
		out[i] = resolved
	}
	return out, nil
}

func (db *Database) filterRows(schema *storage.TableSchema, all []*storage.Row, where jql.Expr) ([]*storage.Row, error) {
	if where == nil {
		return all, nil
	}
	matched := make([]*storage.Row, 0, len(all))
	for _, row := range all {
		v, err := eval.Eval(where, row, schema)
		if err != nil {
			return nil, err
		}
		if v.IsTrue() {
			matched = append(matched, row)
		}
	}
	return matched, nil
}

func paginate(rows []*storage.Row, offset, limit *int) []*storage.Row {
	if offset != nil {
		o := *offset
		if o >= len(rows) {
			return nil
		}
		if o > 0 {
			rows = rows[o:]
		}
	}
	if limit != nil {
		l := *limit
		if l < 0 {
			l = 0
		}
		if l < len(rows) {
			rows = rows[:l]
		}
	}
	return rows
}

func hasAggregate(exprs []jql.Expr) bool {
	for _, e := range exprs {
		if containsAggregate(e) {
			return true
		}
	}
	return false
}

func containsAggregate(e jql.Expr) bool {
	switch n := e.(type) {
	case nil:
		return false
	case *jql.FunctionCall:
		if eval.IsAggregate(n.Name) {
			return true
		}
		return hasAggregate(n.Args)
	case *jql.BinaryOp:
		return containsAggregate(n.Lhs) || containsAggregate(n.Rhs)
	case *jql.UnaryOp:
		return containsAggregate(n.Rhs)
	case *jql.Cast:
		return containsAggregate(n.Value)
	}
	return false
}

// projectRows evaluates stmt's projection list against each row. A bare
// "*" Column expands to every schema column; any other expression
// materializes a fresh value, which sets owns to true.
func projectRows(projections []jql.Expr, rows []*storage.Row, schema *storage.TableSchema) (columns []string, out [][]types.Value, owns bool, err error) {

	if len(projections) == 0 {
		projections = []jql.Expr{&jql.Column{Name: "*"}}
	}

	for _, p := range projections {
		if c, ok := p.(*jql.Column); ok && c.Name == "*" {
			for _, col := range schema.Columns {
				columns = append(columns, col.Name)
			}
			continue
		}
		if c, ok := p.(*jql.Column); ok {
			columns = append(columns, c.Name)
			continue
		}
		columns = append(columns, exprLabel(p))
		owns = true
	}

	out = make([][]types.Value, 0, len(rows))

	for _, row := range rows {
		var vals []types.Value
		for _, p := range projections {
			if c, ok := p.(*jql.Column); ok && c.Name == "*" {
				vals = append(vals, row.Values...)
				continue
			}
			v, err := eval.Eval(p, row, schema)
			if err != nil {
				return nil, nil, false, err
			}
			vals = append(vals, v)
		}
		out = append(out, vals)
	}

	return columns, out, owns, nil

}

func exprLabel(e jql.Expr) string {
	if c, ok := e.(*jql.Column); ok {
		return c.Name
	}
	if f, ok := e.(*jql.FunctionCall); ok {
		return f.Name
	}
	return "expr"
}

func dedupRows(rows [][]types.Value) [][]types.Value {
	seen := make(map[string]bool, len(rows))
	out := make([][]types.Value, 0, len(rows))
	for _, r := range rows {
		key := rowKey(r)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}

func rowKey(values []types.Value) string {
	key := ""
	for _, v := range values {
		key += fmt.Sprintf("%v\x00", types.Display(v))
	}
	return key
}
