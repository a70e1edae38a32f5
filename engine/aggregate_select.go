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

// aggregateGroup is one GROUP BY bucket: the rows that share a key. The
// first of them stands in for the group's non-aggregated (GROUP BY) columns.
type aggregateGroup struct {
	rows []*storage.Row
}

// executeAggregateSelect buckets matched by GroupBy (a single implicit
// group when GroupBy is empty but a projection is still aggregate),
// evaluates HAVING per bucket, then projects scalar GROUP BY columns
// alongside aggregate results. The grouped result always owns its rows,
// since every aggregate value is freshly computed.
func (db *Database) executeAggregateSelect(stmt *jql.SelectStatement, schema *storage.TableSchema, matched []*storage.Row) (*Result, error) {

	groups, order, err := bucketRows(stmt.GroupBy, matched, schema)
	if err != nil {
		return nil, err
	}

	projections := stmt.Projections
	if len(projections) == 0 {
		return nil, fmt.Errorf("aggregate query requires an explicit projection list")
	}

	var columns []string
	for _, p := range projections {
		columns = append(columns, exprLabel(p))
	}

	var out [][]types.Value

	for _, key := range order {
		g := groups[key]

		if stmt.Having != nil {
			ok, err := evalHaving(stmt.Having, g.rows, schema)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
		}

		vals := make([]types.Value, len(projections))
		for i, p := range projections {
			v, err := evalProjectionOverGroup(p, g.rows, schema)
			if err != nil {
				return nil, err
			}
			vals[i] = v
		}
		out = append(out, vals)
	}

	return &Result{Exec: ExecutionResult{
		Code:     CodeOK,
		Columns:  columns,
		Rows:     out,
		RowCount: len(out),
		OwnsRows: true,
	}}, nil

}

func bucketRows(groupBy []jql.Expr, rows []*storage.Row, schema *storage.TableSchema) (map[string]*aggregateGroup, []string, error) {

	groups := make(map[string]*aggregateGroup)
	var order []string

	for _, row := range rows {
		key, err := groupKey(groupBy, row, schema)
		if err != nil {
			return nil, nil, err
		}
		g, ok := groups[key]
		if !ok {
			g = &aggregateGroup{}
			groups[key] = g
			order = append(order, key)
		}
		g.rows = append(g.rows, row)
	}

	if len(groupBy) == 0 && len(order) == 0 {
		// No rows matched; still emit one empty group so that e.g.
		// SELECT COUNT(*) FROM t WHERE false returns a zero row, not no rows.
		groups[""] = &aggregateGroup{}
		order = append(order, "")
	}

	return groups, order, nil

}

func groupKey(groupBy []jql.Expr, row *storage.Row, schema *storage.TableSchema) (string, error) {
	if len(groupBy) == 0 {
		return "", nil
	}
	key := ""
	for _, expr := range groupBy {
		v, err := eval.Eval(expr, row, schema)
		if err != nil {
			return "", err
		}
		key += fmt.Sprintf("%v\x00", types.Display(v))
	}
	return key, nil
}

// evalProjectionOverGroup evaluates an aggregate function call via an
// Aggregator fed every row in the group, or a plain GROUP BY column/
// expression against the group's first row (every row in a group agrees
// on its GROUP BY columns by construction).
func evalProjectionOverGroup(p jql.Expr, rows []*storage.Row, schema *storage.TableSchema) (types.Value, error) {

	if fn, ok := p.(*jql.FunctionCall); ok && eval.IsAggregate(fn.Name) {
		return evalAggregateCall(fn, rows, schema)
	}

	if len(rows) == 0 {
		return types.Null(types.KindNull), nil
	}

	return eval.Eval(p, rows[0], schema)

}

func evalAggregateCall(fn *jql.FunctionCall, rows []*storage.Row, schema *storage.TableSchema) (types.Value, error) {

	agg, err := eval.NewAggregator(fn.Name)
	if err != nil {
		return types.Value{}, err
	}

	if len(fn.Args) != 1 {
		return types.Value{}, fmt.Errorf("%s takes exactly one argument", fn.Name)
	}

	if col, ok := fn.Args[0].(*jql.Column); ok && col.Name == "*" {
		for range rows {
			agg.AddStar()
		}
		return agg.Result(), nil
	}

	for _, row := range rows {
		v, err := eval.Eval(fn.Args[0], row, schema)
		if err != nil {
			return types.Value{}, err
		}
		agg.Add(v)
	}

	return agg.Result(), nil

}

func evalHaving(having jql.Expr, rows []*storage.Row, schema *storage.TableSchema) (bool, error) {
	if fn, ok := having.(*jql.FunctionCall); ok && eval.IsAggregate(fn.Name) {
		v, err := evalAggregateCall(fn, rows, schema)
		if err != nil {
			return false, err
		}
		return v.IsTrue(), nil
	}
	if bin, ok := having.(*jql.BinaryOp); ok {
		return evalHavingBinary(bin, rows, schema)
	}
	if len(rows) == 0 {
		return false, nil
	}
	v, err := eval.Eval(having, rows[0], schema)
	if err != nil {
		return false, err
	}
	return v.IsTrue(), nil
}

func evalHavingBinary(bin *jql.BinaryOp, rows []*storage.Row, schema *storage.TableSchema) (bool, error) {

	lhs, err := evalProjectionOverGroup(bin.Lhs, rows, schema)
	if err != nil {
		return false, err
	}
	rhs, err := evalProjectionOverGroup(bin.Rhs, rows, schema)
	if err != nil {
		return false, err
	}

	// align rhs onto lhs's Kind first, so e.g. a double SUM is not
	// compared field-by-field against a uint literal.
	if !lhs.IsNull && !rhs.IsNull && lhs.Kind != rhs.Kind {
		cast, err := types.CastTo(rhs, lhs.Kind)
		if err != nil {
			return false, err
		}
		rhs = cast
	}

	switch bin.Op {
	case jql.EQ:
		return eval.Compare(lhs, rhs) == 0, nil
	case jql.NEQ:
		return eval.Compare(lhs, rhs) != 0, nil
	case jql.LT:
		return eval.Compare(lhs, rhs) < 0, nil
	case jql.LTE:
		return eval.Compare(lhs, rhs) <= 0, nil
	case jql.GT:
		return eval.Compare(lhs, rhs) > 0, nil
	case jql.GTE:
		return eval.Compare(lhs, rhs) >= 0, nil
	}

	return false, fmt.Errorf("unsupported HAVING operator")

}
