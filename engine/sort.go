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
	"github.com/jugadbase/jugadb/eval"
	"github.com/jugadbase/jugadb/jql"
	"github.com/jugadbase/jugadb/storage"
)

// sortRows orders rows in place against an ORDER BY term list, using a
// quicksort over the successive sort keys rather than a single composite
// key, so ties on an earlier term fall through to the next.
func sortRows(rows []*storage.Row, terms []jql.OrderTerm, schema *storage.TableSchema) {
	if len(terms) == 0 {
		return
	}
	quicksortRows(rows, 0, len(rows)-1, terms, schema)
}

func quicksortRows(rows []*storage.Row, lo, hi int, terms []jql.OrderTerm, schema *storage.TableSchema) {
	if lo >= hi {
		return
	}
	p := partitionRows(rows, lo, hi, terms, schema)
	quicksortRows(rows, lo, p-1, terms, schema)
	quicksortRows(rows, p+1, hi, terms, schema)
}

func partitionRows(rows []*storage.Row, lo, hi int, terms []jql.OrderTerm, schema *storage.TableSchema) int {
	pivot := rows[hi]
	i := lo
	for j := lo; j < hi; j++ {
		if compareRows(rows[j], pivot, terms, schema) < 0 {
			rows[i], rows[j] = rows[j], rows[i]
			i++
		}
	}
	rows[i], rows[hi] = rows[hi], rows[i]
	return i
}

// compareRows evaluates each ORDER BY term against both rows in turn,
// returning the first non-zero comparison (negated when the term is DESC).
func compareRows(a, b *storage.Row, terms []jql.OrderTerm, schema *storage.TableSchema) int {
	for _, term := range terms {
		av, errA := eval.Eval(term.Expr, a, schema)
		bv, errB := eval.Eval(term.Expr, b, schema)
		if errA != nil || errB != nil {
			continue
		}
		c := eval.Compare(av, bv)
		if term.Desc {
			c = -c
		}
		if c != 0 {
			return c
		}
	}
	return 0
}
