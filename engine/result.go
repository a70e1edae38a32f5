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

// Package engine implements the query executor: CREATE/INSERT/SELECT/
// UPDATE/DELETE dispatch, ORDER BY sorting, and referential actions.
package engine

import "github.com/jugadbase/jugadb/types"

// Code is the closed set of execution outcomes an ExecutionResult reports.
type Code int

const (
	CodeOK Code = iota
	CodeError
)

// ExecutionResult is the outcome of one processed statement.
type ExecutionResult struct {
	Code     Code
	Message  string
	Rows     [][]types.Value
	Columns  []string
	RowCount int

	// OwnsRows reports whether Rows was materialized fresh by this
	// statement (a projection or aggregate) rather than aliasing rows
	// already owned by the table heap.
	OwnsRows bool
}

// Result wraps the single ExecutionResult Process returns per statement.
type Result struct {
	Exec ExecutionResult
}

func errorResult(err error) *Result {
	return &Result{Exec: ExecutionResult{Code: CodeError, Message: err.Error()}}
}

func okResult(rowCount int) *Result {
	return &Result{Exec: ExecutionResult{Code: CodeOK, RowCount: rowCount}}
}
