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
	"runtime/debug"
	"sync"

	"github.com/rs/xid"

	"github.com/jugadbase/jugadb/btree"
	"github.com/jugadbase/jugadb/jql"
	"github.com/jugadbase/jugadb/log"
	"github.com/jugadbase/jugadb/storage"
)

// Database is the engine's single entry point: one catalog, its table
// heaps/TOAST stores, and an index cache keyed by "table.column".
//
// The engine is single-threaded and synchronous per the concurrency
// model: one statement runs to completion before the next, and CASCADE/
// SET NULL referential actions re-enter processLocked with a fresh query
// string rather than sharing an in-flight lexer/parser instance. mu
// guards against concurrent callers driving the same Database from
// multiple goroutines, which the engine does not otherwise expect.
type Database struct {
	store   *storage.Database
	indexes *btree.Cache

	mu sync.Mutex
}

// Open loads (or creates) the database rooted at path.
func Open(path string) (*Database, error) {

	store, err := storage.Open(path)
	if err != nil {
		return nil, err
	}

	cache, err := btree.NewCache(path)
	if err != nil {
		return nil, err
	}

	return &Database{store: store, indexes: cache}, nil

}

// Close flushes the catalog and every table's heap/TOAST store back to
// disk. Cached indexes are not written by Close.
func (db *Database) Close() error {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.store.Flush()
}

// Process parses query and executes the resulting statement, recovering
// from any panic raised during execution so one bad statement cannot take
// down the process, per the fatal-vs-recoverable error split.
func (db *Database) Process(query string) (*Result, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.processLocked(query)
}

// processLocked is Process's body without the lock, so that referential
// actions already holding db.mu can re-enter it with a synthesized query
// instead of sharing an in-flight lexer/parser.
func (db *Database) processLocked(query string) (res *Result, err error) {

	// traceID correlates this statement's log lines, since a recovered
	// panic and its originating parse/execute entries are logged as
	// separate events rather than one.
	traceID := xid.New().String()

	defer func() {
		if r := recover(); r != nil {
			log.WithField("trace", traceID).WithField("stack", string(debug.Stack())).Errorf("engine: recovered from panic: %v", r)
			res, err = errorResult(fmt.Errorf("internal error: %v", r)), nil
		}
	}()

	stmt, perr := jql.Parse(query)
	if perr != nil {
		log.WithField("trace", traceID).WithField("query", query).Debugf("engine: parse error: %v", perr)
		return errorResult(perr), nil
	}

	if u, ok := stmt.(*jql.UnknownStatement); ok {
		return errorResult(u.Err), nil
	}

	log.WithField("trace", traceID).WithField("query", query).Debugln("engine: executing statement")

	res, xerr := db.operate(stmt)
	if xerr != nil {
		log.WithField("trace", traceID).WithField("query", query).Debugf("engine: execution error: %v", xerr)
		return errorResult(xerr), nil
	}

	return res, nil

}

func (db *Database) operate(stmt jql.Statement) (*Result, error) {
	switch s := stmt.(type) {
	case *jql.CreateStatement:
		return db.executeCreate(s)
	case *jql.InsertStatement:
		return db.executeInsert(s)
	case *jql.SelectStatement:
		return db.executeSelect(s)
	case *jql.UpdateStatement:
		return db.executeUpdate(s)
	case *jql.DeleteStatement:
		return db.executeDelete(s)
	case *jql.DropStatement:
		return db.executeDrop(s)
	}
	return nil, fmt.Errorf("unsupported statement %T", stmt)
}

// indexFor returns the cached B-tree for table.column, building it from
// the table's live rows the first time it is touched.
func (db *Database) indexFor(table string, column *storage.ColumnSchema) (*btree.Tree, error) {

	schema := db.store.GetTable(table)
	if schema == nil {
		return nil, fmt.Errorf("table %q does not exist", table)
	}

	tree, err := db.indexes.Get(table, column.Name, column.Type, column.VarcharLen)
	if err != nil {
		return nil, err
	}

	if len(tree.Root.Keys) == 0 && len(tree.Root.Children) == 0 {
		idx := schema.ColumnIndex(column.Name)
		for _, row := range db.store.Heap(table).All() {
			tree.Insert(row.Values[idx], row.ID)
		}
	}

	return tree, nil

}
