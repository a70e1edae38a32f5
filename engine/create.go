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
	"github.com/jugadbase/jugadb/storage"
)

// executeCreate validates there is no duplicate table, appends the
// schema to the catalog, and initializes the primary-key B-tree (and
// sequence, if any column has SERIAL).
func (db *Database) executeCreate(stmt *jql.CreateStatement) (*Result, error) {

	if db.store.GetTable(stmt.Table) != nil {
		return nil, fmt.Errorf("table %q already exists", stmt.Table)
	}

	schema, err := storage.NewTableSchema(stmt)
	if err != nil {
		return nil, err
	}

	if err := validateSchema(schema); err != nil {
		return nil, err
	}

	if err := db.store.CreateTable(schema); err != nil {
		return nil, err
	}

	if pk := schema.PrimaryKey(); pk != nil {
		if _, err := db.indexFor(schema.TableName, pk); err != nil {
			return nil, err
		}
	}

	return okResult(0), nil

}

// validateSchema enforces the column-definition invariants that are not
// already guaranteed by the grammar: PRIMARY KEY implies UNIQUE and NOT
// NULL, and FOREIGN KEY requires both a table and column reference.
func validateSchema(schema *storage.TableSchema) error {
	for _, c := range schema.Columns {
		if c.IsPrimaryKey {
			c.IsUnique = true
			c.IsNotNull = true
		}
		if c.IsForeignKey && (c.ForeignTable == "" || c.ForeignColumn == "") {
			return fmt.Errorf("column %q: FOREIGN KEY requires both a referenced table and column", c.Name)
		}
	}
	return nil
}

func (db *Database) executeDrop(stmt *jql.DropStatement) (*Result, error) {
	if err := db.store.DropTable(stmt.Table); err != nil {
		return nil, err
	}
	return okResult(0), nil
}
