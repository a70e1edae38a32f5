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

// Package storage implements the row/page codec, TOAST out-of-line
// storage, and the table catalog the engine reads and writes against.
package storage

import (
	"fmt"

	"github.com/jugadbase/jugadb/jql"
	"github.com/jugadbase/jugadb/types"
)

// ColumnSchema is the persisted, in-memory description of one column.
// read_table_schema in the source this engine is modelled on comments out
// the constraint payload; this implementation persists the full set (NOT
// NULL, UNIQUE, CHECK, DEFAULT, FK, ON DELETE/UPDATE) so semantic checks
// survive a reload.
type ColumnSchema struct {
	Name string
	Type types.Kind

	VarcharLen int
	DecimalP   int
	DecimalS   int
	IsArray    bool

	IsPrimaryKey bool
	IsUnique     bool
	IsNotNull    bool
	IsIndex      bool
	HasSequence  bool

	HasDefault  bool
	Default     jql.Expr
	DefaultText string

	HasCheck  bool
	CheckExpr jql.Expr
	CheckText string

	IsForeignKey  bool
	ForeignTable  string
	ForeignColumn string
	OnDelete      jql.ReferentialAction
	OnUpdate      jql.ReferentialAction
}

// TableSchema is the catalog entry for one table.
type TableSchema struct {
	TableName   string
	ColumnCount int
	Columns     []*ColumnSchema
}

// ColumnIndex returns the position of name within the schema, or -1.
func (t *TableSchema) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// PrimaryKey returns the single PRIMARY KEY column, if any.
func (t *TableSchema) PrimaryKey() *ColumnSchema {
	for _, c := range t.Columns {
		if c.IsPrimaryKey {
			return c
		}
	}
	return nil
}

// KindFromTypeToken maps a jql type keyword token to a types.Kind.
func KindFromTypeToken(tok jql.Token) (types.Kind, error) {
	switch tok {
	case jql.T_INT, jql.T_SERIAL:
		return types.KindInt, nil
	case jql.T_UINT:
		return types.KindUint, nil
	case jql.T_VARCHAR:
		return types.KindVarchar, nil
	case jql.T_CHAR:
		return types.KindChar, nil
	case jql.T_TEXT:
		return types.KindText, nil
	case jql.T_BOOL:
		return types.KindBool, nil
	case jql.T_FLOAT:
		return types.KindFloat, nil
	case jql.T_DOUBLE:
		return types.KindDouble, nil
	case jql.T_DECIMAL:
		return types.KindDecimal, nil
	case jql.T_DATE:
		return types.KindDate, nil
	case jql.T_TIME:
		return types.KindTime, nil
	case jql.T_TIMETZ:
		return types.KindTimeTZ, nil
	case jql.T_DATETIME:
		return types.KindDatetime, nil
	case jql.T_DATETIMETZ:
		return types.KindDatetimeTZ, nil
	case jql.T_TIMESTAMP:
		return types.KindTimestamp, nil
	case jql.T_TIMESTAMPTZ:
		return types.KindTimestampTZ, nil
	case jql.T_INTERVAL:
		return types.KindInterval, nil
	case jql.T_BLOB:
		return types.KindBlob, nil
	case jql.T_JSON:
		return types.KindJSON, nil
	case jql.T_UUID:
		return types.KindUUID, nil
	}
	return types.KindNull, fmt.Errorf("unknown column type token %s", tok)
}

// NewTableSchema builds a catalog entry from a parsed CREATE TABLE.
func NewTableSchema(stmt *jql.CreateStatement) (*TableSchema, error) {

	ts := &TableSchema{TableName: stmt.Table}

	for _, col := range stmt.Columns {
		kind, err := KindFromTypeToken(col.Type)
		if err != nil {
			return nil, err
		}
		cs := &ColumnSchema{
			Name:          col.Name,
			Type:          kind,
			VarcharLen:    col.VarcharLen,
			DecimalP:      col.DecimalP,
			DecimalS:      col.DecimalS,
			IsArray:       col.IsArray,
			IsPrimaryKey:  col.IsPrimaryKey,
			IsUnique:      col.IsUnique,
			IsNotNull:     col.IsNotNull,
			IsIndex:       col.IsIndex,
			HasSequence:   col.HasSequence,
			HasDefault:    col.HasDefault,
			Default:       col.Default,
			DefaultText:   col.DefaultText,
			HasCheck:      col.HasCheck,
			CheckExpr:     col.Check,
			CheckText:     col.CheckText,
			IsForeignKey:  col.IsForeignKey,
			ForeignTable:  col.ForeignTable,
			ForeignColumn: col.ForeignColumn,
			OnDelete:      col.OnDelete,
			OnUpdate:      col.OnUpdate,
		}
		ts.Columns = append(ts.Columns, cs)
	}

	ts.ColumnCount = len(ts.Columns)

	return ts, nil

}
