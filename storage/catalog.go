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

package storage

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jugadbase/jugadb/jql"
	"github.com/jugadbase/jugadb/types"
)

func kindFromU32(v uint32) types.Kind { return types.Kind(v) }

const (
	magic            = 0x4A554741 // "JUGA"
	tableCountOffset = 4
)

// Database is the on-disk catalog: a table directory mapping names to
// schemas, mirroring the get-or-create-by-name map pattern a namespace/
// database/table directory uses, narrowed to a single catalog here since
// there is no multi-tenant namespace hierarchy in scope.
type Database struct {
	root string

	order  []string
	tables map[string]*TableSchema

	heaps  map[string]*Heap
	toasts map[string]*Toast
	seqs   map[string]*Sequence
}

// Open loads the catalog at path (a directory holding the catalog file
// plus one heap/toast file pair per table), creating it if absent.
func Open(path string) (*Database, error) {

	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, err
	}

	db := &Database{
		root:   path,
		tables: make(map[string]*TableSchema),
		heaps:  make(map[string]*Heap),
		toasts: make(map[string]*Toast),
		seqs:   make(map[string]*Sequence),
	}

	catPath := filepath.Join(path, "catalog.juga")
	data, err := os.ReadFile(catPath)
	if os.IsNotExist(err) {
		return db, nil
	}
	if err != nil {
		return nil, err
	}

	if err := db.decodeCatalog(data); err != nil {
		return nil, err
	}

	for name := range db.tables {
		if err := db.openTableFiles(name); err != nil {
			return nil, err
		}
		if err := db.heaps[name].Decode(db.tables[name]); err != nil {
			return nil, err
		}
	}

	return db, nil

}

func (db *Database) openTableFiles(name string) error {
	heap, err := OpenHeap(filepath.Join(db.root, name+".heap"))
	if err != nil {
		return err
	}
	toast, err := OpenToast(filepath.Join(db.root, name+".toast"))
	if err != nil {
		return err
	}
	db.heaps[name] = heap
	db.toasts[name] = toast
	db.seqs[name] = &Sequence{}
	return nil
}

// GetTable returns the schema for name, or nil.
func (db *Database) GetTable(name string) *TableSchema {
	return db.tables[name]
}

// TableNames returns every table name in creation order.
func (db *Database) TableNames() []string {
	return db.order
}

// Heap returns the row heap for name.
func (db *Database) Heap(name string) *Heap { return db.heaps[name] }

// Toast returns the TOAST store for name.
func (db *Database) Toast(name string) *Toast { return db.toasts[name] }

// Sequence returns the SERIAL counter for name.
func (db *Database) Sequence(name string) *Sequence { return db.seqs[name] }

// CreateTable appends schema to the catalog, initializing its heap/toast/
// sequence. It errors if the table already exists.
func (db *Database) CreateTable(schema *TableSchema) error {
	if _, ok := db.tables[schema.TableName]; ok {
		return fmt.Errorf("table %q already exists", schema.TableName)
	}
	db.tables[schema.TableName] = schema
	db.order = append(db.order, schema.TableName)
	return db.openTableFiles(schema.TableName)
}

// DropTable removes name and its backing files from the catalog.
func (db *Database) DropTable(name string) error {
	if _, ok := db.tables[name]; !ok {
		return fmt.Errorf("table %q does not exist", name)
	}
	delete(db.tables, name)
	delete(db.heaps, name)
	delete(db.toasts, name)
	delete(db.seqs, name)
	for i, n := range db.order {
		if n == name {
			db.order = append(db.order[:i], db.order[i+1:]...)
			break
		}
	}
	os.Remove(filepath.Join(db.root, name+".heap"))
	os.Remove(filepath.Join(db.root, name+".toast"))
	return nil
}

// Flush persists the catalog header plus every table's heap and toast
// store.
func (db *Database) Flush() error {

	data, err := db.encodeCatalog()
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(db.root, "catalog.juga"), data, 0o644); err != nil {
		return err
	}

	for name, schema := range db.tables {
		if err := db.heaps[name].Flush(schema); err != nil {
			return err
		}
		if err := db.toasts[name].Flush(); err != nil {
			return err
		}
	}

	return nil

}

// encodeCatalog writes [u32 magic][u32 table_count at tableCountOffset]
// [table_entry]*, one entry per table in creation order.
func (db *Database) encodeCatalog() ([]byte, error) {

	var buf bytes.Buffer
	e := NewEncoder(&buf)

	if err := e.U32(magic); err != nil {
		return nil, err
	}
	if err := e.U32(uint32(len(db.order))); err != nil { // at tableCountOffset
		return nil, err
	}

	for _, name := range db.order {
		if err := encodeTableEntry(e, db.tables[name]); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil

}

func encodeTableEntry(e *Encoder, t *TableSchema) error {

	if err := e.Bytes([]byte(t.TableName)); err != nil {
		return err
	}
	if err := e.U8(uint8(len(t.Columns))); err != nil {
		return err
	}

	for _, c := range t.Columns {
		if err := e.Bytes([]byte(c.Name)); err != nil {
			return err
		}
		if err := e.U32(uint32(c.Type)); err != nil {
			return err
		}
		if err := e.Bool(c.IsArray); err != nil {
			return err
		}
		if err := e.U32(uint32(c.VarcharLen)); err != nil {
			return err
		}
		if err := e.U32(uint32(c.DecimalP)); err != nil {
			return err
		}
		if err := e.U32(uint32(c.DecimalS)); err != nil {
			return err
		}
		if err := e.Bool(c.IsPrimaryKey); err != nil {
			return err
		}
		if err := e.Bool(c.IsUnique); err != nil {
			return err
		}
		if err := e.Bool(c.IsNotNull); err != nil {
			return err
		}
		if err := e.Bool(c.IsIndex); err != nil {
			return err
		}
		if err := e.Bool(c.HasSequence); err != nil {
			return err
		}
		if err := e.Bool(c.HasDefault); err != nil {
			return err
		}
		if err := e.Bytes([]byte(c.DefaultText)); err != nil {
			return err
		}
		if err := e.Bool(c.HasCheck); err != nil {
			return err
		}
		if err := e.Bytes([]byte(c.CheckText)); err != nil {
			return err
		}
		if err := e.Bool(c.IsForeignKey); err != nil {
			return err
		}
		if err := e.Bytes([]byte(c.ForeignTable)); err != nil {
			return err
		}
		if err := e.Bytes([]byte(c.ForeignColumn)); err != nil {
			return err
		}
		if err := e.U8(uint8(c.OnDelete)); err != nil {
			return err
		}
		if err := e.U8(uint8(c.OnUpdate)); err != nil {
			return err
		}
	}

	return nil

}

func (db *Database) decodeCatalog(data []byte) error {

	d := NewDecoder(bytes.NewReader(data))

	m, err := d.U32()
	if err != nil {
		return err
	}
	if m != magic {
		return fmt.Errorf("corrupt catalog: bad magic %x", m)
	}

	count, err := d.U32()
	if err != nil {
		return err
	}

	for i := uint32(0); i < count; i++ {
		schema, err := decodeTableEntry(d)
		if err != nil {
			return err
		}
		db.tables[schema.TableName] = schema
		db.order = append(db.order, schema.TableName)
	}

	return nil

}

func decodeTableEntry(d *Decoder) (*TableSchema, error) {

	nameBytes, err := d.Bytes()
	if err != nil {
		return nil, err
	}
	t := &TableSchema{TableName: string(nameBytes)}

	colCount, err := d.U8()
	if err != nil {
		return nil, err
	}

	for i := uint8(0); i < colCount; i++ {
		c, err := decodeColumnEntry(d)
		if err != nil {
			return nil, err
		}
		t.Columns = append(t.Columns, c)
	}
	t.ColumnCount = len(t.Columns)

	return t, nil

}

func decodeColumnEntry(d *Decoder) (*ColumnSchema, error) {

	name, err := d.Bytes()
	if err != nil {
		return nil, err
	}
	kind, err := d.U32()
	if err != nil {
		return nil, err
	}
	isArray, err := d.Bool()
	if err != nil {
		return nil, err
	}
	varcharLen, err := d.U32()
	if err != nil {
		return nil, err
	}
	decimalP, err := d.U32()
	if err != nil {
		return nil, err
	}
	decimalS, err := d.U32()
	if err != nil {
		return nil, err
	}
	isPK, err := d.Bool()
	if err != nil {
		return nil, err
	}
	isUnique, err := d.Bool()
	if err != nil {
		return nil, err
	}
	isNotNull, err := d.Bool()
	if err != nil {
		return nil, err
	}
	isIndex, err := d.Bool()
	if err != nil {
		return nil, err
	}
	hasSeq, err := d.Bool()
	if err != nil {
		return nil, err
	}
	hasDefault, err := d.Bool()
	if err != nil {
		return nil, err
	}
	defaultText, err := d.Bytes()
	if err != nil {
		return nil, err
	}
	hasCheck, err := d.Bool()
	if err != nil {
		return nil, err
	}
	checkText, err := d.Bytes()
	if err != nil {
		return nil, err
	}
	isFK, err := d.Bool()
	if err != nil {
		return nil, err
	}
	foreignTable, err := d.Bytes()
	if err != nil {
		return nil, err
	}
	foreignColumn, err := d.Bytes()
	if err != nil {
		return nil, err
	}
	onDelete, err := d.U8()
	if err != nil {
		return nil, err
	}
	onUpdate, err := d.U8()
	if err != nil {
		return nil, err
	}

	c := &ColumnSchema{
		Name:          string(name),
		Type:          kindFromU32(kind),
		IsArray:       isArray,
		VarcharLen:    int(varcharLen),
		DecimalP:      int(decimalP),
		DecimalS:      int(decimalS),
		IsPrimaryKey:  isPK,
		IsUnique:      isUnique,
		IsNotNull:     isNotNull,
		IsIndex:       isIndex,
		HasSequence:   hasSeq,
		HasDefault:    hasDefault,
		DefaultText:   string(defaultText),
		HasCheck:      hasCheck,
		CheckText:     string(checkText),
		IsForeignKey:  isFK,
		ForeignTable:  string(foreignTable),
		ForeignColumn: string(foreignColumn),
		OnDelete:      jql.ReferentialAction(onDelete),
		OnUpdate:      jql.ReferentialAction(onUpdate),
	}

	if c.HasDefault && c.DefaultText != "" {
		if expr, err := jql.ParseExpr(c.DefaultText); err == nil {
			c.Default = expr
		}
	}
	if c.HasCheck && c.CheckText != "" {
		if expr, err := jql.ParseExpr(c.CheckText); err == nil {
			c.CheckExpr = expr
		}
	}

	return c, nil

}
