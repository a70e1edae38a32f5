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
	"io"
	"os"
)

// rowsPerPage bounds how many rows a single logical page groups together
// for free-space accounting purposes; RowID.PageID is row_id / rowsPerPage.
const rowsPerPage = 64

// Heap is the row storage for one table: an ordered, RowID-addressed set
// of live rows, held in memory and flushed to a single heap file on Flush.
// Deleted rows leave a tombstone slot so RowIDs already handed out (e.g.
// held by a B-tree leaf) are never reused for a different row.
type Heap struct {
	path   string
	rows   map[uint16]*Row
	nextID uint16
}

// OpenHeap loads (or creates) the heap file for one table.
func OpenHeap(path string) (*Heap, error) {

	h := &Heap{path: path, rows: make(map[uint16]*Row)}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return h, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return h, h.load(f)

}

func (h *Heap) load(f *os.File) error {

	d := NewDecoder(f)

	count, err := d.U32()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return err
	}

	for i := uint32(0); i < count; i++ {
		rowID, err := d.U16()
		if err != nil {
			return err
		}
		tombstone, err := d.Bool()
		if err != nil {
			return err
		}
		n, err := d.U32()
		if err != nil {
			return err
		}
		raw, err := d.Raw(int(n))
		if err != nil {
			return err
		}
		if rowID >= h.nextID {
			h.nextID = rowID + 1
		}
		if tombstone {
			continue
		}
		h.rows[rowID] = &Row{ID: h.rowIDOf(rowID), Values: nil}
		h.rows[rowID].rawForReload(raw)
	}

	return nil

}

// rawForReload stashes the still-schema-opaque bytes until Heap.Decode
// decodes them with the live TableSchema (the heap itself is schema-blind).
func (r *Row) rawForReload(raw []byte) { r.raw = raw }

func (h *Heap) rowIDOf(rowID uint16) RowID {
	return RowID{PageID: uint32(rowID) / rowsPerPage, RowID: rowID}
}

// Decode replaces every row's raw bytes with its decoded Values, once the
// caller has a TableSchema in hand.
func (h *Heap) Decode(schema *TableSchema) error {
	for id, row := range h.rows {
		if row.Values != nil {
			continue
		}
		decoded, err := DecodeRow(schema, row.ID, row.raw)
		if err != nil {
			return fmt.Errorf("row %d: %w", id, err)
		}
		decoded.raw = nil
		h.rows[id] = decoded
	}
	return nil
}

// All returns every live row, in RowID order.
func (h *Heap) All() []*Row {
	ids := make([]uint16, 0, len(h.rows))
	for id := range h.rows {
		ids = append(ids, id)
	}
	sortUint16(ids)
	out := make([]*Row, 0, len(ids))
	for _, id := range ids {
		out = append(out, h.rows[id])
	}
	return out
}

// Get returns the row at rowID, or nil.
func (h *Heap) Get(rowID uint16) *Row {
	return h.rows[rowID]
}

// InsertRow stores row under a freshly allocated RowID and returns it.
func (h *Heap) InsertRow(row *Row) *Row {
	id := h.nextID
	h.nextID++
	row.ID = h.rowIDOf(id)
	h.rows[id] = row
	return row
}

// Delete removes the row at rowID.
func (h *Heap) Delete(rowID uint16) {
	delete(h.rows, rowID)
}

// Flush persists every live row (plus tombstones up to nextID, so RowIDs
// already consumed by deletes are not reused on reload) to the heap file.
func (h *Heap) Flush(schema *TableSchema) error {

	var buf bytes.Buffer
	e := NewEncoder(&buf)

	if err := e.U32(uint32(h.nextID)); err != nil {
		return err
	}

	for id := uint16(0); id < h.nextID; id++ {
		row, live := h.rows[id]
		if err := e.U16(id); err != nil {
			return err
		}
		if err := e.Bool(!live); err != nil {
			return err
		}
		if !live {
			if err := e.U32(0); err != nil {
				return err
			}
			continue
		}
		raw, err := EncodeRow(schema, row)
		if err != nil {
			return err
		}
		if err := e.U32(uint32(len(raw))); err != nil {
			return err
		}
		if err := e.Raw(raw); err != nil {
			return err
		}
	}

	return os.WriteFile(h.path, buf.Bytes(), 0o644)

}

func sortUint16(s []uint16) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
