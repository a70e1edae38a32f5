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

	"github.com/jugadbase/jugadb/types"
)

// Toast is the out-of-line store for values whose encoded length exceeds
// types.ToastChunkSize. Chunks are appended to a single auxiliary file per
// table and addressed by a monotonically increasing toast_id; the row
// itself stores only the {is_toast, toast_id} descriptor.
type Toast struct {
	path   string
	chunks map[uint32][]byte
	nextID uint32
}

// OpenToast loads (or creates) the TOAST store for one table.
func OpenToast(path string) (*Toast, error) {

	t := &Toast{path: path, chunks: make(map[uint32][]byte)}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return t, nil
	}
	if err != nil {
		return nil, err
	}

	d := NewDecoder(bytes.NewReader(data))
	count, err := d.U32()
	if err != nil {
		return t, nil // empty file
	}
	for i := uint32(0); i < count; i++ {
		id, err := d.U32()
		if err != nil {
			return nil, err
		}
		chunk, err := d.Bytes()
		if err != nil {
			return nil, err
		}
		t.chunks[id] = chunk
		if id >= t.nextID {
			t.nextID = id + 1
		}
	}

	return t, nil

}

// Store relocates b out of line and returns its descriptor.
func (t *Toast) Store(b []byte) types.Toast {
	id := t.nextID
	t.nextID++
	t.chunks[id] = b
	return types.Toast{ToastID: id, Length: uint32(len(b))}
}

// Concat reassembles the bytes behind a descriptor; the name mirrors
// toast_concat from the original storage engine this is modelled on.
func (t *Toast) Concat(ref types.Toast) ([]byte, error) {
	chunk, ok := t.chunks[ref.ToastID]
	if !ok {
		return nil, fmt.Errorf("toast reference %d missing", ref.ToastID)
	}
	return chunk, nil
}

// Flush persists every stored chunk.
func (t *Toast) Flush() error {
	var buf bytes.Buffer
	e := NewEncoder(&buf)
	if err := e.U32(uint32(len(t.chunks))); err != nil {
		return err
	}
	for id, chunk := range t.chunks {
		if err := e.U32(id); err != nil {
			return err
		}
		if err := e.Bytes(chunk); err != nil {
			return err
		}
	}
	return os.WriteFile(t.path, buf.Bytes(), 0o644)
}

// Wrap encodes v into the row and, if the encoding would exceed
// ToastChunkSize, relocates it out of line and returns a toast-tagged
// descriptor value instead.
func (t *Toast) Wrap(v types.Value) (types.Value, error) {
	if v.IsNull || v.IsArray {
		return v, nil
	}
	size := types.SizeOfValue(v)
	if size <= types.ToastChunkSize {
		return v, nil
	}
	var buf bytes.Buffer
	if err := EncodeValue(NewEncoder(&buf), v); err != nil {
		return v, err
	}
	ref := t.Store(buf.Bytes())
	return types.Value{Kind: v.Kind, IsToast: true, Toast: ref}, nil
}

// Resolve reverses Wrap: given a toast-tagged value, decode the
// original value back out of the chunk store.
func (t *Toast) Resolve(v types.Value, varcharLen int) (types.Value, error) {
	if !v.IsToast {
		return v, nil
	}
	raw, err := t.Concat(v.Toast)
	if err != nil {
		return v, err
	}
	return DecodeValue(NewDecoder(bytes.NewReader(raw)), v.Kind, varcharLen)
}

// ResolveRow returns row with every TOAST-relocated column resolved back
// to its real value, schema column order giving each value its VarcharLen.
// row itself is returned unchanged when nothing in it is toasted, so a
// caller can always work off the returned row without an extra branch.
func (t *Toast) ResolveRow(schema *TableSchema, row *Row) (*Row, error) {

	toasted := false
	for _, v := range row.Values {
		if v.IsToast {
			toasted = true
			break
		}
	}
	if !toasted {
		return row, nil
	}

	values := append([]types.Value(nil), row.Values...)
	for i, col := range schema.Columns {
		if !values[i].IsToast {
			continue
		}
		resolved, err := t.Resolve(values[i], col.VarcharLen)
		if err != nil {
			return nil, err
		}
		values[i] = resolved
	}

	return &Row{ID: row.ID, Values: values}, nil

}
