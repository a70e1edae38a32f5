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

package btree

import (
	"bytes"
	"fmt"
	"os"

	"github.com/jugadbase/jugadb/storage"
	"github.com/jugadbase/jugadb/types"
)

// Save persists t to path: a header (id, order, key type, varchar len)
// followed by the root node, recursing depth-first into children.
func Save(t *Tree, path string) error {

	var buf bytes.Buffer
	e := storage.NewEncoder(&buf)

	if err := e.U32(t.ID); err != nil {
		return err
	}
	if err := e.U32(uint32(t.Order)); err != nil {
		return err
	}
	if err := e.U32(uint32(t.KeyType)); err != nil {
		return err
	}
	if err := e.U32(uint32(t.Varchar)); err != nil {
		return err
	}

	if err := saveNode(e, t.Root); err != nil {
		return err
	}

	return os.WriteFile(path, buf.Bytes(), 0o644)

}

func saveNode(e *storage.Encoder, n *Node) error {

	if err := e.Bool(n.IsLeaf); err != nil {
		return err
	}
	if err := e.U32(uint32(len(n.Keys))); err != nil {
		return err
	}

	for i, key := range n.Keys {
		if err := storage.EncodeValue(e, key); err != nil {
			return err
		}
		if err := e.U32(n.RowPointers[i].PageID); err != nil {
			return err
		}
		if err := e.U16(n.RowPointers[i].RowID); err != nil {
			return err
		}
	}

	if !n.IsLeaf {
		for _, child := range n.Children {
			if err := saveNode(e, child); err != nil {
				return err
			}
		}
	}

	return nil

}

// Load reads a tree previously written by Save.
func Load(path string) (*Tree, error) {

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	d := storage.NewDecoder(bytes.NewReader(data))

	id, err := d.U32()
	if err != nil {
		return nil, err
	}
	order, err := d.U32()
	if err != nil {
		return nil, err
	}
	keyType, err := d.U32()
	if err != nil {
		return nil, err
	}
	varchar, err := d.U32()
	if err != nil {
		return nil, err
	}

	t := &Tree{
		ID:      id,
		Order:   int(order),
		KeyType: types.Kind(keyType),
		Varchar: int(varchar),
	}

	root, err := loadNode(d, t.KeyType, t.Varchar)
	if err != nil {
		return nil, err
	}
	t.Root = root

	return t, nil

}

func loadNode(d *storage.Decoder, keyType types.Kind, varcharLen int) (*Node, error) {

	isLeaf, err := d.Bool()
	if err != nil {
		return nil, err
	}
	count, err := d.U32()
	if err != nil {
		return nil, err
	}

	n := &Node{IsLeaf: isLeaf}

	for i := uint32(0); i < count; i++ {
		key, err := storage.DecodeValue(d, keyType, varcharLen)
		if err != nil {
			return nil, fmt.Errorf("key %d: %w", i, err)
		}
		pageID, err := d.U32()
		if err != nil {
			return nil, err
		}
		rowID, err := d.U16()
		if err != nil {
			return nil, err
		}
		n.Keys = append(n.Keys, key)
		n.RowPointers = append(n.RowPointers, storage.RowID{PageID: pageID, RowID: rowID})
	}

	if !isLeaf {
		for i := uint32(0); i <= count; i++ {
			child, err := loadNode(d, keyType, varcharLen)
			if err != nil {
				return nil, err
			}
			n.Children = append(n.Children, child)
		}
	}

	return n, nil

}
