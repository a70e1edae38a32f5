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
	"errors"

	"github.com/jugadbase/jugadb/storage"
	"github.com/jugadbase/jugadb/types"
)

// ErrNotFound is returned by Search when no row is addressed by the key.
var ErrNotFound = errors.New("key not found")

// Node is one B-tree node: a leaf holds only keys and row pointers; an
// internal node additionally holds one more child than it has keys.
type Node struct {
	IsLeaf      bool
	Keys        []types.Value
	RowPointers []storage.RowID
	Children    []*Node
}

// Tree is a typed-key B-tree over one table's column.
type Tree struct {
	ID      uint32
	Root    *Node
	Order   int // fan-out, fixed at tree creation
	KeyType types.Kind
	Varchar int

	// path is the on-disk index file this tree was loaded from/saved to,
	// set by Cache and used by its OnEvict hook.
	path string
}

// New creates an empty tree over keyType, with fan-out computed once from
// the column's key size.
func New(id uint32, keyType types.Kind, varcharLen int) *Tree {
	order := CalculateOrder(KeySizeForType(keyType, varcharLen))
	return &Tree{
		ID:      id,
		Order:   order,
		KeyType: keyType,
		Varchar: varcharLen,
		Root:    &Node{IsLeaf: true},
	}
}

// Search descends comparing with KeyCompare; returns the addressed row or
// ErrNotFound.
func (t *Tree) Search(key types.Value) (storage.RowID, error) {
	return search(t.Root, key)
}

func search(n *Node, key types.Value) (storage.RowID, error) {
	i := 0
	for i < len(n.Keys) && KeyCompare(key, n.Keys[i]) > 0 {
		i++
	}
	if i < len(n.Keys) && KeyCompare(key, n.Keys[i]) == 0 {
		return n.RowPointers[i], nil
	}
	if n.IsLeaf {
		return storage.RowID{}, ErrNotFound
	}
	return search(n.Children[i], key)
}

// Contains reports whether key is present, for UNIQUE/PRIMARY KEY probes.
func (t *Tree) Contains(key types.Value) bool {
	_, err := t.Search(key)
	return err == nil
}

// Insert descends to a leaf; if the target leaf would exceed the tree's
// order, it is split before descent (the classic "split-child-on-full"
// preemptive-split policy), so insertNonfull never has to handle a full
// node directly.
func (t *Tree) Insert(key types.Value, row storage.RowID) {

	root := t.Root

	if len(root.Keys) == t.Order {
		newRoot := &Node{IsLeaf: false, Children: []*Node{root}}
		t.splitChild(newRoot, 0)
		t.Root = newRoot
		t.insertNonfull(newRoot, key, row)
		return
	}

	t.insertNonfull(root, key, row)

}

func (t *Tree) insertNonfull(n *Node, key types.Value, row storage.RowID) {

	i := len(n.Keys) - 1

	if n.IsLeaf {
		n.Keys = append(n.Keys, types.Value{})
		n.RowPointers = append(n.RowPointers, storage.RowID{})
		for i >= 0 && KeyCompare(key, n.Keys[i]) < 0 {
			n.Keys[i+1] = n.Keys[i]
			n.RowPointers[i+1] = n.RowPointers[i]
			i--
		}
		n.Keys[i+1] = key
		n.RowPointers[i+1] = row
		return
	}

	for i >= 0 && KeyCompare(key, n.Keys[i]) < 0 {
		i--
	}
	i++

	if len(n.Children[i].Keys) == t.Order {
		t.splitChild(n, i)
		if KeyCompare(key, n.Keys[i]) > 0 {
			i++
		}
	}

	t.insertNonfull(n.Children[i], key, row)

}

// splitChild splits the full child at index, driven from the parent, per
// btree_split_child.
func (t *Tree) splitChild(parent *Node, index int) {

	child := parent.Children[index]
	mid := len(child.Keys) / 2

	right := &Node{IsLeaf: child.IsLeaf}
	right.Keys = append(right.Keys, child.Keys[mid+1:]...)
	right.RowPointers = append(right.RowPointers, child.RowPointers[mid+1:]...)
	if !child.IsLeaf {
		right.Children = append(right.Children, child.Children[mid+1:]...)
		child.Children = child.Children[:mid+1]
	}

	upKey := child.Keys[mid]
	upRow := child.RowPointers[mid]

	child.Keys = child.Keys[:mid]
	child.RowPointers = child.RowPointers[:mid]

	parent.Keys = append(parent.Keys, types.Value{})
	copy(parent.Keys[index+1:], parent.Keys[index:])
	parent.Keys[index] = upKey

	parent.RowPointers = append(parent.RowPointers, storage.RowID{})
	copy(parent.RowPointers[index+1:], parent.RowPointers[index:])
	parent.RowPointers[index] = upRow

	parent.Children = append(parent.Children, nil)
	copy(parent.Children[index+2:], parent.Children[index+1:])
	parent.Children[index+1] = right

}
