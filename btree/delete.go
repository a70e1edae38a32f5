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
	"github.com/jugadbase/jugadb/storage"
	"github.com/jugadbase/jugadb/types"
)

// min is the minimum fill factor: ceil(order/2) - 1 keys per non-root node.
func (t *Tree) min() int {
	m := (t.Order + 1) / 2
	if m < 1 {
		m = 1
	}
	return m - 1
}

// Delete removes key, using predecessor/successor replacement on internal
// deletions and rebalancing (borrow from a sibling, or merge) whenever a
// node drops below the minimum fill factor. Reports whether key was found.
func (t *Tree) Delete(key types.Value) bool {

	found := deleteFromNode(t, t.Root, key)

	if !t.Root.IsLeaf && len(t.Root.Keys) == 0 {
		t.Root = t.Root.Children[0]
	}

	return found

}

func deleteFromNode(t *Tree, n *Node, key types.Value) bool {

	i := 0
	for i < len(n.Keys) && KeyCompare(key, n.Keys[i]) > 0 {
		i++
	}

	if i < len(n.Keys) && KeyCompare(key, n.Keys[i]) == 0 {

		if n.IsLeaf {
			n.Keys = append(n.Keys[:i], n.Keys[i+1:]...)
			n.RowPointers = append(n.RowPointers[:i], n.RowPointers[i+1:]...)
			return true
		}

		// internal deletion: replace with the predecessor (max of the left
		// subtree) if it can spare a key, else the successor (min of the
		// right subtree), else merge the two children and retry there.
		if len(n.Children[i].Keys) > t.min() {
			predKey, predRow := maxOf(n.Children[i])
			n.Keys[i] = predKey
			n.RowPointers[i] = predRow
			deleteFromNode(t, n.Children[i], predKey)
		} else if len(n.Children[i+1].Keys) > t.min() {
			succKey, succRow := minOf(n.Children[i+1])
			n.Keys[i] = succKey
			n.RowPointers[i] = succRow
			deleteFromNode(t, n.Children[i+1], succKey)
		} else {
			mergeChildren(n, i)
			deleteFromNode(t, n.Children[i], key)
		}

		return true

	}

	if n.IsLeaf {
		return false
	}

	child := n.Children[i]
	found := deleteFromNode(t, child, key)

	if len(child.Keys) < t.min() {
		rebalance(t, n, i)
	}

	return found

}

func maxOf(n *Node) (types.Value, storage.RowID) {
	for !n.IsLeaf {
		n = n.Children[len(n.Children)-1]
	}
	last := len(n.Keys) - 1
	return n.Keys[last], n.RowPointers[last]
}

func minOf(n *Node) (types.Value, storage.RowID) {
	for !n.IsLeaf {
		n = n.Children[0]
	}
	return n.Keys[0], n.RowPointers[0]
}

// rebalance restores the minimum fill factor of the child at idx by
// borrowing from a sibling if one has a surplus, or merging otherwise.
func rebalance(t *Tree, parent *Node, idx int) {

	if idx > 0 && len(parent.Children[idx-1].Keys) > t.min() {
		borrowFromLeft(parent, idx)
		return
	}

	if idx < len(parent.Children)-1 && len(parent.Children[idx+1].Keys) > t.min() {
		borrowFromRight(parent, idx)
		return
	}

	if idx < len(parent.Children)-1 {
		mergeChildren(parent, idx)
	} else {
		mergeChildren(parent, idx-1)
	}

}

func borrowFromLeft(parent *Node, idx int) {

	child := parent.Children[idx]
	left := parent.Children[idx-1]

	child.Keys = append([]types.Value{parent.Keys[idx-1]}, child.Keys...)
	child.RowPointers = append([]storage.RowID{parent.RowPointers[idx-1]}, child.RowPointers...)

	parent.Keys[idx-1] = left.Keys[len(left.Keys)-1]
	parent.RowPointers[idx-1] = left.RowPointers[len(left.RowPointers)-1]

	left.Keys = left.Keys[:len(left.Keys)-1]
	left.RowPointers = left.RowPointers[:len(left.RowPointers)-1]

	if !child.IsLeaf {
		lastChild := left.Children[len(left.Children)-1]
		child.Children = append([]*Node{lastChild}, child.Children...)
		left.Children = left.Children[:len(left.Children)-1]
	}

}

func borrowFromRight(parent *Node, idx int) {

	child := parent.Children[idx]
	right := parent.Children[idx+1]

	child.Keys = append(child.Keys, parent.Keys[idx])
	child.RowPointers = append(child.RowPointers, parent.RowPointers[idx])

	parent.Keys[idx] = right.Keys[0]
	parent.RowPointers[idx] = right.RowPointers[0]

	right.Keys = right.Keys[1:]
	right.RowPointers = right.RowPointers[1:]

	if !child.IsLeaf {
		firstChild := right.Children[0]
		child.Children = append(child.Children, firstChild)
		right.Children = right.Children[1:]
	}

}

// mergeChildren merges parent.Children[idx] and parent.Children[idx+1],
// pulling down the separator key at parent.Keys[idx].
func mergeChildren(parent *Node, idx int) {

	left := parent.Children[idx]
	right := parent.Children[idx+1]

	left.Keys = append(left.Keys, parent.Keys[idx])
	left.RowPointers = append(left.RowPointers, parent.RowPointers[idx])

	left.Keys = append(left.Keys, right.Keys...)
	left.RowPointers = append(left.RowPointers, right.RowPointers...)
	if !left.IsLeaf {
		left.Children = append(left.Children, right.Children...)
	}

	parent.Keys = append(parent.Keys[:idx], parent.Keys[idx+1:]...)
	parent.RowPointers = append(parent.RowPointers[:idx], parent.RowPointers[idx+1:]...)
	parent.Children = append(parent.Children[:idx+1], parent.Children[idx+2:]...)

}
