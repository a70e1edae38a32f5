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

// Package btree implements a typed-key B-tree over table row pointers,
// with insert/search/delete/rebalance and on-disk persistence.
package btree

import (
	"bytes"
	"strings"

	"github.com/jugadbase/jugadb/types"
)

// KeySizeForType returns the on-disk size used to compute fan-out for a
// B-tree rooted at a column of the given kind.
func KeySizeForType(kind types.Kind, varcharLen int) int {
	if size := types.FixedSize(kind, varcharLen); size > 0 {
		return size
	}
	switch kind {
	case types.KindString, types.KindVarchar, types.KindText, types.KindDecimal, types.KindJSON:
		if varcharLen > 0 {
			return varcharLen
		}
		return 64 // a representative width for variable-length keys
	case types.KindBool, types.KindChar:
		return 1
	}
	return 8

}

// KeyCompare is type-aware ordering: numeric keys use standard ordering,
// strings compare byte-by-byte with nulls sorting last, temporal types
// compare by their integer encoding, and arrays compare element-wise.
func KeyCompare(a, b types.Value) int {

	if a.IsNull && b.IsNull {
		return 0
	}
	if a.IsNull {
		return 1 // nulls sort last
	}
	if b.IsNull {
		return -1
	}

	if a.IsArray || b.IsArray {
		return compareArrays(a, b)
	}

	switch a.Kind {
	case types.KindInt:
		return compareInt64(a.I, b.I)
	case types.KindUint:
		return compareUint64(a.U, b.U)
	case types.KindFloat:
		return compareFloat64(float64(a.F32), float64(b.F32))
	case types.KindDouble:
		return compareFloat64(a.F64, b.F64)
	case types.KindBool:
		return compareBool(a.B, b.B)
	case types.KindDate, types.KindTime, types.KindTimeTZ, types.KindDatetime, types.KindDatetimeTZ, types.KindTimestamp, types.KindTimestampTZ:
		return compareInt64(a.T.UnixMicro(), b.T.UnixMicro())
	case types.KindUUID:
		return bytes.Compare(a.UUID[:], b.UUID[:])
	default:
		return strings.Compare(a.S, b.S)
	}

}

// compareArrays compares element-wise, per the original implementation's
// compare_arrays contract: shorter-but-equal-prefix sorts first.
func compareArrays(a, b types.Value) int {
	n := len(a.Elems)
	if len(b.Elems) < n {
		n = len(b.Elems)
	}
	for i := 0; i < n; i++ {
		if c := KeyCompare(a.Elems[i], b.Elems[i]); c != 0 {
			return c
		}
	}
	return compareInt64(int64(len(a.Elems)), int64(len(b.Elems)))
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareUint64(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareFloat64(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareBool(a, b bool) int {
	if a == b {
		return 0
	}
	if !a {
		return -1
	}
	return 1
}

// CalculateOrder computes the fan-out once per tree from a target node
// size and the key's on-disk size, mirroring calculate_btree_order.
func CalculateOrder(keySize int) int {
	const targetNodeSize = 4096
	const rowPointerSize = 6 // RowID{u32 page_id, u16 row_id}
	order := targetNodeSize / (keySize + rowPointerSize)
	if order < 3 {
		order = 3
	}
	if order > maxKeysPerNode {
		order = maxKeysPerNode
	}
	return order
}

const maxKeysPerNode = 1000

// LifetimeThreshold governs how long a loaded tree is retained in memory
// before being persisted back to disk and released.
const LifetimeThreshold = 10
