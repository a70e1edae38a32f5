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

import "github.com/jugadbase/jugadb/types"

// RowID addresses a row within a table's heap file.
type RowID struct {
	PageID uint32
	RowID  uint16
}

// Row is one live tuple: an address plus one value per schema column.
type Row struct {
	ID     RowID
	Values []types.Value

	// raw holds the still-undecoded wire bytes between Heap.load (which
	// is schema-blind) and Heap.Decode (which has a TableSchema in hand).
	raw []byte
}
