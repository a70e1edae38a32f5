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

// Sequence is a monotonically increasing counter backing a SERIAL column.
type Sequence struct {
	next int64
}

// Next allocates and returns the next value, starting at 1.
func (s *Sequence) Next() int64 {
	s.next++
	return s.next
}

// Peek returns the value most recently returned by Next (0 before the
// first call), without allocating.
func (s *Sequence) Peek() int64 {
	return s.next
}
