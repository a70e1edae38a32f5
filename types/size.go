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

package types

// ToastChunkSize bounds the encoded length of a value before it is
// relocated out of line into the TOAST store.
const ToastChunkSize = 2048

// FixedSize returns the on-disk size in bytes for fixed-width kinds, or
// 0 if the kind is variable-width (the caller must use SizeOfValue).
func FixedSize(k Kind, varcharLen int) int {
	switch k {
	case KindNull:
		return 0
	case KindInt, KindUint, KindDouble, KindTimestamp, KindTimestampTZ:
		return 8
	case KindFloat, KindDate:
		return 4
	case KindBool, KindChar:
		return 1
	case KindUUID:
		return 16
	case KindInterval:
		return 24 // months int64 + days int64 + micros int64
	case KindTime, KindTimeTZ, KindDatetime, KindDatetimeTZ:
		return 8
	case KindVarchar:
		return 2 + varcharLen
	}
	return 0 // string/text/blob/json/decimal/array: variable-width
}

// SizeOfValue returns the actual encoded size of v: a null value uses its
// type's default size; a string/text/blob/json value encodes a uint16
// length prefix plus its bytes; a TOAST-referenced value encodes a 5-byte
// {bool in_toast, uint32 toast_id} descriptor.
func SizeOfValue(v Value) int {

	if v.IsToast {
		return 5
	}

	if fixed := FixedSize(v.Kind, v.VarcharLen); fixed > 0 || v.Kind == KindBool || v.Kind == KindChar {
		return fixed
	}

	switch v.Kind {
	case KindNull:
		return 0
	case KindString, KindText, KindJSON, KindDecimal:
		return 2 + len(v.S)
	case KindBlob:
		return 2 + len(v.Blob)
	case KindArray:
		n := 4 // element count
		for _, e := range v.Elems {
			n += SizeOfValue(e)
		}
		return n
	}

	return 0

}
