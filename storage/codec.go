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
	"time"

	"github.com/jugadbase/jugadb/types"
)

func microsToTime(micros int64) time.Time {
	return time.UnixMicro(micros).UTC()
}

// EncodeValue serialises v per size_from_value: a null flag byte, then the
// value's encoding (or nothing further, for null); a value whose encoded
// length exceeds ToastChunkSize is expected to already have been relocated
// into the TOAST store by the caller, leaving only the {toast_id} descriptor.
func EncodeValue(e *Encoder, v types.Value) error {

	if err := e.Bool(v.IsNull); err != nil {
		return err
	}
	if v.IsNull {
		return nil
	}

	if err := e.Bool(v.IsToast); err != nil {
		return err
	}
	if v.IsToast {
		return e.U32(v.Toast.ToastID)
	}

	if err := e.Bool(v.IsArray); err != nil {
		return err
	}
	if v.IsArray {
		if err := e.U32(uint32(len(v.Elems))); err != nil {
			return err
		}
		for _, elem := range v.Elems {
			if err := EncodeValue(e, elem); err != nil {
				return err
			}
		}
		return nil
	}

	switch v.Kind {
	case types.KindInt:
		return e.I64(v.I)
	case types.KindUint:
		return e.U64(v.U)
	case types.KindFloat:
		return e.F32(v.F32)
	case types.KindDouble:
		return e.F64(v.F64)
	case types.KindBool:
		return e.Bool(v.B)
	case types.KindChar:
		return e.U8(v.S[0])
	case types.KindString, types.KindVarchar, types.KindText, types.KindJSON, types.KindDecimal:
		return e.Bytes([]byte(v.S))
	case types.KindBlob:
		return e.Bytes(v.Blob)
	case types.KindUUID:
		return e.Raw(v.UUID[:])
	case types.KindDate, types.KindTime, types.KindTimeTZ, types.KindDatetime, types.KindDatetimeTZ, types.KindTimestamp, types.KindTimestampTZ:
		return e.I64(v.T.UnixMicro())
	case types.KindInterval:
		if err := e.I64(v.Ival.Months); err != nil {
			return err
		}
		if err := e.I64(v.Ival.Days); err != nil {
			return err
		}
		return e.I64(v.Ival.Micros)
	}

	return fmt.Errorf("cannot encode value of kind %s", v.Kind)

}

// DecodeValue reads the wire format EncodeValue produces for a column
// declared with the given schema kind/varchar length.
func DecodeValue(d *Decoder, kind types.Kind, varcharLen int) (types.Value, error) {

	isNull, err := d.Bool()
	if err != nil {
		return types.Value{}, err
	}
	if isNull {
		return types.Null(kind), nil
	}

	isToast, err := d.Bool()
	if err != nil {
		return types.Value{}, err
	}
	if isToast {
		id, err := d.U32()
		if err != nil {
			return types.Value{}, err
		}
		return types.Value{Kind: kind, IsToast: true, Toast: types.Toast{ToastID: id}}, nil
	}

	isArray, err := d.Bool()
	if err != nil {
		return types.Value{}, err
	}
	if isArray {
		n, err := d.U32()
		if err != nil {
			return types.Value{}, err
		}
		elems := make([]types.Value, 0, n)
		for i := uint32(0); i < n; i++ {
			elem, err := DecodeValue(d, kind, varcharLen)
			if err != nil {
				return types.Value{}, err
			}
			elems = append(elems, elem)
		}
		return types.Value{Kind: kind, IsArray: true, Elems: elems}, nil
	}

	switch kind {
	case types.KindInt:
		v, err := d.I64()
		return types.Value{Kind: kind, I: v}, err
	case types.KindUint:
		v, err := d.U64()
		return types.Value{Kind: kind, U: v}, err
	case types.KindFloat:
		v, err := d.F32()
		return types.Value{Kind: kind, F32: v}, err
	case types.KindDouble:
		v, err := d.F64()
		return types.Value{Kind: kind, F64: v}, err
	case types.KindBool:
		v, err := d.Bool()
		return types.Value{Kind: kind, B: v}, err
	case types.KindChar:
		v, err := d.U8()
		return types.Value{Kind: kind, S: string(rune(v))}, err
	case types.KindString, types.KindVarchar, types.KindText, types.KindJSON, types.KindDecimal:
		v, err := d.Bytes()
		return types.Value{Kind: kind, S: string(v), VarcharLen: varcharLen}, err
	case types.KindBlob:
		v, err := d.Bytes()
		return types.Value{Kind: kind, Blob: v}, err
	case types.KindUUID:
		v, err := d.Raw(16)
		var out [16]byte
		copy(out[:], v)
		return types.Value{Kind: kind, UUID: out}, err
	case types.KindDate, types.KindTime, types.KindTimeTZ, types.KindDatetime, types.KindDatetimeTZ, types.KindTimestamp, types.KindTimestampTZ:
		v, err := d.I64()
		if err != nil {
			return types.Value{}, err
		}
		return types.Value{Kind: kind, T: microsToTime(v)}, nil
	case types.KindInterval:
		months, err := d.I64()
		if err != nil {
			return types.Value{}, err
		}
		days, err := d.I64()
		if err != nil {
			return types.Value{}, err
		}
		micros, err := d.I64()
		if err != nil {
			return types.Value{}, err
		}
		return types.Value{Kind: kind, Ival: types.Interval{Months: months, Days: days, Micros: micros}}, nil
	}

	return types.Value{}, fmt.Errorf("cannot decode value of kind %s", kind)

}

// EncodeRow serialises every column of row in schema order.
func EncodeRow(schema *TableSchema, row *Row) ([]byte, error) {
	var buf bytes.Buffer
	e := NewEncoder(&buf)
	for i, col := range schema.Columns {
		v := row.Values[i]
		if err := EncodeValue(e, v); err != nil {
			return nil, fmt.Errorf("column %s: %w", col.Name, err)
		}
	}
	return buf.Bytes(), nil
}

// DecodeRow deserialises a row previously written by EncodeRow.
func DecodeRow(schema *TableSchema, id RowID, data []byte) (*Row, error) {
	d := NewDecoder(bytes.NewReader(data))
	row := &Row{ID: id, Values: make([]types.Value, len(schema.Columns))}
	for i, col := range schema.Columns {
		v, err := DecodeValue(d, col.Type, col.VarcharLen)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", col.Name, err)
		}
		row.Values[i] = v
	}
	return row, nil
}
