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

// Package types implements the ColumnValue sum type and the cross-type
// cast matrix the engine evaluates columns and literals against.
package types

import (
	"time"
)

// Kind is the closed set of ColumnValue variants.
type Kind int

const (
	KindNull Kind = iota
	KindInt
	KindUint
	KindFloat
	KindDouble
	KindBool
	KindChar
	KindString
	KindVarchar
	KindText
	KindBlob
	KindJSON
	KindDecimal
	KindUUID
	KindDate
	KindTime
	KindTimeTZ
	KindDatetime
	KindDatetimeTZ
	KindTimestamp
	KindTimestampTZ
	KindInterval
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "NULL"
	case KindInt:
		return "INT"
	case KindUint:
		return "UINT"
	case KindFloat:
		return "FLOAT"
	case KindDouble:
		return "DOUBLE"
	case KindBool:
		return "BOOL"
	case KindChar:
		return "CHAR"
	case KindString:
		return "STRING"
	case KindVarchar:
		return "VARCHAR"
	case KindText:
		return "TEXT"
	case KindBlob:
		return "BLOB"
	case KindJSON:
		return "JSON"
	case KindDecimal:
		return "DECIMAL"
	case KindUUID:
		return "UUID"
	case KindDate:
		return "DATE"
	case KindTime:
		return "TIME"
	case KindTimeTZ:
		return "TIMETZ"
	case KindDatetime:
		return "DATETIME"
	case KindDatetimeTZ:
		return "DATETIMETZ"
	case KindTimestamp:
		return "TIMESTAMP"
	case KindTimestampTZ:
		return "TIMESTAMPTZ"
	case KindInterval:
		return "INTERVAL"
	case KindArray:
		return "ARRAY"
	}
	return "UNKNOWN"
}

// Interval is months/days/microseconds, decomposed and stored
// independently so that "1 month" and "30 days" remain distinguishable.
type Interval struct {
	Months int64
	Days   int64
	Micros int64
}

// Toast is the on-row descriptor for a value relocated out of line.
type Toast struct {
	ToastID uint32
	Length  uint32
}

// Value is the tagged sum type every column cell and every evaluated
// expression result is represented as. It carries one payload per
// variant rather than an interface{}, mirroring a C tagged union: the
// active field is whichever Kind selects.
type Value struct {
	Kind Kind

	IsNull  bool
	IsToast bool
	IsArray bool

	I   int64
	U   uint64
	F32 float32
	F64 float64
	B   bool
	S   string // char, string, varchar, text, decimal (string-encoded), json
	Blob []byte
	UUID [16]byte
	T    time.Time
	Ival Interval

	Toast Toast
	Elems []Value

	// VarcharLen/DecimalP/DecimalS carry the defining column's constraint
	// so cast/size routines do not need the schema in hand a second time.
	VarcharLen int
	DecimalP   int
	DecimalS   int
}

// Null returns the null value of the given kind.
func Null(k Kind) Value {
	return Value{Kind: k, IsNull: true}
}

// IsTrue reports whether a bool-kinded value is true; used by the
// evaluator after a comparison or logical operator.
func (v Value) IsTrue() bool {
	return v.Kind == KindBool && !v.IsNull && v.B
}
