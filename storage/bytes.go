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
	"encoding/binary"
	"io"
)

// Encoder writes the fixed set of primitives the row/page/catalog codec
// needs, in exact big-endian byte order. Unlike a generic reflection-based
// struct walker, every call site names its field widths explicitly, which
// the row layout (spec.md §6) requires byte-for-byte.
type Encoder struct {
	Order binary.ByteOrder
	w     io.Writer
}

// NewEncoder wraps w for big-endian primitive writes.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{Order: binary.BigEndian, w: w}
}

func (e *Encoder) U8(v uint8) error {
	_, err := e.w.Write([]byte{v})
	return err
}

func (e *Encoder) U16(v uint16) error {
	var buf [2]byte
	e.Order.PutUint16(buf[:], v)
	_, err := e.w.Write(buf[:])
	return err
}

func (e *Encoder) U32(v uint32) error {
	var buf [4]byte
	e.Order.PutUint32(buf[:], v)
	_, err := e.w.Write(buf[:])
	return err
}

func (e *Encoder) U64(v uint64) error {
	var buf [8]byte
	e.Order.PutUint64(buf[:], v)
	_, err := e.w.Write(buf[:])
	return err
}

func (e *Encoder) I64(v int64) error { return e.U64(uint64(v)) }

func (e *Encoder) F32(v float32) error { return binary.Write(e.w, e.Order, v) }
func (e *Encoder) F64(v float64) error { return binary.Write(e.w, e.Order, v) }

func (e *Encoder) Bool(v bool) error {
	if v {
		return e.U8(1)
	}
	return e.U8(0)
}

// Bytes writes a uint16-length-prefixed byte string.
func (e *Encoder) Bytes(b []byte) error {
	if err := e.U16(uint16(len(b))); err != nil {
		return err
	}
	_, err := e.w.Write(b)
	return err
}

// Raw writes b verbatim, with no length prefix.
func (e *Encoder) Raw(b []byte) error {
	_, err := e.w.Write(b)
	return err
}

// Decoder mirrors Encoder for reads.
type Decoder struct {
	Order binary.ByteOrder
	r     io.Reader
}

// NewDecoder wraps r for big-endian primitive reads.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{Order: binary.BigEndian, r: r}
}

func (d *Decoder) U8() (uint8, error) {
	var buf [1]byte
	_, err := io.ReadFull(d.r, buf[:])
	return buf[0], err
}

func (d *Decoder) U16() (uint16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(d.r, buf[:]); err != nil {
		return 0, err
	}
	return d.Order.Uint16(buf[:]), nil
}

func (d *Decoder) U32() (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(d.r, buf[:]); err != nil {
		return 0, err
	}
	return d.Order.Uint32(buf[:]), nil
}

func (d *Decoder) U64() (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(d.r, buf[:]); err != nil {
		return 0, err
	}
	return d.Order.Uint64(buf[:]), nil
}

func (d *Decoder) I64() (int64, error) {
	v, err := d.U64()
	return int64(v), err
}

func (d *Decoder) F32() (float32, error) {
	var v float32
	err := binary.Read(d.r, d.Order, &v)
	return v, err
}

func (d *Decoder) F64() (float64, error) {
	var v float64
	err := binary.Read(d.r, d.Order, &v)
	return v, err
}

func (d *Decoder) Bool() (bool, error) {
	v, err := d.U8()
	return v == 1, err
}

// Bytes reads a uint16-length-prefixed byte string.
func (d *Decoder) Bytes() ([]byte, error) {
	n, err := d.U16()
	if err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(d.r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// Raw reads exactly n bytes verbatim.
func (d *Decoder) Raw(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(d.r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}
