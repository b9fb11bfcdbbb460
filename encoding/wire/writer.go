// Copyright 2021 Optakt Labs OÜ
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

package wire

import (
	"encoding/binary"
)

// Encoding of booleans and of the presence flag in front of optional fields.
const (
	False = 0x00
	True  = 0xff
)

// Writer accumulates big-endian binary fields. Writing never fails.
type Writer struct {
	buf []byte
}

func NewWriter() *Writer {
	w := Writer{
		buf: make([]byte, 0, 128),
	}
	return &w
}

// Data returns the bytes written so far.
func (w *Writer) Data() []byte {
	return w.buf
}

func (w *Writer) Byte(b byte) {
	w.buf = append(w.buf, b)
}

func (w *Writer) Bytes(b []byte) {
	w.buf = append(w.buf, b...)
}

func (w *Writer) Uint16(v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *Writer) Uint32(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *Writer) Int32(v int32) {
	w.Uint32(uint32(v))
}

func (w *Writer) Int64(v int64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(v))
	w.buf = append(w.buf, b[:]...)
}

func (w *Writer) Bool(v bool) {
	if v {
		w.buf = append(w.buf, True)
		return
	}
	w.buf = append(w.buf, False)
}

// Sized writes a four-byte big-endian length followed by the given bytes.
func (w *Writer) Sized(b []byte) {
	w.Uint32(uint32(len(b)))
	w.buf = append(w.buf, b...)
}

// Nested writes whatever the given function writes into a fresh writer as a
// length-prefixed block.
func (w *Writer) Nested(write func(*Writer)) {
	inner := NewWriter()
	write(inner)
	w.Sized(inner.Data())
}
