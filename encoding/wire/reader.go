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

	"github.com/optakt/tezos-forge/failure"
)

// Reader is a cursor over a binary buffer. Every read either consumes exactly
// the requested number of bytes or fails with a truncation error naming the
// field that could not be read.
type Reader struct {
	data   []byte
	offset int
	base   int
}

// NewReader creates a new reader positioned at the start of the given data.
func NewReader(data []byte) *Reader {
	r := Reader{
		data: data,
	}
	return &r
}

// Offset returns the absolute position of the cursor. For readers created
// with Sized, it includes the offset of the parent.
func (r *Reader) Offset() int {
	return r.base + r.offset
}

// Len returns the number of unread bytes.
func (r *Reader) Len() int {
	return len(r.data) - r.offset
}

// Rest returns the unread bytes without consuming them.
func (r *Reader) Rest() []byte {
	return r.data[r.offset:]
}

// Skip advances the cursor by n bytes.
func (r *Reader) Skip(field string, n int) error {
	_, err := r.take(field, n)
	return err
}

// Peek returns the next byte without consuming it.
func (r *Reader) Peek(field string) (byte, error) {
	if r.Len() < 1 {
		return 0, r.truncated(field, 1)
	}
	return r.data[r.offset], nil
}

func (r *Reader) Byte(field string) (byte, error) {
	b, err := r.take(field, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Bytes reads n bytes and returns a copy of them.
func (r *Reader) Bytes(field string, n int) ([]byte, error) {
	b, err := r.take(field, n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

// Fixed reads exactly len(dst) bytes into dst.
func (r *Reader) Fixed(field string, dst []byte) error {
	b, err := r.take(field, len(dst))
	if err != nil {
		return err
	}
	copy(dst, b)
	return nil
}

func (r *Reader) Uint16(field string) (uint16, error) {
	b, err := r.take(field, 2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (r *Reader) Uint32(field string) (uint32, error) {
	b, err := r.take(field, 4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (r *Reader) Int32(field string) (int32, error) {
	v, err := r.Uint32(field)
	return int32(v), err
}

func (r *Reader) Int64(field string) (int64, error) {
	b, err := r.take(field, 8)
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(b)), nil
}

// Bool reads a boolean encoded as 0x00 (false) or 0xff (true). Presence flags
// of optional fields use the same encoding.
func (r *Reader) Bool(field string) (bool, error) {
	offset := r.Offset()
	b, err := r.Byte(field)
	if err != nil {
		return false, err
	}
	switch b {
	case False:
		return false, nil
	case True:
		return true, nil
	default:
		return false, failure.UnknownTag{
			Description: failure.NewDescription("boolean must be 0x00 or 0xff",
				failure.WithString("field", field),
				failure.WithInt("offset", offset),
			),
			Family: "boolean",
			Tag:    b,
		}
	}
}

// Sized reads a four-byte big-endian length and returns a reader over exactly
// that many following bytes, which are consumed from the parent.
func (r *Reader) Sized(field string) (*Reader, error) {
	size, err := r.Uint32(field)
	if err != nil {
		return nil, err
	}
	if uint64(size) > uint64(r.Len()) {
		return nil, r.truncated(field, int(size))
	}
	base := r.Offset()
	b, _ := r.take(field, int(size))
	sub := Reader{
		data: b,
		base: base,
	}
	return &sub, nil
}

func (r *Reader) take(field string, n int) ([]byte, error) {
	if n < 0 || r.Len() < n {
		return nil, r.truncated(field, n)
	}
	b := r.data[r.offset : r.offset+n]
	r.offset += n
	return b, nil
}

func (r *Reader) truncated(field string, want int) error {
	return failure.TruncatedOperation{
		Description: failure.NewDescription("not enough bytes left in buffer"),
		Field:       field,
		Offset:      r.Offset(),
		Have:        r.Len(),
		Want:        want,
	}
}
