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

package wire_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optakt/tezos-forge/encoding/wire"
	"github.com/optakt/tezos-forge/failure"
)

func TestWriterReader(t *testing.T) {
	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		w := wire.NewWriter()
		w.Byte(0x6c)
		w.Uint16(513)
		w.Int32(-2)
		w.Int64(1_650_000_000)
		w.Bool(true)
		w.Bool(false)
		w.Sized([]byte{0xaa, 0xbb})

		want := []byte{
			0x6c,
			0x02, 0x01,
			0xff, 0xff, 0xff, 0xfe,
			0x00, 0x00, 0x00, 0x00, 0x62, 0x59, 0x00, 0x80,
			0xff,
			0x00,
			0x00, 0x00, 0x00, 0x02, 0xaa, 0xbb,
		}
		require.Equal(t, want, w.Data())

		r := wire.NewReader(w.Data())

		b, err := r.Byte("tag")
		require.NoError(t, err)
		assert.Equal(t, byte(0x6c), b)

		u, err := r.Uint16("slot")
		require.NoError(t, err)
		assert.Equal(t, uint16(513), u)

		i, err := r.Int32("level")
		require.NoError(t, err)
		assert.Equal(t, int32(-2), i)

		ts, err := r.Int64("timestamp")
		require.NoError(t, err)
		assert.Equal(t, int64(1_650_000_000), ts)

		yes, err := r.Bool("flag")
		require.NoError(t, err)
		assert.True(t, yes)

		no, err := r.Bool("flag")
		require.NoError(t, err)
		assert.False(t, no)

		sub, err := r.Sized("data")
		require.NoError(t, err)
		assert.Equal(t, 21, sub.Offset())
		data, err := sub.Bytes("data", 2)
		require.NoError(t, err)
		assert.Equal(t, []byte{0xaa, 0xbb}, data)

		assert.Equal(t, 0, r.Len())
		assert.Equal(t, 23, r.Offset())
	})

	t.Run("nested block is length prefixed", func(t *testing.T) {
		t.Parallel()

		w := wire.NewWriter()
		w.Nested(func(inner *wire.Writer) {
			inner.Byte(1)
			inner.Byte(2)
			inner.Byte(3)
		})

		assert.Equal(t, []byte{0, 0, 0, 3, 1, 2, 3}, w.Data())
	})

	t.Run("handles truncated input", func(t *testing.T) {
		t.Parallel()

		r := wire.NewReader([]byte{0x01, 0x02, 0x03})
		_, err := r.Byte("tag")
		require.NoError(t, err)

		_, err = r.Int32("level")

		var truncated failure.TruncatedOperation
		require.ErrorAs(t, err, &truncated)
		assert.Equal(t, "level", truncated.Field)
		assert.Equal(t, 1, truncated.Offset)
		assert.Equal(t, 2, truncated.Have)
		assert.Equal(t, 4, truncated.Want)
	})

	t.Run("handles sized block longer than buffer", func(t *testing.T) {
		t.Parallel()

		r := wire.NewReader([]byte{0x00, 0x00, 0x00, 0x05, 0x01})

		_, err := r.Sized("script")

		assert.ErrorAs(t, err, &failure.TruncatedOperation{})
	})

	t.Run("handles invalid boolean", func(t *testing.T) {
		t.Parallel()

		r := wire.NewReader([]byte{0x01})

		_, err := r.Bool("delegate")

		var unknown failure.UnknownTag
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, byte(0x01), unknown.Tag)
	})

	t.Run("peek does not consume", func(t *testing.T) {
		t.Parallel()

		r := wire.NewReader([]byte{0x07})

		b, err := r.Peek("tag")
		require.NoError(t, err)
		assert.Equal(t, byte(0x07), b)
		assert.Equal(t, 1, r.Len())
	})
}
