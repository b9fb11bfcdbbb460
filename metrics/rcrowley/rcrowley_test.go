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

package rcrowley_test

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/optakt/tezos-forge/metrics/rcrowley"
)

func TestSize(t *testing.T) {
	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		size := rcrowley.NewSize("store")
		size.Bytes("watermark", 100, 40)
		size.Bytes("watermark", 50, 20)
		size.Bytes("other", 10, 10)

		original, compressed := size.Totals("watermark")
		assert.Equal(t, int64(150), original)
		assert.Equal(t, int64(60), compressed)

		var buf bytes.Buffer
		size.Output(zerolog.New(&buf))

		assert.Contains(t, buf.String(), `"original_total":160`)
		assert.Contains(t, buf.String(), `"category":"watermark"`)
	})

	t.Run("handles empty categories", func(t *testing.T) {
		t.Parallel()

		size := rcrowley.NewSize("store")

		var buf bytes.Buffer
		size.Output(zerolog.New(&buf))

		original, compressed := size.Totals("watermark")
		assert.Zero(t, original)
		assert.Zero(t, compressed)
		assert.Empty(t, buf.String())
	})
}

func TestTime(t *testing.T) {
	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		timer := rcrowley.NewTime("signatory")
		timer.Duration("sign")()
		timer.Duration("sign")()
		timer.Duration("public_key")()

		assert.Equal(t, int64(2), timer.Count("sign"))
		assert.Equal(t, int64(1), timer.Count("public_key"))
		assert.Zero(t, timer.Count("keys"))

		var buf bytes.Buffer
		timer.Output(zerolog.New(&buf))

		assert.Contains(t, buf.String(), `"operation":"sign"`)
		assert.Contains(t, buf.String(), `"count":2`)
	})
}
