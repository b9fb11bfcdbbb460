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

package output_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/optakt/tezos-forge/metrics/output"
	"github.com/optakt/tezos-forge/testing/mocks"
)

type collector struct {
	calls int64
}

func (c *collector) Output(zerolog.Logger) {
	atomic.AddInt64(&c.calls, 1)
}

func TestOutput(t *testing.T) {
	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		first := &collector{}
		second := &collector{}
		out := output.New(mocks.NoopLogger, time.Millisecond)
		out.Register(first)
		out.Register(second)

		out.Run()
		assert.Eventually(t, func() bool {
			return atomic.LoadInt64(&first.calls) > 0
		}, time.Second, time.Millisecond)
		out.Stop()

		assert.Positive(t, atomic.LoadInt64(&second.calls))
	})

	t.Run("outputs once more on stop", func(t *testing.T) {
		t.Parallel()

		c := &collector{}
		out := output.New(mocks.NoopLogger, time.Hour)
		out.Register(c)

		out.Run()
		out.Stop()

		assert.Equal(t, int64(1), atomic.LoadInt64(&c.calls))
	})
}
