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

package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optakt/tezos-forge/codec/zbor"
	"github.com/optakt/tezos-forge/failure"
	"github.com/optakt/tezos-forge/identifier"
	"github.com/optakt/tezos-forge/metrics/rcrowley"
	"github.com/optakt/tezos-forge/service/guard"
	"github.com/optakt/tezos-forge/service/metrics"
	"github.com/optakt/tezos-forge/service/storage"
	"github.com/optakt/tezos-forge/signer"
	"github.com/optakt/tezos-forge/testing/mocks"
)

func TestSignatory_Sign(t *testing.T) {
	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		reg := prometheus.NewRegistry()
		s := metrics.NewSignatory(mocks.BaselineSignatory(t), reg)

		sig, err := s.Sign(mocks.GenericKeyHash, append(signer.GenericOperation(), mocks.GenericBytes...))
		require.NoError(t, err)
		assert.Equal(t, mocks.GenericSignature, sig)

		count, err := testutil.GatherAndCount(reg, "tezos_signer_signing_requests_total")
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("labels results", func(t *testing.T) {
		t.Parallel()

		errs := []error{
			nil,
			failure.UnknownKey{},
			failure.ForbiddenOperation{},
			failure.StaleWatermark{},
			mocks.GenericError,
			nil,
		}
		inner := mocks.BaselineSignatory(t)
		call := 0
		inner.SignFunc = func(identifier.PublicKeyHash, []byte) (identifier.Signature, error) {
			err := errs[call%len(errs)]
			call++
			return identifier.Signature{}, err
		}

		reg := prometheus.NewRegistry()
		s := metrics.NewSignatory(inner, reg)

		block := signer.TenderbakeBlock(mocks.GenericChainID)
		for range errs {
			_, _ = s.Sign(mocks.GenericKeyHash, block)
		}
		_, _ = s.Sign(mocks.GenericKeyHash, nil)

		count, err := testutil.GatherAndCount(reg, "tezos_signer_signing_requests_total")
		require.NoError(t, err)
		assert.Equal(t, 6, count)
	})

	t.Run("forwards key requests", func(t *testing.T) {
		t.Parallel()

		s := metrics.NewSignatory(mocks.BaselineSignatory(t), prometheus.NewRegistry())

		pk, err := s.PublicKey(mocks.GenericKeyHash)
		require.NoError(t, err)
		assert.Equal(t, mocks.GenericPublicKey, pk)
		assert.Equal(t, []identifier.PublicKeyHash{mocks.GenericKeyHash}, s.Keys())
	})
}

func TestCodec_Marshal(t *testing.T) {
	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		size := rcrowley.NewSize("store")
		codec := metrics.NewCodec(zbor.NewCodec(), size)

		mark := storage.Watermark{Level: mocks.GenericLevel, Round: 1}
		data, err := codec.Marshal(mark)
		require.NoError(t, err)

		original, compressed := size.Totals("watermark")
		assert.Positive(t, original)
		assert.Equal(t, int64(len(data)), compressed)

		var got storage.Watermark
		err = codec.Unmarshal(data, &got)
		require.NoError(t, err)
		assert.Equal(t, mark, got)
	})
}

func TestGuard_Sign(t *testing.T) {
	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		timer := rcrowley.NewTime("guard")
		g := metrics.NewGuard(mocks.BaselineGuard(t), timer)

		req := guard.Request{Class: guard.ClassEndorsement}
		sig, err := g.Sign(req, func() (identifier.Signature, error) {
			return mocks.GenericSignature, nil
		})

		require.NoError(t, err)
		assert.Equal(t, mocks.GenericSignature, sig)
		assert.Equal(t, int64(1), timer.Count("endorsement"))
	})
}

func TestRegisterBadgerMetrics(t *testing.T) {
	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		reg := prometheus.NewRegistry()

		err := metrics.RegisterBadgerMetrics(reg)
		require.NoError(t, err)

		err = metrics.RegisterBadgerMetrics(reg)
		assert.Error(t, err)
	})
}
