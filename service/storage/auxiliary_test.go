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
package storage_test

import (
	"testing"

	"github.com/dgraph-io/badger/v2"
	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optakt/tezos-forge/service/storage"
	"github.com/optakt/tezos-forge/testing/helpers"
	"github.com/optakt/tezos-forge/testing/mocks"
)

func succeed(calls *int) func(*badger.Txn) error {
	return func(*badger.Txn) error {
		*calls++
		return nil
	}
}

func fail(calls *int) func(*badger.Txn) error {
	return func(*badger.Txn) error {
		*calls++
		return mocks.GenericError
	}
}

func TestFallback(t *testing.T) {
	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		db := helpers.InMemoryDB(t)
		calls := 0

		err := db.View(storage.Fallback(fail(&calls), succeed(&calls), succeed(&calls)))

		assert.NoError(t, err)
		assert.Equal(t, 2, calls)
	})

	t.Run("reports every failure", func(t *testing.T) {
		t.Parallel()

		db := helpers.InMemoryDB(t)
		calls := 0

		err := db.View(storage.Fallback(fail(&calls), fail(&calls), fail(&calls)))

		var merr *multierror.Error
		require.ErrorAs(t, err, &merr)
		assert.Len(t, merr.Errors, 3)
		assert.ErrorIs(t, err, mocks.GenericError)
	})
}

func TestCombine(t *testing.T) {
	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		db := helpers.InMemoryDB(t)
		calls := 0

		err := db.View(storage.Combine(succeed(&calls), succeed(&calls)))

		assert.NoError(t, err)
		assert.Equal(t, 2, calls)
	})

	t.Run("stops at first failure", func(t *testing.T) {
		t.Parallel()

		db := helpers.InMemoryDB(t)
		calls := 0

		err := db.View(storage.Combine(succeed(&calls), fail(&calls), succeed(&calls)))

		assert.ErrorIs(t, err, mocks.GenericError)
		assert.Equal(t, 2, calls)
	})
}

func TestAbsent(t *testing.T) {
	key := storage.WatermarkKey(mocks.GenericKeyHash, mocks.GenericChainID, 2)

	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		db := helpers.InMemoryDB(t)

		err := db.View(storage.Absent(key))

		assert.NoError(t, err)
	})

	t.Run("handles stored value", func(t *testing.T) {
		t.Parallel()

		db, lib := helpers.InMemoryLibrary(t)
		err := db.Update(lib.SaveWatermark(mocks.GenericKeyHash, mocks.GenericChainID, 2, storage.Watermark{}))
		require.NoError(t, err)

		err = db.View(storage.Absent(key))

		assert.Error(t, err)
	})
}
