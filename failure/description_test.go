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

package failure_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/optakt/tezos-forge/failure"
	"github.com/optakt/tezos-forge/testing/mocks"
)

func TestDescription(t *testing.T) {
	descBody := "test"
	offset := 84
	level := uint64(1337)
	kinds := []string{"transaction", "reveal"}

	t.Run("full description with fields", func(t *testing.T) {
		t.Parallel()

		desc := failure.NewDescription(
			descBody,
			failure.WithErr(mocks.GenericError),
			failure.WithUint64("level", level),
			failure.WithInt("offset", offset),
			failure.WithHex("data", []byte{0xca, 0xfe}),
			failure.WithString("field", "fee"),
			failure.WithStrings("kinds", kinds...),
		)

		assert.Equal(t, desc.Text, descBody)
		assert.NotEqual(t, desc.String(), descBody)
		assert.Contains(t, desc.Fields.String(), mocks.GenericError.Error())
		assert.Contains(t, desc.Fields.String(), fmt.Sprintf("level: %v", level))
		assert.Contains(t, desc.Fields.String(), fmt.Sprintf("offset: %v", offset))
		assert.Contains(t, desc.Fields.String(), "data: cafe")
		assert.Contains(t, desc.Fields.String(), "field: fee")
		assert.Contains(t, desc.Fields.String(), fmt.Sprintf("kinds: %v", kinds))
	})

	t.Run("no fields", func(t *testing.T) {
		t.Parallel()

		desc := failure.NewDescription(descBody)

		assert.Equal(t, desc.Text, descBody)
		assert.Equal(t, desc.String(), descBody)
	})

	t.Run("iterate visits fields in order", func(t *testing.T) {
		t.Parallel()

		desc := failure.NewDescription(descBody, failure.WithString("a", "1"), failure.WithString("b", "2"))

		var keys []string
		desc.Fields.Iterate(func(key string, _ interface{}) {
			keys = append(keys, key)
		})

		assert.Equal(t, []string{"a", "b"}, keys)
	})
}

func TestErrors(t *testing.T) {
	t.Run("wrapped errors keep their type", func(t *testing.T) {
		t.Parallel()

		inner := failure.TruncatedOperation{
			Description: failure.NewDescription("buffer exhausted"),
			Field:       "fee",
			Offset:      22,
			Have:        0,
			Want:        1,
		}
		err := fmt.Errorf("could not decode manager fields: %w", inner)

		var truncated failure.TruncatedOperation
		assert.True(t, errors.As(err, &truncated))
		assert.Equal(t, "fee", truncated.Field)
		assert.Equal(t, 22, truncated.Offset)
		assert.Contains(t, err.Error(), "field: fee")
	})

	t.Run("messages carry identifying fields", func(t *testing.T) {
		t.Parallel()

		assert.Contains(t, failure.UnknownTag{Family: "public key", Tag: 0x07}.Error(), "0x07")
		assert.Contains(t, failure.UnknownOperationKind{Kind: 255}.Error(), "kind: 255")
		assert.Contains(t, failure.InvalidLength{Family: "signature", Have: 63, Want: 64}.Error(), "have: 63, want: 64")
		assert.Contains(t, failure.StaleWatermark{Key: "tz1", Level: 5, Round: 1}.Error(), "level: 5, round: 1")
	})
}
