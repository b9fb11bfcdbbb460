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

package storage

import (
	"github.com/dgraph-io/badger/v2"

	"github.com/optakt/tezos-forge/identifier"
)

// WatermarkKey returns the database key of the watermark of a key, chain and
// class of consensus operation.
func WatermarkKey(pkh identifier.PublicKeyHash, chain identifier.ChainID, class uint8) []byte {
	return EncodeKey(PrefixWatermark, pkh, chain, class)
}

// SaveWatermark is an operation that writes the watermark of a key, chain and
// class of consensus operation.
func (l *Library) SaveWatermark(pkh identifier.PublicKeyHash, chain identifier.ChainID, class uint8, mark Watermark) func(*badger.Txn) error {
	return l.save(WatermarkKey(pkh, chain, class), mark)
}

// RetrieveWatermark is an operation that reads the watermark of a key, chain
// and class of consensus operation.
func (l *Library) RetrieveWatermark(pkh identifier.PublicKeyHash, chain identifier.ChainID, class uint8, mark *Watermark) func(*badger.Txn) error {
	return l.retrieve(WatermarkKey(pkh, chain, class), mark)
}
