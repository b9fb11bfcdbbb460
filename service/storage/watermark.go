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
	"github.com/optakt/tezos-forge/identifier"
)

// Watermark is the last consensus message a key signed for one chain and
// one class of consensus operation.
type Watermark struct {
	Level     int32                            `cbor:"1,keyasint"`
	Round     int32                            `cbor:"2,keyasint"`
	Digest    [32]byte                         `cbor:"3,keyasint"`
	Signature [identifier.SignatureLength]byte `cbor:"4,keyasint"`
}
