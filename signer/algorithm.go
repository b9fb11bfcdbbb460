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

package signer

import (
	"github.com/optakt/tezos-forge/identifier"
)

// Algorithm signs and verifies digests on one curve.
type Algorithm interface {
	Curve() identifier.Curve
	PublicKey(sk identifier.SecretKey) (identifier.PublicKey, error)
	Sign(sk identifier.SecretKey, digest [32]byte) (identifier.Signature, error)
	Verify(pk identifier.PublicKey, digest [32]byte, sig [identifier.SignatureLength]byte) bool
}
