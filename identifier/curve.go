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

package identifier

import (
	"fmt"
)

// Curve is the elliptic curve of a key. Its value is the tag byte used in
// front of public key hashes and public keys on the wire.
type Curve uint8

// Supported curves.
const (
	Ed25519   Curve = 0
	Secp256k1 Curve = 1
	P256      Curve = 2
)

// Curves lists every supported curve in tag order.
var Curves = []Curve{Ed25519, Secp256k1, P256}

// Valid returns whether the curve is supported.
func (c Curve) Valid() bool {
	return c <= P256
}

// String returns the lowercase name of the curve.
func (c Curve) String() string {
	switch c {
	case Ed25519:
		return "ed25519"
	case Secp256k1:
		return "secp256k1"
	case P256:
		return "p256"
	default:
		return fmt.Sprintf("curve(%d)", uint8(c))
	}
}
