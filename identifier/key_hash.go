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
	"strings"

	"github.com/optakt/tezos-forge/failure"
)

// KeyHashLength is the size of the hash inside public key hashes and
// originated contract addresses.
const KeyHashLength = 20

// PublicKeyHash identifies an implicit account. On the wire it is a curve tag
// followed by the twenty-byte hash of the public key.
type PublicKeyHash struct {
	curve Curve
	hash  [KeyHashLength]byte
}

// NewPublicKeyHash creates a public key hash for the given curve.
func NewPublicKeyHash(curve Curve, hash [KeyHashLength]byte) (PublicKeyHash, error) {
	if !curve.Valid() {
		return PublicKeyHash{}, failure.UnknownTag{
			Description: failure.NewDescription("curve is not supported"),
			Family:      "public key hash",
			Tag:         byte(curve),
		}
	}
	p := PublicKeyHash{
		curve: curve,
		hash:  hash,
	}
	return p, nil
}

// DecodePublicKeyHash decodes exactly one tagged public key hash.
func DecodePublicKeyHash(data []byte) (PublicKeyHash, error) {
	if len(data) != KeyHashLength+1 {
		return PublicKeyHash{}, failure.InvalidLength{
			Description: failure.NewDescription("tagged public key hash must be tag and hash"),
			Family:      "public key hash",
			Have:        len(data),
			Want:        KeyHashLength + 1,
		}
	}
	var hash [KeyHashLength]byte
	copy(hash[:], data[1:])
	return NewPublicKeyHash(Curve(data[0]), hash)
}

// ParsePublicKeyHash parses the base58-check form (tz1, tz2 or tz3).
func ParsePublicKeyHash(s string) (PublicKeyHash, error) {
	var curve Curve
	switch {
	case strings.HasPrefix(s, "tz1"):
		curve = Ed25519
	case strings.HasPrefix(s, "tz2"):
		curve = Secp256k1
	case strings.HasPrefix(s, "tz3"):
		curve = P256
	default:
		return PublicKeyHash{}, failure.InvalidEncoding{
			Description: failure.NewDescription("public key hash must start with tz1, tz2 or tz3"),
			Encoding:    "base58",
			Input:       s,
		}
	}
	payload, err := decodeCheck(s, keyHashPrefix(curve), s)
	if err != nil {
		return PublicKeyHash{}, err
	}
	var hash [KeyHashLength]byte
	copy(hash[:], payload)
	return NewPublicKeyHash(curve, hash)
}

// Curve returns the curve of the key the hash was made from.
func (p PublicKeyHash) Curve() Curve {
	return p.curve
}

// Hash returns the twenty-byte hash without the curve tag.
func (p PublicKeyHash) Hash() [KeyHashLength]byte {
	return p.hash
}

// Bytes returns the wire form: the curve tag followed by the hash.
func (p PublicKeyHash) Bytes() []byte {
	out := make([]byte, 0, KeyHashLength+1)
	out = append(out, byte(p.curve))
	out = append(out, p.hash[:]...)
	return out
}

// String returns the base58-check form.
func (p PublicKeyHash) String() string {
	return encodeCheck(keyHashPrefix(p.curve), p.hash[:])
}

// MarshalText implements the encoding.TextMarshaler interface.
func (p PublicKeyHash) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (p *PublicKeyHash) UnmarshalText(text []byte) error {
	v, err := ParsePublicKeyHash(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

func keyHashPrefix(curve Curve) prefix {
	switch curve {
	case Secp256k1:
		return prefixSecp256k1KeyHash
	case P256:
		return prefixP256KeyHash
	default:
		return prefixEd25519KeyHash
	}
}
