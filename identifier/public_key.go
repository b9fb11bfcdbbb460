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

	"golang.org/x/crypto/blake2b"

	"github.com/optakt/tezos-forge/failure"
)

const maxPublicKeyLength = 33

// PublicKeyLength returns the size of a public key on the given curve,
// without the tag.
func PublicKeyLength(curve Curve) int {
	switch curve {
	case Ed25519:
		return 32
	case Secp256k1, P256:
		return 33
	default:
		return 0
	}
}

// PublicKey is a tagged public key. Ed25519 keys hold thirty-two bytes, while
// secp256k1 and P-256 keys hold thirty-three bytes in compressed form.
type PublicKey struct {
	curve Curve
	key   [maxPublicKeyLength]byte
}

// NewPublicKey creates a public key, checking that its size matches the curve.
func NewPublicKey(curve Curve, key []byte) (PublicKey, error) {
	if !curve.Valid() {
		return PublicKey{}, failure.UnknownTag{
			Description: failure.NewDescription("curve is not supported"),
			Family:      "public key",
			Tag:         byte(curve),
		}
	}
	want := PublicKeyLength(curve)
	if len(key) != want {
		return PublicKey{}, failure.InvalidLength{
			Description: failure.NewDescription("public key size does not match curve",
				failure.WithString("curve", curve.String()),
			),
			Family: "public key",
			Have:   len(key),
			Want:   want,
		}
	}
	p := PublicKey{
		curve: curve,
	}
	copy(p.key[:], key)
	return p, nil
}

// DecodePublicKey decodes exactly one tagged public key.
func DecodePublicKey(data []byte) (PublicKey, error) {
	if len(data) == 0 {
		return PublicKey{}, failure.InvalidLength{
			Description: failure.NewDescription("tagged public key must not be empty"),
			Family:      "public key",
			Have:        0,
			Want:        1,
		}
	}
	curve := Curve(data[0])
	if !curve.Valid() {
		return PublicKey{}, failure.UnknownTag{
			Description: failure.NewDescription("curve is not supported"),
			Family:      "public key",
			Tag:         data[0],
		}
	}
	if len(data) != PublicKeyLength(curve)+1 {
		return PublicKey{}, failure.InvalidLength{
			Description: failure.NewDescription("tagged public key must be tag and key",
				failure.WithString("curve", curve.String()),
			),
			Family: "public key",
			Have:   len(data),
			Want:   PublicKeyLength(curve) + 1,
		}
	}
	return NewPublicKey(curve, data[1:])
}

// ParsePublicKey parses the base58-check form (edpk, sppk or p2pk).
func ParsePublicKey(s string) (PublicKey, error) {
	var curve Curve
	switch {
	case strings.HasPrefix(s, "edpk"):
		curve = Ed25519
	case strings.HasPrefix(s, "sppk"):
		curve = Secp256k1
	case strings.HasPrefix(s, "p2pk"):
		curve = P256
	default:
		return PublicKey{}, failure.InvalidEncoding{
			Description: failure.NewDescription("public key must start with edpk, sppk or p2pk"),
			Encoding:    "base58",
			Input:       s,
		}
	}
	payload, err := decodeCheck(s, publicKeyPrefix(curve), s)
	if err != nil {
		return PublicKey{}, err
	}
	return NewPublicKey(curve, payload)
}

// Curve returns the curve of the key.
func (p PublicKey) Curve() Curve {
	return p.curve
}

// Key returns a copy of the raw key bytes without the tag.
func (p PublicKey) Key() []byte {
	n := PublicKeyLength(p.curve)
	out := make([]byte, n)
	copy(out, p.key[:n])
	return out
}

// Bytes returns the wire form: the curve tag followed by the key.
func (p PublicKey) Bytes() []byte {
	return append([]byte{byte(p.curve)}, p.Key()...)
}

// Hash derives the public key hash of the key, which is the twenty-byte
// BLAKE2b digest of the untagged key.
func (p PublicKey) Hash() PublicKeyHash {
	h, _ := blake2b.New(KeyHashLength, nil)
	_, _ = h.Write(p.Key())
	var hash [KeyHashLength]byte
	copy(hash[:], h.Sum(nil))
	return PublicKeyHash{
		curve: p.curve,
		hash:  hash,
	}
}

// String returns the base58-check form.
func (p PublicKey) String() string {
	return encodeCheck(publicKeyPrefix(p.curve), p.Key())
}

// MarshalText implements the encoding.TextMarshaler interface.
func (p PublicKey) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (p *PublicKey) UnmarshalText(text []byte) error {
	v, err := ParsePublicKey(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

func publicKeyPrefix(curve Curve) prefix {
	switch curve {
	case Secp256k1:
		return prefixSecp256k1PublicKey
	case P256:
		return prefixP256PublicKey
	default:
		return prefixEd25519PublicKey
	}
}
