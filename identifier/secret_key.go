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

// SecretKeyLength is the size of an Ed25519 seed and of a secp256k1 or P-256
// scalar.
const SecretKeyLength = 32

// SecretKey is the secret half of a key pair. It never appears in forged
// operations, so it only has a base58-check form.
type SecretKey struct {
	curve Curve
	key   [SecretKeyLength]byte
}

// NewSecretKey creates a secret key from its thirty-two raw bytes.
func NewSecretKey(curve Curve, key []byte) (SecretKey, error) {
	if !curve.Valid() {
		return SecretKey{}, failure.UnknownTag{
			Description: failure.NewDescription("curve is not supported"),
			Family:      "secret key",
			Tag:         byte(curve),
		}
	}
	if len(key) != SecretKeyLength {
		return SecretKey{}, failure.InvalidLength{
			Description: failure.NewDescription("secret key must be thirty-two bytes"),
			Family:      "secret key",
			Have:        len(key),
			Want:        SecretKeyLength,
		}
	}
	s := SecretKey{
		curve: curve,
	}
	copy(s.key[:], key)
	return s, nil
}

// redacted stands in for secret key material in errors.
const redacted = "<redacted>"

// ParseSecretKey parses the base58-check form (edsk, spsk or p2sk). For
// Ed25519, both the seed form and the expanded sixty-four byte form are
// accepted; the latter starts with the seed.
func ParseSecretKey(s string) (SecretKey, error) {
	switch {
	case strings.HasPrefix(s, "edsk"):
		payload, err := decodeCheck(s, prefixEd25519Seed, redacted)
		if err == nil {
			return NewSecretKey(Ed25519, payload)
		}
		payload, err = decodeCheck(s, prefixEd25519SecretKey, redacted)
		if err != nil {
			return SecretKey{}, err
		}
		return NewSecretKey(Ed25519, payload[:SecretKeyLength])
	case strings.HasPrefix(s, "spsk"):
		payload, err := decodeCheck(s, prefixSecp256k1SecretKey, redacted)
		if err != nil {
			return SecretKey{}, err
		}
		return NewSecretKey(Secp256k1, payload)
	case strings.HasPrefix(s, "p2sk"):
		payload, err := decodeCheck(s, prefixP256SecretKey, redacted)
		if err != nil {
			return SecretKey{}, err
		}
		return NewSecretKey(P256, payload)
	default:
		return SecretKey{}, failure.InvalidEncoding{
			Description: failure.NewDescription("secret key must start with edsk, spsk or p2sk"),
			Encoding:    "base58",
			Input:       redacted,
		}
	}
}

// Curve returns the curve of the key.
func (s SecretKey) Curve() Curve {
	return s.curve
}

// Key returns a copy of the raw secret bytes.
func (s SecretKey) Key() []byte {
	out := make([]byte, SecretKeyLength)
	copy(out, s.key[:])
	return out
}

// Encode returns the base58-check form of the key. String only names the
// curve and never prints key material.
func (s SecretKey) Encode() string {
	switch s.curve {
	case Secp256k1:
		return encodeCheck(prefixSecp256k1SecretKey, s.key[:])
	case P256:
		return encodeCheck(prefixP256SecretKey, s.key[:])
	default:
		return encodeCheck(prefixEd25519Seed, s.key[:])
	}
}

// String describes the key without revealing it.
func (s SecretKey) String() string {
	return s.curve.String() + " secret key"
}
