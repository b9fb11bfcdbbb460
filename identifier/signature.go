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

// SignatureLength is the size of every signature on the wire.
const SignatureLength = 64

// Signature holds sixty-four signature bytes. It is either tagged with the
// curve that produced it or generic, which is how it appears inside forged
// operations. Both forms share the same bytes.
type Signature struct {
	curve  Curve
	tagged bool
	data   [SignatureLength]byte
}

// NewSignature creates a curve-tagged signature.
func NewSignature(curve Curve, data [SignatureLength]byte) (Signature, error) {
	if !curve.Valid() {
		return Signature{}, failure.UnknownTag{
			Description: failure.NewDescription("curve is not supported"),
			Family:      "signature",
			Tag:         byte(curve),
		}
	}
	s := Signature{
		curve:  curve,
		tagged: true,
		data:   data,
	}
	return s, nil
}

// GenericSignature creates a signature that does not carry its curve.
func GenericSignature(data [SignatureLength]byte) Signature {
	return Signature{
		data: data,
	}
}

// DecodeSignature decodes exactly sixty-four bytes into a generic signature.
func DecodeSignature(data []byte) (Signature, error) {
	if len(data) != SignatureLength {
		return Signature{}, failure.InvalidLength{
			Description: failure.NewDescription("signature must be sixty-four bytes"),
			Family:      "signature",
			Have:        len(data),
			Want:        SignatureLength,
		}
	}
	var sig [SignatureLength]byte
	copy(sig[:], data)
	return GenericSignature(sig), nil
}

// ParseSignature parses the base58-check form (edsig, spsig1, p2sig or sig).
func ParseSignature(s string) (Signature, error) {
	var p prefix
	tagged := true
	var curve Curve
	switch {
	case strings.HasPrefix(s, "edsig"):
		p, curve = prefixEd25519Signature, Ed25519
	case strings.HasPrefix(s, "spsig1"):
		p, curve = prefixSecp256k1Signature, Secp256k1
	case strings.HasPrefix(s, "p2sig"):
		p, curve = prefixP256Signature, P256
	case strings.HasPrefix(s, "sig"):
		p, tagged = prefixGenericSignature, false
	default:
		return Signature{}, failure.InvalidEncoding{
			Description: failure.NewDescription("signature must start with edsig, spsig1, p2sig or sig"),
			Encoding:    "base58",
			Input:       s,
		}
	}
	payload, err := decodeCheck(s, p, s)
	if err != nil {
		return Signature{}, err
	}
	var data [SignatureLength]byte
	copy(data[:], payload)
	if !tagged {
		return GenericSignature(data), nil
	}
	return NewSignature(curve, data)
}

// Curve returns the curve of a tagged signature. The second return value is
// false for generic signatures.
func (s Signature) Curve() (Curve, bool) {
	return s.curve, s.tagged
}

// Generic returns the same signature without its curve tag.
func (s Signature) Generic() Signature {
	return GenericSignature(s.data)
}

// WithCurve reinterprets the signature as produced by the given curve.
func (s Signature) WithCurve(curve Curve) (Signature, error) {
	return NewSignature(curve, s.data)
}

// Data returns the sixty-four signature bytes.
func (s Signature) Data() [SignatureLength]byte {
	return s.data
}

// Bytes returns the wire form, which is the same for tagged and generic
// signatures.
func (s Signature) Bytes() []byte {
	out := make([]byte, SignatureLength)
	copy(out, s.data[:])
	return out
}

// String returns the base58-check form.
func (s Signature) String() string {
	if !s.tagged {
		return encodeCheck(prefixGenericSignature, s.data[:])
	}
	switch s.curve {
	case Secp256k1:
		return encodeCheck(prefixSecp256k1Signature, s.data[:])
	case P256:
		return encodeCheck(prefixP256Signature, s.data[:])
	default:
		return encodeCheck(prefixEd25519Signature, s.data[:])
	}
}

// MarshalText implements the encoding.TextMarshaler interface.
func (s Signature) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (s *Signature) UnmarshalText(text []byte) error {
	v, err := ParseSignature(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
