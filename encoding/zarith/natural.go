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

package zarith

import (
	"math/big"

	"github.com/optakt/tezos-forge/failure"
)

// Natural is an immutable arbitrary-precision non-negative integer. Its zero
// value represents zero. The magnitude is kept as canonical big-endian bytes,
// so that two equal naturals are also equal when compared with `==`.
type Natural struct {
	mag string
}

// NewNatural parses a decimal string made only of digits.
func NewNatural(s string) (Natural, error) {
	if !digits(s) {
		return Natural{}, failure.InvalidValue{
			Description: failure.NewDescription("natural must be a non-empty string of decimal digits",
				failure.WithString("input", s),
			),
			Field: "natural",
		}
	}
	v, _ := new(big.Int).SetString(s, 10)
	return Natural{mag: string(v.Bytes())}, nil
}

// NaturalFromUint64 creates a natural from a machine integer.
func NaturalFromUint64(u uint64) Natural {
	v := new(big.Int).SetUint64(u)
	return Natural{mag: string(v.Bytes())}
}

// NaturalFromBig creates a natural from a copy of the given value, which must
// not be negative.
func NaturalFromBig(v *big.Int) (Natural, error) {
	if v.Sign() < 0 {
		return Natural{}, failure.InvalidValue{
			Description: failure.NewDescription("natural must not be negative",
				failure.WithString("input", v.String()),
			),
			Field: "natural",
		}
	}
	return Natural{mag: string(v.Bytes())}, nil
}

// Big returns the value as a new big integer.
func (n Natural) Big() *big.Int {
	return new(big.Int).SetBytes([]byte(n.mag))
}

// Uint64 returns the value as a machine integer, and whether it fits.
func (n Natural) Uint64() (uint64, bool) {
	v := n.Big()
	return v.Uint64(), v.IsUint64()
}

// IsZero returns whether the value is zero.
func (n Natural) IsZero() bool {
	return len(n.mag) == 0
}

// Cmp compares two naturals and returns -1, 0 or +1.
func (n Natural) Cmp(other Natural) int {
	return n.Big().Cmp(other.Big())
}

// Add returns the sum as a new natural.
func (n Natural) Add(other Natural) Natural {
	v := new(big.Int).Add(n.Big(), other.Big())
	return Natural{mag: string(v.Bytes())}
}

// Sub returns the difference, which fails if it would be negative.
func (n Natural) Sub(other Natural) (Natural, error) {
	v := new(big.Int).Sub(n.Big(), other.Big())
	return NaturalFromBig(v)
}

// Mul returns the product as a new natural.
func (n Natural) Mul(other Natural) Natural {
	v := new(big.Int).Mul(n.Big(), other.Big())
	return Natural{mag: string(v.Bytes())}
}

// Integer converts the natural to a signed integer.
func (n Natural) Integer() Integer {
	return Integer{mag: n.mag}
}

// String returns the decimal form.
func (n Natural) String() string {
	return n.Big().String()
}

// MarshalText implements the encoding.TextMarshaler interface.
func (n Natural) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (n *Natural) UnmarshalText(text []byte) error {
	v, err := NewNatural(string(text))
	if err != nil {
		return err
	}
	*n = v
	return nil
}

func digits(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
