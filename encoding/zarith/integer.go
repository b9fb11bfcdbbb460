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

// Integer is an immutable arbitrary-precision signed integer. Its zero value
// represents zero, which is never negative.
type Integer struct {
	neg bool
	mag string
}

// NewInteger parses a decimal string made of an optional minus sign followed
// by digits.
func NewInteger(s string) (Integer, error) {
	body := s
	if len(body) > 0 && body[0] == '-' {
		body = body[1:]
	}
	if !digits(body) {
		return Integer{}, failure.InvalidValue{
			Description: failure.NewDescription("integer must be decimal digits with an optional leading minus",
				failure.WithString("input", s),
			),
			Field: "integer",
		}
	}
	v, _ := new(big.Int).SetString(s, 10)
	return IntegerFromBig(v), nil
}

// IntegerFromInt64 creates an integer from a machine integer.
func IntegerFromInt64(i int64) Integer {
	return IntegerFromBig(big.NewInt(i))
}

// IntegerFromBig creates an integer from a copy of the given value.
func IntegerFromBig(v *big.Int) Integer {
	return Integer{
		neg: v.Sign() < 0,
		mag: string(new(big.Int).Abs(v).Bytes()),
	}
}

// Big returns the value as a new big integer.
func (i Integer) Big() *big.Int {
	v := new(big.Int).SetBytes([]byte(i.mag))
	if i.neg {
		v.Neg(v)
	}
	return v
}

// Int64 returns the value as a machine integer, and whether it fits.
func (i Integer) Int64() (int64, bool) {
	v := i.Big()
	return v.Int64(), v.IsInt64()
}

// Sign returns -1, 0 or +1 depending on the sign of the value.
func (i Integer) Sign() int {
	switch {
	case len(i.mag) == 0:
		return 0
	case i.neg:
		return -1
	default:
		return 1
	}
}

// Cmp compares two integers and returns -1, 0 or +1.
func (i Integer) Cmp(other Integer) int {
	return i.Big().Cmp(other.Big())
}

// Add returns the sum as a new integer.
func (i Integer) Add(other Integer) Integer {
	return IntegerFromBig(new(big.Int).Add(i.Big(), other.Big()))
}

// Sub returns the difference as a new integer.
func (i Integer) Sub(other Integer) Integer {
	return IntegerFromBig(new(big.Int).Sub(i.Big(), other.Big()))
}

// Mul returns the product as a new integer.
func (i Integer) Mul(other Integer) Integer {
	return IntegerFromBig(new(big.Int).Mul(i.Big(), other.Big()))
}

// Neg returns the opposite value.
func (i Integer) Neg() Integer {
	return IntegerFromBig(new(big.Int).Neg(i.Big()))
}

// Abs returns the magnitude as a natural.
func (i Integer) Abs() Natural {
	return Natural{mag: i.mag}
}

// String returns the decimal form.
func (i Integer) String() string {
	return i.Big().String()
}

// MarshalText implements the encoding.TextMarshaler interface.
func (i Integer) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (i *Integer) UnmarshalText(text []byte) error {
	v, err := NewInteger(string(text))
	if err != nil {
		return err
	}
	*i = v
	return nil
}
