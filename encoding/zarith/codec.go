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

const (
	continuation = 0x80
	sign         = 0x40
	low7         = 0x7f
	low6         = 0x3f
)

var (
	mask7 = big.NewInt(low7)
	mask6 = big.NewInt(low6)
)

// EncodeNatural encodes a natural in groups of seven bits, least significant
// group first, with the high bit of every byte but the last set.
func EncodeNatural(n Natural) []byte {
	v := n.Big()
	return appendGroups(nil, v)
}

// EncodeInteger encodes an integer with a first byte holding the lowest six
// bits of the magnitude and the sign bit, followed by groups of seven bits as
// for naturals.
func EncodeInteger(i Integer) []byte {
	v := new(big.Int).SetBytes([]byte(i.mag))

	first := byte(new(big.Int).And(v, mask6).Uint64())
	if i.neg && len(i.mag) > 0 {
		first |= sign
	}
	v.Rsh(v, 6)
	if v.Sign() == 0 {
		return []byte{first}
	}

	out := []byte{first | continuation}
	return appendGroups(out, v)
}

func appendGroups(out []byte, v *big.Int) []byte {
	for {
		group := byte(new(big.Int).And(v, mask7).Uint64())
		v.Rsh(v, 7)
		if v.Sign() == 0 {
			return append(out, group)
		}
		out = append(out, group|continuation)
	}
}

// DecodeNatural decodes a natural from the start of the data and returns the
// remaining bytes. It rejects empty input, a continuation chain that runs off
// the end, and encodings that carry a redundant trailing zero group.
func DecodeNatural(data []byte) (Natural, []byte, error) {
	v, size, err := decodeGroups(data, 0, 0)
	if err != nil {
		return Natural{}, nil, err
	}
	return Natural{mag: string(v.Bytes())}, data[size:], nil
}

// DecodeInteger decodes an integer from the start of the data and returns the
// remaining bytes. On top of the checks done for naturals, it rejects the
// encoding of negative zero.
func DecodeInteger(data []byte) (Integer, []byte, error) {
	if len(data) == 0 {
		return Integer{}, nil, failure.MalformedNumber{
			Description: failure.NewDescription("no bytes to decode"),
			Offset:      0,
		}
	}

	first := data[0]
	neg := first&sign != 0
	v := big.NewInt(int64(first & low6))
	size := 1
	if first&continuation != 0 {
		rest, n, err := decodeGroups(data[1:], 1, 6)
		if err != nil {
			return Integer{}, nil, err
		}
		v.Or(v, rest)
		size += n
	}

	if neg && v.Sign() == 0 {
		return Integer{}, nil, failure.MalformedNumber{
			Description: failure.NewDescription("negative zero is not a canonical integer"),
			Offset:      0,
		}
	}

	i := Integer{
		neg: neg,
		mag: string(v.Bytes()),
	}
	return i, data[size:], nil
}

// decodeGroups reads seven-bit groups until a byte without the continuation
// bit, shifting the first group left by the given number of bits. It returns
// the value and the number of bytes consumed.
func decodeGroups(data []byte, offset int, shift uint) (*big.Int, int, error) {
	if len(data) == 0 {
		return nil, 0, failure.MalformedNumber{
			Description: failure.NewDescription("no bytes to decode"),
			Offset:      offset,
		}
	}

	v := new(big.Int)
	for i, b := range data {
		group := new(big.Int).SetUint64(uint64(b & low7))
		v.Or(v, group.Lsh(group, shift))
		shift += 7

		if b&continuation != 0 {
			continue
		}
		if b == 0 && (i > 0 || offset > 0) {
			return nil, 0, failure.MalformedNumber{
				Description: failure.NewDescription("trailing zero group is not canonical"),
				Offset:      offset + i,
			}
		}
		return v, i + 1, nil
	}

	return nil, 0, failure.MalformedNumber{
		Description: failure.NewDescription("continuation chain runs past the end of the data",
			failure.WithInt("length", len(data)),
		),
		Offset: offset + len(data),
	}
}
