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

// AddressLength is the size of an address on the wire.
const AddressLength = 22

const (
	implicitTag   = 0x00
	originatedTag = 0x01
	padding       = 0x00
)

// Address is the destination of a transaction. It is either an implicit
// account, identified by a public key hash, or an originated contract,
// identified by a twenty-byte contract hash.
type Address struct {
	originated bool
	implicit   PublicKeyHash
	contract   [KeyHashLength]byte
}

// ImplicitAddress returns the address of an account controlled by a key.
func ImplicitAddress(pkh PublicKeyHash) Address {
	return Address{
		implicit: pkh,
	}
}

// OriginatedAddress returns the address of a smart contract.
func OriginatedAddress(hash [KeyHashLength]byte) Address {
	return Address{
		originated: true,
		contract:   hash,
	}
}

// DecodeAddress decodes exactly one twenty-two byte address.
func DecodeAddress(data []byte) (Address, error) {
	if len(data) != AddressLength {
		return Address{}, failure.InvalidLength{
			Description: failure.NewDescription("address must be twenty-two bytes"),
			Family:      "address",
			Have:        len(data),
			Want:        AddressLength,
		}
	}

	switch data[0] {
	case implicitTag:
		pkh, err := DecodePublicKeyHash(data[1:])
		if err != nil {
			return Address{}, err
		}
		return ImplicitAddress(pkh), nil
	case originatedTag:
		if data[AddressLength-1] != padding {
			return Address{}, failure.UnknownTag{
				Description: failure.NewDescription("originated address must end with a zero padding byte"),
				Family:      "address padding",
				Tag:         data[AddressLength-1],
			}
		}
		var hash [KeyHashLength]byte
		copy(hash[:], data[1:AddressLength-1])
		return OriginatedAddress(hash), nil
	default:
		return Address{}, failure.UnknownTag{
			Description: failure.NewDescription("address must be implicit or originated"),
			Family:      "address",
			Tag:         data[0],
		}
	}
}

// ParseAddress parses the base58-check form of an implicit (tz1, tz2, tz3)
// or originated (KT1) address.
func ParseAddress(s string) (Address, error) {
	if strings.HasPrefix(s, "KT1") {
		payload, err := decodeCheck(s, prefixContractHash, s)
		if err != nil {
			return Address{}, err
		}
		var hash [KeyHashLength]byte
		copy(hash[:], payload)
		return OriginatedAddress(hash), nil
	}
	pkh, err := ParsePublicKeyHash(s)
	if err != nil {
		return Address{}, err
	}
	return ImplicitAddress(pkh), nil
}

// IsOriginated returns whether the address is a smart contract.
func (a Address) IsOriginated() bool {
	return a.originated
}

// KeyHash returns the public key hash of an implicit address.
func (a Address) KeyHash() (PublicKeyHash, bool) {
	return a.implicit, !a.originated
}

// ContractHash returns the hash of an originated address.
func (a Address) ContractHash() ([KeyHashLength]byte, bool) {
	return a.contract, a.originated
}

// Bytes returns the twenty-two byte wire form.
func (a Address) Bytes() []byte {
	out := make([]byte, 0, AddressLength)
	if !a.originated {
		out = append(out, implicitTag)
		return append(out, a.implicit.Bytes()...)
	}
	out = append(out, originatedTag)
	out = append(out, a.contract[:]...)
	return append(out, padding)
}

// String returns the base58-check form.
func (a Address) String() string {
	if a.originated {
		return encodeCheck(prefixContractHash, a.contract[:])
	}
	return a.implicit.String()
}

// MarshalText implements the encoding.TextMarshaler interface.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (a *Address) UnmarshalText(text []byte) error {
	v, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}
