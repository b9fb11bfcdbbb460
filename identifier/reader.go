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
	"github.com/optakt/tezos-forge/encoding/wire"
	"github.com/optakt/tezos-forge/failure"
)

// The reader helpers consume exactly one identifier from a cursor, so that
// identifiers can be decoded back-to-back inside a larger structure.

// ReadPublicKeyHash consumes a public key hash from the reader.
func ReadPublicKeyHash(r *wire.Reader, field string) (PublicKeyHash, error) {
	data, err := r.Bytes(field, KeyHashLength+1)
	if err != nil {
		return PublicKeyHash{}, err
	}
	return DecodePublicKeyHash(data)
}

// ReadPublicKey peeks at the curve tag to know how many bytes to consume.
func ReadPublicKey(r *wire.Reader, field string) (PublicKey, error) {
	tag, err := r.Peek(field)
	if err != nil {
		return PublicKey{}, err
	}
	curve := Curve(tag)
	if !curve.Valid() {
		return PublicKey{}, failure.UnknownTag{
			Description: failure.NewDescription("curve is not supported",
				failure.WithString("field", field),
				failure.WithInt("offset", r.Offset()),
			),
			Family: "public key",
			Tag:    tag,
		}
	}
	data, err := r.Bytes(field, PublicKeyLength(curve)+1)
	if err != nil {
		return PublicKey{}, err
	}
	return DecodePublicKey(data)
}

// ReadAddress consumes an address from the reader.
func ReadAddress(r *wire.Reader, field string) (Address, error) {
	data, err := r.Bytes(field, AddressLength)
	if err != nil {
		return Address{}, err
	}
	return DecodeAddress(data)
}

// ReadSignature consumes a signature from the reader.
func ReadSignature(r *wire.Reader, field string) (Signature, error) {
	data, err := r.Bytes(field, SignatureLength)
	if err != nil {
		return Signature{}, err
	}
	return DecodeSignature(data)
}

// ReadBlockHash consumes a block hash from the reader.
func ReadBlockHash(r *wire.Reader, field string) (BlockHash, error) {
	var h BlockHash
	err := r.Fixed(field, h[:])
	return h, err
}

// ReadProtocolHash consumes a protocol hash from the reader.
func ReadProtocolHash(r *wire.Reader, field string) (ProtocolHash, error) {
	var h ProtocolHash
	err := r.Fixed(field, h[:])
	return h, err
}

// ReadPayloadHash consumes a payload hash from the reader.
func ReadPayloadHash(r *wire.Reader, field string) (PayloadHash, error) {
	var h PayloadHash
	err := r.Fixed(field, h[:])
	return h, err
}

// ReadOperationListListHash consumes an operation list list hash from the reader.
func ReadOperationListListHash(r *wire.Reader, field string) (OperationListListHash, error) {
	var h OperationListListHash
	err := r.Fixed(field, h[:])
	return h, err
}

// ReadContextHash consumes a context hash from the reader.
func ReadContextHash(r *wire.Reader, field string) (ContextHash, error) {
	var h ContextHash
	err := r.Fixed(field, h[:])
	return h, err
}

// ReadNonceHash consumes a nonce hash from the reader.
func ReadNonceHash(r *wire.Reader, field string) (NonceHash, error) {
	var h NonceHash
	err := r.Fixed(field, h[:])
	return h, err
}

// ReadChainID consumes a chain id from the reader.
func ReadChainID(r *wire.Reader, field string) (ChainID, error) {
	var h ChainID
	err := r.Fixed(field, h[:])
	return h, err
}
