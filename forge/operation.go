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

package forge

import (
	"golang.org/x/crypto/blake2b"

	"github.com/optakt/tezos-forge/encoding/wire"
	"github.com/optakt/tezos-forge/failure"
	"github.com/optakt/tezos-forge/identifier"
)

// Operation is either an unsigned or a signed operation.
type Operation interface {
	Unsigned() UnsignedOperation
	Signed() (SignedOperation, bool)
}

// UnsignedOperation is a non-empty list of contents anchored to a recent
// block, which is the form that gets signed.
type UnsignedOperation struct {
	Branch   identifier.BlockHash
	Contents []Content
}

// NewUnsignedOperation creates an operation after validating its contents.
func NewUnsignedOperation(branch identifier.BlockHash, contents ...Content) (UnsignedOperation, error) {
	err := Validate(contents...)
	if err != nil {
		return UnsignedOperation{}, err
	}
	op := UnsignedOperation{
		Branch:   branch,
		Contents: contents,
	}
	return op, nil
}

func (u UnsignedOperation) Unsigned() UnsignedOperation {
	return u
}

func (u UnsignedOperation) Signed() (SignedOperation, bool) {
	return SignedOperation{}, false
}

// WithSignature attaches a signature, which is stored in its generic form.
func (u UnsignedOperation) WithSignature(sig identifier.Signature) SignedOperation {
	return SignedOperation{
		UnsignedOperation: u,
		Signature:         sig.Generic(),
	}
}

// SignedOperation is an unsigned operation with its signature. Unsigned
// returns the operation without the signature.
type SignedOperation struct {
	UnsignedOperation
	Signature identifier.Signature
}

func (s SignedOperation) Signed() (SignedOperation, bool) {
	return s, true
}

// ForgeOperation encodes the branch, every content in order and, for signed
// operations, the signature.
func (c *Codec) ForgeOperation(op Operation) []byte {
	unsigned := op.Unsigned()
	w := wire.NewWriter()
	w.Bytes(unsigned.Branch[:])
	for _, content := range unsigned.Contents {
		content.encode(c, w)
	}
	signed, ok := op.Signed()
	if ok {
		w.Bytes(signed.Signature.Bytes())
	}
	return w.Data()
}

// UnforgeOperation decodes an operation. The binary form does not say whether
// a signature follows the contents, so the caller states it: when signed is
// set, the last sixty-four bytes are the signature and the result is a
// SignedOperation. Contents are decoded until the data is exhausted, and at
// least one content is required.
func (c *Codec) UnforgeOperation(data []byte, signed bool) (Operation, error) {

	body := data
	var sig identifier.Signature
	if signed {
		if len(data) < identifier.HashLength+identifier.SignatureLength {
			return nil, failure.TruncatedOperation{
				Description: failure.NewDescription("signed operation must hold a branch and a signature"),
				Field:       "signature",
				Offset:      0,
				Have:        len(data),
				Want:        identifier.HashLength + identifier.SignatureLength,
			}
		}
		split := len(data) - identifier.SignatureLength
		body = data[:split]
		sig, _ = identifier.DecodeSignature(data[split:])
	}

	r := wire.NewReader(body)
	branch, err := identifier.ReadBlockHash(r, "branch")
	if err != nil {
		return nil, err
	}

	var contents []Content
	for r.Len() > 0 {
		content, err := c.decodeContent(r)
		if err != nil {
			return nil, err
		}
		contents = append(contents, content)
	}
	if len(contents) == 0 {
		return nil, failure.InvalidLength{
			Description: failure.NewDescription("operation must hold at least one content"),
			Family:      "operation contents",
			Have:        0,
			Want:        1,
		}
	}

	unsigned := UnsignedOperation{
		Branch:   branch,
		Contents: contents,
	}
	if !signed {
		return unsigned, nil
	}

	return unsigned.WithSignature(sig), nil
}

// UnforgeUnsigned decodes an operation that carries no signature.
func (c *Codec) UnforgeUnsigned(data []byte) (UnsignedOperation, error) {
	op, err := c.UnforgeOperation(data, false)
	if err != nil {
		return UnsignedOperation{}, err
	}
	return op.Unsigned(), nil
}

// UnforgeSigned decodes an operation that ends with a signature.
func (c *Codec) UnforgeSigned(data []byte) (SignedOperation, error) {
	op, err := c.UnforgeOperation(data, true)
	if err != nil {
		return SignedOperation{}, err
	}
	signed, _ := op.Signed()
	return signed, nil
}

// ForgeToString encodes an operation as lowercase hexadecimal.
func (c *Codec) ForgeToString(op Operation, withPrefix bool) string {
	return encodeHex(c.ForgeOperation(op), withPrefix)
}

// UnforgeFromString decodes an operation from hexadecimal, which may start
// with 0x.
func (c *Codec) UnforgeFromString(s string, signed bool) (Operation, error) {
	data, err := decodeHex(s)
	if err != nil {
		return nil, err
	}
	return c.UnforgeOperation(data, signed)
}

// Hash returns the operation hash, which is the BLAKE2b-256 digest of the
// signed forged bytes.
func (c *Codec) Hash(op SignedOperation) identifier.OperationHash {
	return blake2b.Sum256(c.ForgeOperation(op))
}
