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
	"github.com/optakt/tezos-forge/encoding/wire"
	"github.com/optakt/tezos-forge/identifier"
)

// InlinedEndorsement is a complete signed endorsement embedded as evidence.
type InlinedEndorsement struct {
	Branch      identifier.BlockHash
	Endorsement Endorsement
	Signature   identifier.Signature
}

// InlinedPreendorsement is a complete signed preendorsement embedded as
// evidence.
type InlinedPreendorsement struct {
	Branch         identifier.BlockHash
	Preendorsement Preendorsement
	Signature      identifier.Signature
}

func (i InlinedEndorsement) encode(c *Codec, w *wire.Writer) {
	w.Bytes(i.Branch[:])
	i.Endorsement.encode(c, w)
	w.Bytes(i.Signature.Bytes())
}

func (i InlinedPreendorsement) encode(c *Codec, w *wire.Writer) {
	w.Bytes(i.Branch[:])
	i.Preendorsement.encode(c, w)
	w.Bytes(i.Signature.Bytes())
}

// decodeInlined reads one length-prefixed inlined consensus operation, which
// must hold a content of the expected kind and nothing after the signature.
func (c *Codec) decodeInlined(r *wire.Reader, field string, kind Kind) (identifier.BlockHash, Content, identifier.Signature, error) {

	sub, err := r.Sized(field)
	if err != nil {
		return identifier.BlockHash{}, nil, identifier.Signature{}, err
	}

	branch, err := identifier.ReadBlockHash(sub, "branch")
	if err != nil {
		return identifier.BlockHash{}, nil, identifier.Signature{}, err
	}

	offset := sub.Offset()
	content, err := c.decodeContent(sub)
	if err != nil {
		return identifier.BlockHash{}, nil, identifier.Signature{}, err
	}
	if content.Kind() != kind {
		return identifier.BlockHash{}, nil, identifier.Signature{}, unexpectedKind(content.Kind(), kind, offset)
	}

	sig, err := identifier.ReadSignature(sub, "signature")
	if err != nil {
		return identifier.BlockHash{}, nil, identifier.Signature{}, err
	}
	if sub.Len() != 0 {
		return identifier.BlockHash{}, nil, identifier.Signature{}, trailingBytes(field, sub)
	}

	return branch, content, sig, nil
}
