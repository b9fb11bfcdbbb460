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

package signer

import (
	"golang.org/x/crypto/blake2b"

	"github.com/optakt/tezos-forge/failure"
	"github.com/optakt/tezos-forge/identifier"
)

// Watermark tags. The first three predate Tenderbake; the last three are the
// consensus tags used since.
const (
	TagBlockHeader           = 0x01
	TagEndorsement           = 0x02
	TagGenericOperation      = 0x03
	TagTenderbakeBlock       = 0x11
	TagPreendorsement        = 0x12
	TagTenderbakeEndorsement = 0x13
)

// Watermark is the prefix prepended to forged bytes before hashing, so that
// a signature made in one context never verifies in another.
type Watermark []byte

func BlockHeader(chain identifier.ChainID) Watermark {
	return chainWatermark(TagBlockHeader, chain)
}

func Endorsement(chain identifier.ChainID) Watermark {
	return chainWatermark(TagEndorsement, chain)
}

// GenericOperation is the watermark of every manager and anonymous operation.
func GenericOperation() Watermark {
	return Watermark{TagGenericOperation}
}

func TenderbakeBlock(chain identifier.ChainID) Watermark {
	return chainWatermark(TagTenderbakeBlock, chain)
}

func Preendorsement(chain identifier.ChainID) Watermark {
	return chainWatermark(TagPreendorsement, chain)
}

func TenderbakeEndorsement(chain identifier.ChainID) Watermark {
	return chainWatermark(TagTenderbakeEndorsement, chain)
}

// Custom returns a watermark made of arbitrary caller-supplied bytes.
func Custom(prefix []byte) Watermark {
	w := make(Watermark, len(prefix))
	copy(w, prefix)
	return w
}

func chainWatermark(tag byte, chain identifier.ChainID) Watermark {
	w := make(Watermark, 0, 1+identifier.ChainIDLength)
	w = append(w, tag)
	w = append(w, chain[:]...)
	return w
}

// ParseWatermark splits a watermarked message, as received by a remote
// signer, into its watermark and the forged payload that follows it. Only the
// known tags are accepted.
func ParseWatermark(message []byte) (Watermark, []byte, error) {

	if len(message) == 0 {
		return nil, nil, failure.InvalidLength{
			Description: failure.NewDescription("message must start with a watermark"),
			Family:      "watermark",
			Have:        0,
			Want:        1,
		}
	}

	tag := message[0]
	switch tag {
	case TagGenericOperation:
		return Watermark{tag}, message[1:], nil
	case TagBlockHeader, TagEndorsement, TagTenderbakeBlock, TagPreendorsement, TagTenderbakeEndorsement:
	default:
		return nil, nil, failure.UnknownTag{
			Description: failure.NewDescription("tag does not match any watermark"),
			Family:      "watermark",
			Tag:         tag,
		}
	}

	size := 1 + identifier.ChainIDLength
	if len(message) < size {
		return nil, nil, failure.TruncatedOperation{
			Description: failure.NewDescription("watermark must carry a chain id"),
			Field:       "chain_id",
			Offset:      1,
			Have:        len(message) - 1,
			Want:        identifier.ChainIDLength,
		}
	}

	return Custom(message[:size]), message[size:], nil
}

// Tag returns the first byte of the watermark, or zero for an empty one.
func (w Watermark) Tag() byte {
	if len(w) == 0 {
		return 0
	}
	return w[0]
}

// ChainID returns the chain the watermark is bound to, if it is one of the
// chain-specific watermarks.
func (w Watermark) ChainID() (identifier.ChainID, bool) {
	switch w.Tag() {
	case TagBlockHeader, TagEndorsement, TagTenderbakeBlock, TagPreendorsement, TagTenderbakeEndorsement:
	default:
		return identifier.ChainID{}, false
	}
	if len(w) != 1+identifier.ChainIDLength {
		return identifier.ChainID{}, false
	}
	var chain identifier.ChainID
	copy(chain[:], w[1:])
	return chain, true
}

// Digest returns the BLAKE2b-256 hash of the watermark followed by the
// payload, which is what the curves sign.
func Digest(w Watermark, payload []byte) [32]byte {
	h, _ := blake2b.New256(nil)
	_, _ = h.Write(w)
	_, _ = h.Write(payload)
	var digest [32]byte
	copy(digest[:], h.Sum(nil))
	return digest
}
