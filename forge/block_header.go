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
	"encoding/binary"
	"time"

	"github.com/optakt/tezos-forge/encoding/wire"
	"github.com/optakt/tezos-forge/identifier"
)

// ProofOfWorkNonceLength is the size of the proof of work nonce of a block
// header.
const ProofOfWorkNonceLength = 8

// BlockHeader is a full Tenderbake block header: the shell header followed by
// the protocol data.
type BlockHeader struct {
	Level                     int32
	Proto                     uint8
	Predecessor               identifier.BlockHash
	Timestamp                 time.Time
	ValidationPass            uint8
	OperationsHash            identifier.OperationListListHash
	Fitness                   [][]byte
	Context                   identifier.ContextHash
	PayloadHash               identifier.PayloadHash
	PayloadRound              int32
	ProofOfWorkNonce          [ProofOfWorkNonceLength]byte
	SeedNonceHash             *identifier.NonceHash
	LiquidityBakingEscapeVote bool
	Signature                 identifier.Signature
}

// Round returns the round at which the block was baked. It is the last
// element of the fitness.
func (h BlockHeader) Round() (int32, bool) {
	if len(h.Fitness) == 0 {
		return 0, false
	}
	last := h.Fitness[len(h.Fitness)-1]
	if len(last) != 4 {
		return 0, false
	}
	return int32(binary.BigEndian.Uint32(last)), true
}

func (h BlockHeader) encode(w *wire.Writer, signed bool) {
	w.Int32(h.Level)
	w.Byte(h.Proto)
	w.Bytes(h.Predecessor[:])
	w.Int64(h.Timestamp.Unix())
	w.Byte(h.ValidationPass)
	w.Bytes(h.OperationsHash[:])
	w.Nested(func(inner *wire.Writer) {
		for _, element := range h.Fitness {
			inner.Sized(element)
		}
	})
	w.Bytes(h.Context[:])
	w.Bytes(h.PayloadHash[:])
	w.Int32(h.PayloadRound)
	w.Bytes(h.ProofOfWorkNonce[:])
	if h.SeedNonceHash != nil {
		w.Bool(true)
		w.Bytes(h.SeedNonceHash[:])
	} else {
		w.Bool(false)
	}
	w.Bool(h.LiquidityBakingEscapeVote)
	if signed {
		w.Bytes(h.Signature.Bytes())
	}
}

func decodeBlockHeader(r *wire.Reader, signed bool) (BlockHeader, error) {

	var h BlockHeader
	var err error

	h.Level, err = r.Int32("level")
	if err != nil {
		return BlockHeader{}, err
	}
	h.Proto, err = r.Byte("proto")
	if err != nil {
		return BlockHeader{}, err
	}
	h.Predecessor, err = identifier.ReadBlockHash(r, "predecessor")
	if err != nil {
		return BlockHeader{}, err
	}
	timestamp, err := r.Int64("timestamp")
	if err != nil {
		return BlockHeader{}, err
	}
	h.Timestamp = time.Unix(timestamp, 0).UTC()
	h.ValidationPass, err = r.Byte("validation_pass")
	if err != nil {
		return BlockHeader{}, err
	}
	h.OperationsHash, err = identifier.ReadOperationListListHash(r, "operations_hash")
	if err != nil {
		return BlockHeader{}, err
	}

	fitness, err := r.Sized("fitness")
	if err != nil {
		return BlockHeader{}, err
	}
	for fitness.Len() > 0 {
		element, err := fitness.Sized("fitness")
		if err != nil {
			return BlockHeader{}, err
		}
		value, _ := element.Bytes("fitness", element.Len())
		h.Fitness = append(h.Fitness, value)
	}

	h.Context, err = identifier.ReadContextHash(r, "context")
	if err != nil {
		return BlockHeader{}, err
	}
	h.PayloadHash, err = identifier.ReadPayloadHash(r, "payload_hash")
	if err != nil {
		return BlockHeader{}, err
	}
	h.PayloadRound, err = r.Int32("payload_round")
	if err != nil {
		return BlockHeader{}, err
	}
	err = r.Fixed("proof_of_work_nonce", h.ProofOfWorkNonce[:])
	if err != nil {
		return BlockHeader{}, err
	}

	present, err := r.Bool("seed_nonce_hash")
	if err != nil {
		return BlockHeader{}, err
	}
	if present {
		nonce, err := identifier.ReadNonceHash(r, "seed_nonce_hash")
		if err != nil {
			return BlockHeader{}, err
		}
		h.SeedNonceHash = &nonce
	}

	h.LiquidityBakingEscapeVote, err = r.Bool("liquidity_baking_escape_vote")
	if err != nil {
		return BlockHeader{}, err
	}

	if signed {
		h.Signature, err = identifier.ReadSignature(r, "signature")
		if err != nil {
			return BlockHeader{}, err
		}
	}

	return h, nil
}
