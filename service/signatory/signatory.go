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

package signatory

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/optakt/tezos-forge/failure"
	"github.com/optakt/tezos-forge/forge"
	"github.com/optakt/tezos-forge/identifier"
	"github.com/optakt/tezos-forge/service/guard"
	"github.com/optakt/tezos-forge/signer"
)

// Vault gives access to the keys the signatory signs with.
type Vault interface {
	Lookup(pkh identifier.PublicKeyHash) (identifier.SecretKey, identifier.PublicKey, error)
	Keys() []identifier.PublicKeyHash
}

// Unforger decodes the payloads of signing requests.
type Unforger interface {
	UnforgeUnsigned(data []byte) (forge.UnsignedOperation, error)
	UnforgeBlockHeader(data []byte, signed bool) (forge.BlockHeader, error)
}

// Signer signs watermarked payloads.
type Signer interface {
	SignBytes(w signer.Watermark, payload []byte, sk identifier.SecretKey) (identifier.Signature, error)
}

// Guard protects consensus signatures against double signing.
type Guard interface {
	Sign(req guard.Request, sign func() (identifier.Signature, error)) (identifier.Signature, error)
}

// Signatory decides whether a watermarked message may be signed and signs it
// with a key of its vault.
type Signatory struct {
	log      zerolog.Logger
	vault    Vault
	unforger Unforger
	signer   Signer
	guard    Guard
	kinds    map[forge.Kind]struct{}
	blocks   bool
}

// New creates a signatory. Consensus messages go through the guard; every
// other message is signed directly.
func New(log zerolog.Logger, vault Vault, unforger Unforger, signer Signer, guard Guard, options ...func(*Config)) (*Signatory, error) {

	cfg := DefaultConfig
	for _, option := range options {
		option(&cfg)
	}

	validate, err := newConfigValidator()
	if err != nil {
		return nil, fmt.Errorf("could not initialize validator: %w", err)
	}
	err = validate.Struct(cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	kinds := make(map[forge.Kind]struct{}, len(cfg.Kinds))
	for _, kind := range cfg.Kinds {
		kinds[kind] = struct{}{}
	}

	s := Signatory{
		log:      log.With().Str("component", "signatory").Logger(),
		vault:    vault,
		unforger: unforger,
		signer:   signer,
		guard:    guard,
		kinds:    kinds,
		blocks:   cfg.Blocks,
	}

	return &s, nil
}

// PublicKey returns the public key with the given hash.
func (s *Signatory) PublicKey(pkh identifier.PublicKeyHash) (identifier.PublicKey, error) {
	_, pk, err := s.vault.Lookup(pkh)
	if err != nil {
		return identifier.PublicKey{}, err
	}
	return pk, nil
}

// Keys returns the hashes of the keys the signatory signs with.
func (s *Signatory) Keys() []identifier.PublicKeyHash {
	return s.vault.Keys()
}

// Sign signs a watermarked message with the key of the given hash.
func (s *Signatory) Sign(pkh identifier.PublicKeyHash, message []byte) (identifier.Signature, error) {

	sk, _, err := s.vault.Lookup(pkh)
	if err != nil {
		return identifier.Signature{}, err
	}

	w, payload, err := signer.ParseWatermark(message)
	if err != nil {
		return identifier.Signature{}, fmt.Errorf("could not parse watermark: %w", err)
	}

	log := s.log.With().Str("key", pkh.String()).Hex("watermark", w).Logger()
	sign := func() (identifier.Signature, error) {
		return s.signer.SignBytes(w, payload, sk)
	}

	if w.Tag() == signer.TagGenericOperation {
		op, err := s.unforger.UnforgeUnsigned(payload)
		if err != nil {
			return identifier.Signature{}, fmt.Errorf("could not decode operation: %w", err)
		}
		for _, content := range op.Contents {
			err = s.allow(content.Kind())
			if err != nil {
				return identifier.Signature{}, err
			}
		}
		sig, err := sign()
		if err != nil {
			return identifier.Signature{}, err
		}
		log.Info().Int("contents", len(op.Contents)).Msg("operation signed")
		return sig, nil
	}

	req, err := s.consensus(pkh, w, payload)
	if err != nil {
		return identifier.Signature{}, err
	}
	sig, err := s.guard.Sign(req, sign)
	if err != nil {
		return identifier.Signature{}, err
	}

	log.Info().
		Str("class", req.Class.String()).
		Int32("level", req.Level).
		Int32("round", req.Round).
		Msg("consensus message signed")

	return sig, nil
}

// consensus builds the guard request of a consensus message.
func (s *Signatory) consensus(pkh identifier.PublicKeyHash, w signer.Watermark, payload []byte) (guard.Request, error) {

	chain, _ := w.ChainID()
	req := guard.Request{
		Key:    pkh,
		Chain:  chain,
		Digest: signer.Digest(w, payload),
	}

	switch w.Tag() {

	case signer.TagTenderbakeBlock:
		if !s.blocks {
			return guard.Request{}, failure.ForbiddenOperation{
				Description: failure.NewDescription("block signing is disabled"),
				Kind:        "block",
			}
		}
		header, err := s.unforger.UnforgeBlockHeader(payload, false)
		if err != nil {
			return guard.Request{}, fmt.Errorf("could not decode block header: %w", err)
		}
		round, ok := header.Round()
		if !ok {
			return guard.Request{}, failure.InvalidValue{
				Description: failure.NewDescription("fitness does not end with a round", failure.WithInt("elements", len(header.Fitness))),
				Field:       "fitness",
			}
		}
		req.Class = guard.ClassBlock
		req.Level = header.Level
		req.Round = round

	case signer.TagPreendorsement, signer.TagTenderbakeEndorsement:
		op, err := s.unforger.UnforgeUnsigned(payload)
		if err != nil {
			return guard.Request{}, fmt.Errorf("could not decode consensus operation: %w", err)
		}
		if len(op.Contents) != 1 {
			return guard.Request{}, failure.InvalidValue{
				Description: failure.NewDescription("consensus operation must have a single content", failure.WithInt("contents", len(op.Contents))),
				Field:       "contents",
			}
		}
		content := op.Contents[0]
		err = s.allow(content.Kind())
		if err != nil {
			return guard.Request{}, err
		}
		switch c := content.(type) {
		case forge.Preendorsement:
			if w.Tag() != signer.TagPreendorsement {
				return guard.Request{}, mismatch(w, content)
			}
			req.Class = guard.ClassPreendorsement
			req.Level = c.Level
			req.Round = c.Round
		case forge.Endorsement:
			if w.Tag() != signer.TagTenderbakeEndorsement {
				return guard.Request{}, mismatch(w, content)
			}
			req.Class = guard.ClassEndorsement
			req.Level = c.Level
			req.Round = c.Round
		default:
			return guard.Request{}, mismatch(w, content)
		}

	default:
		return guard.Request{}, failure.ForbiddenOperation{
			Description: failure.NewDescription("watermark predates Tenderbake", failure.WithHex("watermark", w)),
			Kind:        "legacy",
		}
	}

	return req, nil
}

func (s *Signatory) allow(kind forge.Kind) error {
	_, ok := s.kinds[kind]
	if !ok {
		return failure.ForbiddenOperation{
			Description: failure.NewDescription("operation kind is not allowed"),
			Kind:        kind.String(),
		}
	}
	return nil
}

func mismatch(w signer.Watermark, content forge.Content) error {
	return failure.ForbiddenOperation{
		Description: failure.NewDescription("content does not match watermark", failure.WithHex("watermark", w)),
		Kind:        content.Kind().String(),
	}
}
