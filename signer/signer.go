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
	"fmt"

	"github.com/optakt/tezos-forge/failure"
	"github.com/optakt/tezos-forge/forge"
	"github.com/optakt/tezos-forge/identifier"
)

// Forger turns operations into the bytes that get signed.
type Forger interface {
	ForgeOperation(op forge.Operation) []byte
}

// Signer hashes watermarked payloads and dispatches signing and verification
// to the algorithm of the key's curve. It is immutable once created.
type Signer struct {
	forger     Forger
	algorithms map[identifier.Curve]Algorithm
}

// New creates a signer that forges operations with the given forger.
func New(forger Forger, options ...Option) *Signer {

	cfg := DefaultConfig
	for _, option := range options {
		option(&cfg)
	}

	algorithms := make(map[identifier.Curve]Algorithm, len(cfg.Algorithms))
	for _, algorithm := range cfg.Algorithms {
		algorithms[algorithm.Curve()] = algorithm
	}

	s := Signer{
		forger:     forger,
		algorithms: algorithms,
	}

	return &s
}

// PublicKey derives the public key of a secret key.
func (s *Signer) PublicKey(sk identifier.SecretKey) (identifier.PublicKey, error) {
	algorithm, err := s.algorithm(sk.Curve())
	if err != nil {
		return identifier.PublicKey{}, err
	}
	return algorithm.PublicKey(sk)
}

// SignBytes signs the digest of the watermarked payload and returns a
// signature tagged with the key's curve.
func (s *Signer) SignBytes(w Watermark, payload []byte, sk identifier.SecretKey) (identifier.Signature, error) {
	algorithm, err := s.algorithm(sk.Curve())
	if err != nil {
		return identifier.Signature{}, err
	}
	sig, err := algorithm.Sign(sk, Digest(w, payload))
	if err != nil {
		return identifier.Signature{}, fmt.Errorf("could not sign payload: %w", err)
	}
	return sig, nil
}

// VerifyBytes checks a signature over the watermarked payload. A signature
// that does not match returns false without error. A signature tagged with
// another curve than the key fails; a generic signature is checked on the
// key's curve.
func (s *Signer) VerifyBytes(w Watermark, payload []byte, sig identifier.Signature, pk identifier.PublicKey) (bool, error) {
	curve, tagged := sig.Curve()
	if tagged && curve != pk.Curve() {
		return false, failure.AlgorithmMismatch{
			Description: failure.NewDescription("signature was not produced on the curve of the key"),
			Key:         pk.Curve().String(),
			Signature:   curve.String(),
		}
	}
	algorithm, err := s.algorithm(pk.Curve())
	if err != nil {
		return false, err
	}
	return algorithm.Verify(pk, Digest(w, payload), sig.Data()), nil
}

// SignOperation forges the operation, signs it under the generic operation
// watermark and attaches the signature.
func (s *Signer) SignOperation(op forge.UnsignedOperation, sk identifier.SecretKey) (forge.SignedOperation, error) {
	sig, err := s.SignBytes(GenericOperation(), s.forger.ForgeOperation(op), sk)
	if err != nil {
		return forge.SignedOperation{}, err
	}
	return op.WithSignature(sig), nil
}

// VerifyOperation checks the signature of a signed operation against the
// forged form of its unsigned part.
func (s *Signer) VerifyOperation(op forge.SignedOperation, pk identifier.PublicKey) (bool, error) {
	return s.VerifyBytes(GenericOperation(), s.forger.ForgeOperation(op.Unsigned()), op.Signature, pk)
}

func (s *Signer) algorithm(curve identifier.Curve) (Algorithm, error) {
	algorithm, ok := s.algorithms[curve]
	if !ok {
		return nil, failure.UnsupportedKeyKind{
			Description: failure.NewDescription("no signing algorithm for curve"),
			Curve:       curve.String(),
		}
	}
	return algorithm, nil
}
