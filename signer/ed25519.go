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
	"golang.org/x/crypto/ed25519"

	"github.com/optakt/tezos-forge/identifier"
)

// Ed25519 signs with deterministic EdDSA over Curve25519. Secret keys are
// thirty-two byte seeds.
type Ed25519 struct{}

func NewEd25519() *Ed25519 {
	return &Ed25519{}
}

func (e *Ed25519) Curve() identifier.Curve {
	return identifier.Ed25519
}

func (e *Ed25519) PublicKey(sk identifier.SecretKey) (identifier.PublicKey, error) {
	priv := ed25519.NewKeyFromSeed(sk.Key())
	pub := priv.Public().(ed25519.PublicKey)
	return identifier.NewPublicKey(identifier.Ed25519, pub)
}

func (e *Ed25519) Sign(sk identifier.SecretKey, digest [32]byte) (identifier.Signature, error) {
	priv := ed25519.NewKeyFromSeed(sk.Key())
	var sig [identifier.SignatureLength]byte
	copy(sig[:], ed25519.Sign(priv, digest[:]))
	return identifier.NewSignature(identifier.Ed25519, sig)
}

func (e *Ed25519) Verify(pk identifier.PublicKey, digest [32]byte, sig [identifier.SignatureLength]byte) bool {
	return ed25519.Verify(pk.Key(), digest[:], sig[:])
}
