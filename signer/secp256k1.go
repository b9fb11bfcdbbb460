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
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/optakt/tezos-forge/failure"
	"github.com/optakt/tezos-forge/identifier"
)

// Secp256k1 signs with deterministic ECDSA (RFC 6979) over secp256k1.
// Signatures are the compact r‖s form with a low S value.
type Secp256k1 struct{}

func NewSecp256k1() *Secp256k1 {
	return &Secp256k1{}
}

func (s *Secp256k1) Curve() identifier.Curve {
	return identifier.Secp256k1
}

func (s *Secp256k1) PublicKey(sk identifier.SecretKey) (identifier.PublicKey, error) {
	priv, err := s.privateKey(sk)
	if err != nil {
		return identifier.PublicKey{}, err
	}
	return identifier.NewPublicKey(identifier.Secp256k1, priv.PubKey().SerializeCompressed())
}

func (s *Secp256k1) Sign(sk identifier.SecretKey, digest [32]byte) (identifier.Signature, error) {
	priv, err := s.privateKey(sk)
	if err != nil {
		return identifier.Signature{}, err
	}

	// The compact form starts with the public key recovery code.
	compact := ecdsa.SignCompact(priv, digest[:], true)
	var sig [identifier.SignatureLength]byte
	copy(sig[:], compact[1:])

	return identifier.NewSignature(identifier.Secp256k1, sig)
}

// Verify only accepts signatures in low-S form, as the network does.
func (s *Secp256k1) Verify(pk identifier.PublicKey, digest [32]byte, sig [identifier.SignatureLength]byte) bool {
	pub, err := secp256k1.ParsePubKey(pk.Key())
	if err != nil {
		return false
	}
	var r, v secp256k1.ModNScalar
	if r.SetByteSlice(sig[:32]) || r.IsZero() {
		return false
	}
	if v.SetByteSlice(sig[32:]) || v.IsZero() || v.IsOverHalfOrder() {
		return false
	}
	return ecdsa.NewSignature(&r, &v).Verify(digest[:], pub)
}

func (s *Secp256k1) privateKey(sk identifier.SecretKey) (*secp256k1.PrivateKey, error) {
	var scalar secp256k1.ModNScalar
	overflow := scalar.SetByteSlice(sk.Key())
	if overflow || scalar.IsZero() {
		return nil, failure.InvalidValue{
			Description: failure.NewDescription("secret key is not a valid secp256k1 scalar"),
			Field:       "secret_key",
		}
	}
	return secp256k1.NewPrivateKey(&scalar), nil
}
