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
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"io"
	"math/big"

	"github.com/optakt/tezos-forge/failure"
	"github.com/optakt/tezos-forge/identifier"
)

// P256 signs with ECDSA over NIST P-256. Public keys are compressed points.
type P256 struct {
	random io.Reader
}

// NewP256 creates the P-256 algorithm. Nonces are drawn from the given
// source, or from crypto/rand when it is nil.
func NewP256(random io.Reader) *P256 {

	if random == nil {
		random = rand.Reader
	}

	p := P256{
		random: random,
	}

	return &p
}

func (p *P256) Curve() identifier.Curve {
	return identifier.P256
}

func (p *P256) PublicKey(sk identifier.SecretKey) (identifier.PublicKey, error) {
	priv, err := p.privateKey(sk)
	if err != nil {
		return identifier.PublicKey{}, err
	}
	compressed := elliptic.MarshalCompressed(priv.Curve, priv.X, priv.Y)
	return identifier.NewPublicKey(identifier.P256, compressed)
}

func (p *P256) Sign(sk identifier.SecretKey, digest [32]byte) (identifier.Signature, error) {
	priv, err := p.privateKey(sk)
	if err != nil {
		return identifier.Signature{}, err
	}

	r, s, err := ecdsa.Sign(p.random, priv, digest[:])
	if err != nil {
		return identifier.Signature{}, failure.InvalidValue{
			Description: failure.NewDescription("could not sign digest", failure.WithErr(err)),
			Field:       "secret_key",
		}
	}

	var sig [identifier.SignatureLength]byte
	r.FillBytes(sig[:32])
	s.FillBytes(sig[32:])

	return identifier.NewSignature(identifier.P256, sig)
}

func (p *P256) Verify(pk identifier.PublicKey, digest [32]byte, sig [identifier.SignatureLength]byte) bool {
	curve := elliptic.P256()
	x, y := elliptic.UnmarshalCompressed(curve, pk.Key())
	if x == nil {
		return false
	}
	pub := ecdsa.PublicKey{
		Curve: curve,
		X:     x,
		Y:     y,
	}
	r := new(big.Int).SetBytes(sig[:32])
	s := new(big.Int).SetBytes(sig[32:])
	return ecdsa.Verify(&pub, digest[:], r, s)
}

func (p *P256) privateKey(sk identifier.SecretKey) (*ecdsa.PrivateKey, error) {
	curve := elliptic.P256()
	d := new(big.Int).SetBytes(sk.Key())
	if d.Sign() == 0 || d.Cmp(curve.Params().N) >= 0 {
		return nil, failure.InvalidValue{
			Description: failure.NewDescription("secret key is not a valid P-256 scalar"),
			Field:       "secret_key",
		}
	}
	x, y := curve.ScalarBaseMult(sk.Key())
	priv := ecdsa.PrivateKey{
		PublicKey: ecdsa.PublicKey{
			Curve: curve,
			X:     x,
			Y:     y,
		},
		D: d,
	}
	return &priv, nil
}
