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

package mocks

import (
	"testing"

	"github.com/optakt/tezos-forge/identifier"
	"github.com/optakt/tezos-forge/service/guard"
	"github.com/optakt/tezos-forge/signer"
)

type Signer struct {
	SignBytesFunc func(w signer.Watermark, payload []byte, sk identifier.SecretKey) (identifier.Signature, error)
}

func BaselineSigner(t *testing.T) *Signer {
	t.Helper()

	s := Signer{
		SignBytesFunc: func(signer.Watermark, []byte, identifier.SecretKey) (identifier.Signature, error) {
			return GenericSignature, nil
		},
	}

	return &s
}

func (s *Signer) SignBytes(w signer.Watermark, payload []byte, sk identifier.SecretKey) (identifier.Signature, error) {
	return s.SignBytesFunc(w, payload, sk)
}

type Guard struct {
	SignFunc func(req guard.Request, sign func() (identifier.Signature, error)) (identifier.Signature, error)
}

// BaselineGuard lets every request through to the signing function.
func BaselineGuard(t *testing.T) *Guard {
	t.Helper()

	g := Guard{
		SignFunc: func(_ guard.Request, sign func() (identifier.Signature, error)) (identifier.Signature, error) {
			return sign()
		},
	}

	return &g
}

func (g *Guard) Sign(req guard.Request, sign func() (identifier.Signature, error)) (identifier.Signature, error) {
	return g.SignFunc(req, sign)
}

type Signatory struct {
	PublicKeyFunc func(pkh identifier.PublicKeyHash) (identifier.PublicKey, error)
	KeysFunc      func() []identifier.PublicKeyHash
	SignFunc      func(pkh identifier.PublicKeyHash, message []byte) (identifier.Signature, error)
}

func BaselineSignatory(t *testing.T) *Signatory {
	t.Helper()

	s := Signatory{
		PublicKeyFunc: func(identifier.PublicKeyHash) (identifier.PublicKey, error) {
			return GenericPublicKey, nil
		},
		KeysFunc: func() []identifier.PublicKeyHash {
			return []identifier.PublicKeyHash{GenericKeyHash}
		},
		SignFunc: func(identifier.PublicKeyHash, []byte) (identifier.Signature, error) {
			return GenericSignature, nil
		},
	}

	return &s
}

func (s *Signatory) PublicKey(pkh identifier.PublicKeyHash) (identifier.PublicKey, error) {
	return s.PublicKeyFunc(pkh)
}

func (s *Signatory) Keys() []identifier.PublicKeyHash {
	return s.KeysFunc()
}

func (s *Signatory) Sign(pkh identifier.PublicKeyHash, message []byte) (identifier.Signature, error) {
	return s.SignFunc(pkh, message)
}
