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
)

type Vault struct {
	LookupFunc func(pkh identifier.PublicKeyHash) (identifier.SecretKey, identifier.PublicKey, error)
	KeysFunc   func() []identifier.PublicKeyHash
}

func BaselineVault(t *testing.T) *Vault {
	t.Helper()

	v := Vault{
		LookupFunc: func(identifier.PublicKeyHash) (identifier.SecretKey, identifier.PublicKey, error) {
			return GenericSecretKey, GenericPublicKey, nil
		},
		KeysFunc: func() []identifier.PublicKeyHash {
			return []identifier.PublicKeyHash{GenericKeyHash}
		},
	}

	return &v
}

func (v *Vault) Lookup(pkh identifier.PublicKeyHash) (identifier.SecretKey, identifier.PublicKey, error) {
	return v.LookupFunc(pkh)
}

func (v *Vault) Keys() []identifier.PublicKeyHash {
	return v.KeysFunc()
}
