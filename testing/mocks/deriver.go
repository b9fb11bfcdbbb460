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

type Deriver struct {
	PublicKeyFunc func(sk identifier.SecretKey) (identifier.PublicKey, error)
}

func BaselineDeriver(t *testing.T) *Deriver {
	t.Helper()

	d := Deriver{
		PublicKeyFunc: func(identifier.SecretKey) (identifier.PublicKey, error) {
			return GenericPublicKey, nil
		},
	}

	return &d
}

func (d *Deriver) PublicKey(sk identifier.SecretKey) (identifier.PublicKey, error) {
	return d.PublicKeyFunc(sk)
}
