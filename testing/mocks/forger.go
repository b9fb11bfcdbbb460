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

	"github.com/optakt/tezos-forge/forge"
)

type Unforger struct {
	UnforgeUnsignedFunc    func(data []byte) (forge.UnsignedOperation, error)
	UnforgeBlockHeaderFunc func(data []byte, signed bool) (forge.BlockHeader, error)
}

func BaselineUnforger(t *testing.T) *Unforger {
	t.Helper()

	u := Unforger{
		UnforgeUnsignedFunc: func([]byte) (forge.UnsignedOperation, error) {
			return GenericOperation, nil
		},
		UnforgeBlockHeaderFunc: func([]byte, bool) (forge.BlockHeader, error) {
			return GenericBlockHeader(GenericLevel, 0), nil
		},
	}

	return &u
}

func (u *Unforger) UnforgeUnsigned(data []byte) (forge.UnsignedOperation, error) {
	return u.UnforgeUnsignedFunc(data)
}

func (u *Unforger) UnforgeBlockHeader(data []byte, signed bool) (forge.BlockHeader, error) {
	return u.UnforgeBlockHeaderFunc(data, signed)
}

type Forger struct {
	ForgeOperationFunc func(op forge.Operation) []byte
}

func BaselineForger(t *testing.T) *Forger {
	t.Helper()

	f := Forger{
		ForgeOperationFunc: func(forge.Operation) []byte {
			return GenericBytes
		},
	}

	return &f
}

func (f *Forger) ForgeOperation(op forge.Operation) []byte {
	return f.ForgeOperationFunc(op)
}
