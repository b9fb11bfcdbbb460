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
	"fmt"

	"github.com/optakt/tezos-forge/encoding/wire"
	"github.com/optakt/tezos-forge/encoding/zarith"
	"github.com/optakt/tezos-forge/identifier"
)

// ManagerContent is implemented by the manager operation kinds.
type ManagerContent interface {
	Content
	ManagerFields() Manager
}

// ManagerFields returns the fields shared by manager operations.
func (m Manager) ManagerFields() Manager {
	return m
}

func (m Manager) encode(w *wire.Writer) {
	w.Bytes(m.Source.Bytes())
	w.Bytes(zarith.EncodeNatural(m.Fee))
	w.Bytes(zarith.EncodeNatural(m.Counter))
	w.Bytes(zarith.EncodeNatural(m.GasLimit))
	w.Bytes(zarith.EncodeNatural(m.StorageLimit))
}

func decodeManager(r *wire.Reader) (Manager, error) {

	source, err := identifier.ReadPublicKeyHash(r, "source")
	if err != nil {
		return Manager{}, err
	}
	fee, err := readNatural(r, "fee")
	if err != nil {
		return Manager{}, err
	}
	counter, err := readNatural(r, "counter")
	if err != nil {
		return Manager{}, err
	}
	gas, err := readNatural(r, "gas_limit")
	if err != nil {
		return Manager{}, err
	}
	storage, err := readNatural(r, "storage_limit")
	if err != nil {
		return Manager{}, err
	}

	m := Manager{
		Source:       source,
		Fee:          fee,
		Counter:      counter,
		GasLimit:     gas,
		StorageLimit: storage,
	}

	return m, nil
}

func readNatural(r *wire.Reader, field string) (zarith.Natural, error) {
	offset := r.Offset()
	n, rest, err := zarith.DecodeNatural(r.Rest())
	if err != nil {
		return zarith.Natural{}, fmt.Errorf("could not decode %s (offset: %d): %w", field, offset, err)
	}
	_ = r.Skip(field, r.Len()-len(rest))
	return n, nil
}

func writeOptionalKeyHash(w *wire.Writer, pkh *identifier.PublicKeyHash) {
	if pkh == nil {
		w.Bool(false)
		return
	}
	w.Bool(true)
	w.Bytes(pkh.Bytes())
}

func readOptionalKeyHash(r *wire.Reader, field string) (*identifier.PublicKeyHash, error) {
	present, err := r.Bool(field)
	if err != nil || !present {
		return nil, err
	}
	pkh, err := identifier.ReadPublicKeyHash(r, field)
	if err != nil {
		return nil, err
	}
	return &pkh, nil
}
