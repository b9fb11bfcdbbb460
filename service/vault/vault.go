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

package vault

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/optakt/tezos-forge/failure"
	"github.com/optakt/tezos-forge/identifier"
)

// Deriver derives the public key of a secret key.
type Deriver interface {
	PublicKey(sk identifier.SecretKey) (identifier.PublicKey, error)
}

// Vault holds the secret keys a remote signer may sign with, indexed by the
// hash of their public key.
type Vault struct {
	keys map[identifier.PublicKeyHash]pair
}

type pair struct {
	secret identifier.SecretKey
	public identifier.PublicKey
}

// New creates a vault holding the given secret keys.
func New(deriver Deriver, keys ...identifier.SecretKey) (*Vault, error) {

	v := Vault{
		keys: make(map[identifier.PublicKeyHash]pair, len(keys)),
	}

	for _, sk := range keys {
		pk, err := deriver.PublicKey(sk)
		if err != nil {
			return nil, fmt.Errorf("could not derive %s public key: %w", sk.Curve(), err)
		}
		v.keys[pk.Hash()] = pair{secret: sk, public: pk}
	}

	return &v, nil
}

// Load reads base58-check secret keys, one per line. Blank lines and lines
// starting with # are skipped. Every invalid line is reported, without the
// content of the line.
func Load(deriver Deriver, reader io.Reader) (*Vault, error) {

	var keys []identifier.SecretKey
	var merr *multierror.Error
	scanner := bufio.NewScanner(reader)
	number := 0
	for scanner.Scan() {
		number++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		sk, err := identifier.ParseSecretKey(line)
		if err != nil {
			merr = multierror.Append(merr, fmt.Errorf("invalid secret key on line %d", number))
			continue
		}
		keys = append(keys, sk)
	}
	err := scanner.Err()
	if err != nil {
		return nil, fmt.Errorf("could not read keys: %w", err)
	}
	err = merr.ErrorOrNil()
	if err != nil {
		return nil, err
	}

	return New(deriver, keys...)
}

// Lookup returns the key pair of a public key hash.
func (v *Vault) Lookup(pkh identifier.PublicKeyHash) (identifier.SecretKey, identifier.PublicKey, error) {
	p, ok := v.keys[pkh]
	if !ok {
		return identifier.SecretKey{}, identifier.PublicKey{}, failure.UnknownKey{
			Description: failure.NewDescription("no secret key for public key hash"),
			Key:         pkh.String(),
		}
	}
	return p.secret, p.public, nil
}

// Keys lists the public key hashes of the vault in lexical order.
func (v *Vault) Keys() []identifier.PublicKeyHash {
	keys := make([]identifier.PublicKeyHash, 0, len(v.keys))
	for pkh := range v.keys {
		keys = append(keys, pkh)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].String() < keys[j].String()
	})
	return keys
}
