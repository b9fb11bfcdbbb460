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

package signatory

import (
	"github.com/go-playground/validator/v10"

	"github.com/optakt/tezos-forge/forge"
)

// DefaultConfig allows what a baker needs to sign.
var DefaultConfig = Config{
	Kinds: []forge.Kind{
		forge.KindSeedNonceRevelation,
		forge.KindPreendorsement,
		forge.KindEndorsement,
	},
	Blocks: true,
}

// Config lists the operation kinds the signatory signs, and whether it signs
// block headers.
type Config struct {
	Kinds  []forge.Kind `validate:"dive,kind"`
	Blocks bool
}

// WithKinds replaces the operation kinds the signatory signs.
func WithKinds(kinds ...forge.Kind) func(*Config) {
	return func(cfg *Config) {
		cfg.Kinds = kinds
	}
}

// WithBlocks sets whether block headers are signed.
func WithBlocks(allow bool) func(*Config) {
	return func(cfg *Config) {
		cfg.Blocks = allow
	}
}

func newConfigValidator() (*validator.Validate, error) {

	v := validator.New()
	err := v.RegisterValidation("kind", func(fl validator.FieldLevel) bool {
		return forge.Kind(fl.Field().Uint()).Known()
	})
	if err != nil {
		return nil, err
	}

	return v, nil
}
