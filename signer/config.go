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

// DefaultConfig is the default configuration for the signer, which supports
// every curve.
var DefaultConfig = Config{
	Algorithms: []Algorithm{
		NewEd25519(),
		NewSecp256k1(),
		NewP256(nil),
	},
}

// Config contains the algorithms a signer dispatches to.
type Config struct {
	Algorithms []Algorithm
}

// Option is a function that modifies a signer configuration.
type Option func(*Config)

// WithAlgorithms replaces the set of supported algorithms.
func WithAlgorithms(algorithms ...Algorithm) Option {
	return func(cfg *Config) {
		cfg.Algorithms = algorithms
	}
}
