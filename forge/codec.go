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
	"encoding/hex"
	"strings"

	"github.com/optakt/tezos-forge/failure"
	"github.com/optakt/tezos-forge/micheline"
)

// ScriptCodec encodes the script expressions embedded in contents. Encoded
// expressions carry their own four-byte length prefix.
type ScriptCodec interface {
	EncodeExpression(node micheline.Node) []byte
	DecodeExpression(data []byte) (micheline.Node, []byte, error)
}

// Config configures a codec.
type Config struct {
	Script ScriptCodec
}

// Option is a function that modifies a configuration.
type Option func(*Config)

// WithScriptCodec sets the codec used for script expressions.
func WithScriptCodec(script ScriptCodec) Option {
	return func(config *Config) {
		config.Script = script
	}
}

// Codec forges operation contents and operations to their binary form, and
// unforges binary data back into values. It holds no mutable state and is
// safe for concurrent use.
type Codec struct {
	script ScriptCodec
}

// NewCodec creates a new codec. Without options, script expressions are
// handled by the binary Micheline codec.
func NewCodec(options ...Option) *Codec {

	cfg := Config{
		Script: micheline.NewCodec(),
	}
	for _, option := range options {
		option(&cfg)
	}

	c := Codec{
		script: cfg.Script,
	}

	return &c
}

// decodeHex decodes lowercase or uppercase hexadecimal with an optional 0x
// prefix.
func decodeHex(s string) ([]byte, error) {
	trimmed := strings.TrimPrefix(s, "0x")
	data, err := hex.DecodeString(trimmed)
	if err != nil {
		return nil, failure.InvalidEncoding{
			Description: failure.NewDescription("string is not valid hexadecimal",
				failure.WithErr(err),
			),
			Encoding: "hex",
			Input:    s,
		}
	}
	return data, nil
}

func encodeHex(data []byte, withPrefix bool) string {
	encoded := hex.EncodeToString(data)
	if withPrefix {
		return "0x" + encoded
	}
	return encoded
}
