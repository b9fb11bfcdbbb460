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
	"github.com/optakt/tezos-forge/encoding/wire"
	"github.com/optakt/tezos-forge/failure"
)

// MaxEntrypointLength is the longest name a named entrypoint may have.
const MaxEntrypointLength = 31

// DefaultEntrypoint is called when a transaction does not name one.
const DefaultEntrypoint = "default"

const namedEntrypoint = 0xff

// Entrypoints with a reserved one-byte tag. Any other name is written in full.
var entrypointTags = map[string]byte{
	"default":         0,
	"root":            1,
	"do":              2,
	"set_delegate":    3,
	"remove_delegate": 4,
}

var entrypointNames = map[byte]string{
	0: "default",
	1: "root",
	2: "do",
	3: "set_delegate",
	4: "remove_delegate",
}

func writeEntrypoint(w *wire.Writer, name string) {
	tag, ok := entrypointTags[name]
	if ok {
		w.Byte(tag)
		return
	}
	w.Byte(namedEntrypoint)
	w.Byte(byte(len(name)))
	w.Bytes([]byte(name))
}

func readEntrypoint(r *wire.Reader) (string, error) {
	offset := r.Offset()
	tag, err := r.Byte("entrypoint")
	if err != nil {
		return "", err
	}
	if tag != namedEntrypoint {
		name, ok := entrypointNames[tag]
		if !ok {
			return "", failure.UnknownTag{
				Description: failure.NewDescription("entrypoint tag is not reserved",
					failure.WithInt("offset", offset),
				),
				Family: "entrypoint",
				Tag:    tag,
			}
		}
		return name, nil
	}
	size, err := r.Byte("entrypoint")
	if err != nil {
		return "", err
	}
	if size == 0 || size > MaxEntrypointLength {
		return "", failure.InvalidLength{
			Description: failure.NewDescription("entrypoint name has invalid length",
				failure.WithInt("offset", offset),
			),
			Family: "entrypoint",
			Have:   int(size),
			Want:   MaxEntrypointLength,
		}
	}
	name, err := r.Bytes("entrypoint", int(size))
	if err != nil {
		return "", err
	}
	// Reserved names always use their tag.
	reserved, ok := entrypointTags[string(name)]
	if ok {
		return "", failure.UnknownTag{
			Description: failure.NewDescription("reserved entrypoint written in full",
				failure.WithInt("offset", offset),
				failure.WithString("name", string(name)),
			),
			Family: "entrypoint",
			Tag:    reserved,
		}
	}
	return string(name), nil
}
