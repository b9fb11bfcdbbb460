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
)

// ForgeContent encodes one content, starting with its kind tag.
func (c *Codec) ForgeContent(content Content) []byte {
	w := wire.NewWriter()
	content.encode(c, w)
	return w.Data()
}

// UnforgeContent decodes one content from the start of the data and returns
// the remaining bytes.
func (c *Codec) UnforgeContent(data []byte) (Content, []byte, error) {
	r := wire.NewReader(data)
	content, err := c.decodeContent(r)
	if err != nil {
		return nil, nil, err
	}
	return content, r.Rest(), nil
}

// ForgeContentToString encodes one content as lowercase hexadecimal.
func (c *Codec) ForgeContentToString(content Content, withPrefix bool) string {
	return encodeHex(c.ForgeContent(content), withPrefix)
}

// UnforgeContentFromString decodes one content from hexadecimal, which may
// start with 0x. The string must hold exactly one content.
func (c *Codec) UnforgeContentFromString(s string) (Content, error) {
	data, err := decodeHex(s)
	if err != nil {
		return nil, err
	}
	r := wire.NewReader(data)
	content, err := c.decodeContent(r)
	if err != nil {
		return nil, err
	}
	if r.Len() != 0 {
		return nil, trailingBytes("content", r)
	}
	return content, nil
}

// ForgeBlockHeader encodes a block header, with or without its signature.
// Bakers sign the unsigned form.
func (c *Codec) ForgeBlockHeader(header BlockHeader, signed bool) []byte {
	w := wire.NewWriter()
	header.encode(w, signed)
	return w.Data()
}

// UnforgeBlockHeader decodes exactly one block header.
func (c *Codec) UnforgeBlockHeader(data []byte, signed bool) (BlockHeader, error) {
	r := wire.NewReader(data)
	header, err := decodeBlockHeader(r, signed)
	if err != nil {
		return BlockHeader{}, err
	}
	if r.Len() != 0 {
		return BlockHeader{}, trailingBytes("block header", r)
	}
	return header, nil
}
