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

package identifier

import (
	"github.com/optakt/tezos-forge/failure"
)

// Sizes of the fixed-length identifiers.
const (
	HashLength    = 32
	ChainIDLength = 4
)

// BlockHash identifies a block. The branch of an operation is a block hash.
type BlockHash [HashLength]byte

// DecodeBlockHash decodes a block hash from its binary form.
func DecodeBlockHash(data []byte) (BlockHash, error) {
	var h BlockHash
	err := decodeFixed(data, "block hash", h[:])
	return h, err
}

// ParseBlockHash parses the base58-check form of a block hash.
func ParseBlockHash(s string) (BlockHash, error) {
	var h BlockHash
	err := parseFixed(s, prefixBlockHash, h[:])
	return h, err
}

// Bytes returns the binary form.
func (h BlockHash) Bytes() []byte {
	return append([]byte(nil), h[:]...)
}

// String returns the base58-check form.
func (h BlockHash) String() string {
	return encodeCheck(prefixBlockHash, h[:])
}

// MarshalText implements the encoding.TextMarshaler interface.
func (h BlockHash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (h *BlockHash) UnmarshalText(text []byte) error {
	return parseFixed(string(text), prefixBlockHash, h[:])
}

// OperationHash identifies a signed operation.
type OperationHash [HashLength]byte

// DecodeOperationHash decodes an operation hash from its binary form.
func DecodeOperationHash(data []byte) (OperationHash, error) {
	var h OperationHash
	err := decodeFixed(data, "operation hash", h[:])
	return h, err
}

// ParseOperationHash parses the base58-check form of an operation hash.
func ParseOperationHash(s string) (OperationHash, error) {
	var h OperationHash
	err := parseFixed(s, prefixOperationHash, h[:])
	return h, err
}

// Bytes returns the binary form.
func (h OperationHash) Bytes() []byte {
	return append([]byte(nil), h[:]...)
}

// String returns the base58-check form.
func (h OperationHash) String() string {
	return encodeCheck(prefixOperationHash, h[:])
}

// MarshalText implements the encoding.TextMarshaler interface.
func (h OperationHash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (h *OperationHash) UnmarshalText(text []byte) error {
	return parseFixed(string(text), prefixOperationHash, h[:])
}

type ProtocolHash [HashLength]byte

// DecodeProtocolHash decodes a protocol hash from its binary form.
func DecodeProtocolHash(data []byte) (ProtocolHash, error) {
	var h ProtocolHash
	err := decodeFixed(data, "protocol hash", h[:])
	return h, err
}

// ParseProtocolHash parses the base58-check form of a protocol hash.
func ParseProtocolHash(s string) (ProtocolHash, error) {
	var h ProtocolHash
	err := parseFixed(s, prefixProtocolHash, h[:])
	return h, err
}

// Bytes returns the binary form.
func (h ProtocolHash) Bytes() []byte {
	return append([]byte(nil), h[:]...)
}

// String returns the base58-check form.
func (h ProtocolHash) String() string {
	return encodeCheck(prefixProtocolHash, h[:])
}

// MarshalText implements the encoding.TextMarshaler interface.
func (h ProtocolHash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (h *ProtocolHash) UnmarshalText(text []byte) error {
	return parseFixed(string(text), prefixProtocolHash, h[:])
}

// PayloadHash identifies the payload endorsed by consensus operations.
type PayloadHash [HashLength]byte

// DecodePayloadHash decodes a payload hash from its binary form.
func DecodePayloadHash(data []byte) (PayloadHash, error) {
	var h PayloadHash
	err := decodeFixed(data, "payload hash", h[:])
	return h, err
}

// ParsePayloadHash parses the base58-check form of a payload hash.
func ParsePayloadHash(s string) (PayloadHash, error) {
	var h PayloadHash
	err := parseFixed(s, prefixPayloadHash, h[:])
	return h, err
}

// Bytes returns the binary form.
func (h PayloadHash) Bytes() []byte {
	return append([]byte(nil), h[:]...)
}

// String returns the base58-check form.
func (h PayloadHash) String() string {
	return encodeCheck(prefixPayloadHash, h[:])
}

// MarshalText implements the encoding.TextMarshaler interface.
func (h PayloadHash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (h *PayloadHash) UnmarshalText(text []byte) error {
	return parseFixed(string(text), prefixPayloadHash, h[:])
}

type OperationListListHash [HashLength]byte

// DecodeOperationListListHash decodes an operation list list hash from its binary form.
func DecodeOperationListListHash(data []byte) (OperationListListHash, error) {
	var h OperationListListHash
	err := decodeFixed(data, "operation list list hash", h[:])
	return h, err
}

// ParseOperationListListHash parses the base58-check form of an operation list list hash.
func ParseOperationListListHash(s string) (OperationListListHash, error) {
	var h OperationListListHash
	err := parseFixed(s, prefixOperationListListHash, h[:])
	return h, err
}

// Bytes returns the binary form.
func (h OperationListListHash) Bytes() []byte {
	return append([]byte(nil), h[:]...)
}

// String returns the base58-check form.
func (h OperationListListHash) String() string {
	return encodeCheck(prefixOperationListListHash, h[:])
}

// MarshalText implements the encoding.TextMarshaler interface.
func (h OperationListListHash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (h *OperationListListHash) UnmarshalText(text []byte) error {
	return parseFixed(string(text), prefixOperationListListHash, h[:])
}

type ContextHash [HashLength]byte

// DecodeContextHash decodes a context hash from its binary form.
func DecodeContextHash(data []byte) (ContextHash, error) {
	var h ContextHash
	err := decodeFixed(data, "context hash", h[:])
	return h, err
}

// ParseContextHash parses the base58-check form of a context hash.
func ParseContextHash(s string) (ContextHash, error) {
	var h ContextHash
	err := parseFixed(s, prefixContextHash, h[:])
	return h, err
}

// Bytes returns the binary form.
func (h ContextHash) Bytes() []byte {
	return append([]byte(nil), h[:]...)
}

// String returns the base58-check form.
func (h ContextHash) String() string {
	return encodeCheck(prefixContextHash, h[:])
}

// MarshalText implements the encoding.TextMarshaler interface.
func (h ContextHash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (h *ContextHash) UnmarshalText(text []byte) error {
	return parseFixed(string(text), prefixContextHash, h[:])
}

type NonceHash [HashLength]byte

// DecodeNonceHash decodes a nonce hash from its binary form.
func DecodeNonceHash(data []byte) (NonceHash, error) {
	var h NonceHash
	err := decodeFixed(data, "nonce hash", h[:])
	return h, err
}

// ParseNonceHash parses the base58-check form of a nonce hash.
func ParseNonceHash(s string) (NonceHash, error) {
	var h NonceHash
	err := parseFixed(s, prefixNonceHash, h[:])
	return h, err
}

// Bytes returns the binary form.
func (h NonceHash) Bytes() []byte {
	return append([]byte(nil), h[:]...)
}

// String returns the base58-check form.
func (h NonceHash) String() string {
	return encodeCheck(prefixNonceHash, h[:])
}

// MarshalText implements the encoding.TextMarshaler interface.
func (h NonceHash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (h *NonceHash) UnmarshalText(text []byte) error {
	return parseFixed(string(text), prefixNonceHash, h[:])
}

// ScriptExprHash identifies a script expression, such as a global constant.
type ScriptExprHash [HashLength]byte

// DecodeScriptExprHash decodes a script expression hash from its binary form.
func DecodeScriptExprHash(data []byte) (ScriptExprHash, error) {
	var h ScriptExprHash
	err := decodeFixed(data, "script expression hash", h[:])
	return h, err
}

// ParseScriptExprHash parses the base58-check form of a script expression hash.
func ParseScriptExprHash(s string) (ScriptExprHash, error) {
	var h ScriptExprHash
	err := parseFixed(s, prefixScriptExprHash, h[:])
	return h, err
}

// Bytes returns the binary form.
func (h ScriptExprHash) Bytes() []byte {
	return append([]byte(nil), h[:]...)
}

// String returns the base58-check form.
func (h ScriptExprHash) String() string {
	return encodeCheck(prefixScriptExprHash, h[:])
}

// MarshalText implements the encoding.TextMarshaler interface.
func (h ScriptExprHash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (h *ScriptExprHash) UnmarshalText(text []byte) error {
	return parseFixed(string(text), prefixScriptExprHash, h[:])
}

// ChainID identifies a chain. It is part of the watermark of consensus
// messages.
type ChainID [ChainIDLength]byte

// DecodeChainID decodes a chain id from its binary form.
func DecodeChainID(data []byte) (ChainID, error) {
	var h ChainID
	err := decodeFixed(data, "chain id", h[:])
	return h, err
}

// ParseChainID parses the base58-check form of a chain id.
func ParseChainID(s string) (ChainID, error) {
	var h ChainID
	err := parseFixed(s, prefixChainID, h[:])
	return h, err
}

// Bytes returns the binary form.
func (h ChainID) Bytes() []byte {
	return append([]byte(nil), h[:]...)
}

// String returns the base58-check form.
func (h ChainID) String() string {
	return encodeCheck(prefixChainID, h[:])
}

// MarshalText implements the encoding.TextMarshaler interface.
func (h ChainID) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (h *ChainID) UnmarshalText(text []byte) error {
	return parseFixed(string(text), prefixChainID, h[:])
}

func decodeFixed(data []byte, family string, dst []byte) error {
	if len(data) != len(dst) {
		return failure.InvalidLength{
			Description: failure.NewDescription("fixed-size identifier has wrong size"),
			Family:      family,
			Have:        len(data),
			Want:        len(dst),
		}
	}
	copy(dst, data)
	return nil
}

func parseFixed(s string, p prefix, dst []byte) error {
	payload, err := decodeCheck(s, p, s)
	if err != nil {
		return err
	}
	copy(dst, payload)
	return nil
}
