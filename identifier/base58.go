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
	"bytes"

	"github.com/minio/sha256-simd"
	"github.com/mr-tron/base58"

	"github.com/optakt/tezos-forge/failure"
)

const checksumLength = 4

// prefix describes the base58-check form of one identifier family: the bytes
// prepended to the payload before encoding, and the size of the payload.
type prefix struct {
	name  string
	bytes []byte
	size  int
}

var (
	prefixEd25519KeyHash   = prefix{name: "tz1", bytes: []byte{6, 161, 159}, size: KeyHashLength}
	prefixSecp256k1KeyHash = prefix{name: "tz2", bytes: []byte{6, 161, 161}, size: KeyHashLength}
	prefixP256KeyHash      = prefix{name: "tz3", bytes: []byte{6, 161, 164}, size: KeyHashLength}
	prefixContractHash     = prefix{name: "KT1", bytes: []byte{2, 90, 121}, size: KeyHashLength}

	prefixEd25519PublicKey   = prefix{name: "edpk", bytes: []byte{13, 15, 37, 217}, size: 32}
	prefixSecp256k1PublicKey = prefix{name: "sppk", bytes: []byte{3, 254, 226, 86}, size: 33}
	prefixP256PublicKey      = prefix{name: "p2pk", bytes: []byte{3, 178, 139, 127}, size: 33}

	prefixEd25519Seed        = prefix{name: "edsk", bytes: []byte{13, 15, 58, 7}, size: SecretKeyLength}
	prefixEd25519SecretKey   = prefix{name: "edsk", bytes: []byte{43, 246, 78, 7}, size: 64}
	prefixSecp256k1SecretKey = prefix{name: "spsk", bytes: []byte{17, 162, 224, 201}, size: SecretKeyLength}
	prefixP256SecretKey      = prefix{name: "p2sk", bytes: []byte{16, 81, 238, 189}, size: SecretKeyLength}

	prefixEd25519Signature   = prefix{name: "edsig", bytes: []byte{9, 245, 205, 134, 18}, size: SignatureLength}
	prefixSecp256k1Signature = prefix{name: "spsig1", bytes: []byte{13, 115, 101, 19, 63}, size: SignatureLength}
	prefixP256Signature      = prefix{name: "p2sig", bytes: []byte{54, 240, 44, 52}, size: SignatureLength}
	prefixGenericSignature   = prefix{name: "sig", bytes: []byte{4, 130, 43}, size: SignatureLength}

	prefixBlockHash             = prefix{name: "B", bytes: []byte{1, 52}, size: HashLength}
	prefixOperationHash         = prefix{name: "o", bytes: []byte{5, 116}, size: HashLength}
	prefixProtocolHash          = prefix{name: "P", bytes: []byte{2, 170}, size: HashLength}
	prefixPayloadHash           = prefix{name: "vh", bytes: []byte{1, 106, 242}, size: HashLength}
	prefixOperationListListHash = prefix{name: "LLo", bytes: []byte{29, 159, 109}, size: HashLength}
	prefixContextHash           = prefix{name: "Co", bytes: []byte{79, 199}, size: HashLength}
	prefixNonceHash             = prefix{name: "nce", bytes: []byte{69, 220, 169}, size: HashLength}
	prefixScriptExprHash        = prefix{name: "expr", bytes: []byte{13, 44, 64, 27}, size: HashLength}
	prefixChainID               = prefix{name: "Net", bytes: []byte{87, 82, 0}, size: ChainIDLength}
)

func encodeCheck(p prefix, payload []byte) string {
	data := make([]byte, 0, len(p.bytes)+len(payload)+checksumLength)
	data = append(data, p.bytes...)
	data = append(data, payload...)
	data = append(data, checksum(data)...)
	return base58.Encode(data)
}

// decodeCheck decodes a base58-check string, verifies its checksum and
// returns the payload that follows the expected prefix. Errors report input
// in place of the string, so that secrets can be kept out of them.
func decodeCheck(s string, p prefix, input string) ([]byte, error) {
	data, err := base58.Decode(s)
	if err != nil {
		return nil, failure.InvalidEncoding{
			Description: failure.NewDescription("string is not valid base58",
				failure.WithErr(err),
			),
			Encoding: "base58",
			Input:    input,
		}
	}

	if len(data) < checksumLength {
		return nil, failure.InvalidEncoding{
			Description: failure.NewDescription("string is too short to hold a checksum"),
			Encoding:    "base58",
			Input:       input,
		}
	}
	body, sum := data[:len(data)-checksumLength], data[len(data)-checksumLength:]
	if !bytes.Equal(sum, checksum(body)) {
		return nil, failure.InvalidEncoding{
			Description: failure.NewDescription("checksum mismatch"),
			Encoding:    "base58",
			Input:       input,
		}
	}

	if !bytes.HasPrefix(body, p.bytes) {
		return nil, failure.InvalidEncoding{
			Description: failure.NewDescription("unexpected prefix",
				failure.WithString("want", p.name),
			),
			Encoding: "base58",
			Input:    input,
		}
	}
	payload := body[len(p.bytes):]
	if len(payload) != p.size {
		return nil, failure.InvalidLength{
			Description: failure.NewDescription("base58 payload has wrong size",
				failure.WithString("prefix", p.name),
			),
			Family: p.name,
			Have:   len(payload),
			Want:   p.size,
		}
	}

	return payload, nil
}

func checksum(data []byte) []byte {
	first := sha256.Sum256(data)
	second := sha256.Sum256(first[:])
	return second[:checksumLength]
}
