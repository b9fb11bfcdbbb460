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

// KeyRequest addresses a key by the hash of its public key.
type KeyRequest struct {
	Key string `validate:"required,pkh"`
}

// SignRequest asks for the signature of watermarked bytes, given in
// hexadecimal.
type SignRequest struct {
	Key  string `validate:"required,pkh"`
	Data string `validate:"required,hexadecimal"`
}

type PublicKeyResponse struct {
	PublicKey string `json:"public_key"`
}

type SignatureResponse struct {
	Signature string `json:"signature"`
}

// AuthorizedKeysResponse is empty, as requests are not authenticated.
type AuthorizedKeysResponse struct{}
