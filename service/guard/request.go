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

package guard

import (
	"fmt"

	"github.com/optakt/tezos-forge/identifier"
)

// Class is a class of consensus operation. Each class of each key has its
// own high watermark on every chain.
type Class uint8

const (
	ClassBlock Class = iota + 1
	ClassPreendorsement
	ClassEndorsement
)

func (c Class) String() string {
	switch c {
	case ClassBlock:
		return "block"
	case ClassPreendorsement:
		return "preendorsement"
	case ClassEndorsement:
		return "endorsement"
	default:
		return fmt.Sprintf("class(%d)", uint8(c))
	}
}

// Request describes a consensus message that is about to be signed.
type Request struct {
	Key    identifier.PublicKeyHash
	Chain  identifier.ChainID
	Class  Class
	Level  int32
	Round  int32
	Digest [32]byte
}
