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

package metrics

import (
	"github.com/optakt/tezos-forge/identifier"
	"github.com/optakt/tezos-forge/service/guard"
)

// Guarded is the high watermark guard.
type Guarded interface {
	Sign(req guard.Request, sign func() (identifier.Signature, error)) (identifier.Signature, error)
}

// Guard times watermark checks, per class of consensus message.
type Guard struct {
	guard Guarded
	time  Time
}

func NewGuard(guard Guarded, time Time) *Guard {
	g := Guard{
		guard: guard,
		time:  time,
	}
	return &g
}

func (g *Guard) Sign(req guard.Request, sign func() (identifier.Signature, error)) (identifier.Signature, error) {
	defer g.time.Duration(req.Class.String())()
	return g.guard.Sign(req, sign)
}
