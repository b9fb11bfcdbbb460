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
	"fmt"
)

// Kind is the tag byte that starts every forged operation content.
type Kind byte

// Supported operation kinds.
const (
	KindSeedNonceRevelation          Kind = 1
	KindDoubleEndorsementEvidence    Kind = 2
	KindDoubleBakingEvidence         Kind = 3
	KindActivateAccount              Kind = 4
	KindProposals                    Kind = 5
	KindBallot                       Kind = 6
	KindDoublePreendorsementEvidence Kind = 7
	KindFailingNoop                  Kind = 17
	KindPreendorsement               Kind = 20
	KindEndorsement                  Kind = 21
	KindReveal                       Kind = 107
	KindTransaction                  Kind = 108
	KindOrigination                  Kind = 109
	KindDelegation                   Kind = 110
	KindRegisterGlobalConstant       Kind = 111
	KindSetDepositsLimit             Kind = 112
)

var kindNames = map[Kind]string{
	KindSeedNonceRevelation:          "seed_nonce_revelation",
	KindDoubleEndorsementEvidence:    "double_endorsement_evidence",
	KindDoubleBakingEvidence:         "double_baking_evidence",
	KindActivateAccount:              "activate_account",
	KindProposals:                    "proposals",
	KindBallot:                       "ballot",
	KindDoublePreendorsementEvidence: "double_preendorsement_evidence",
	KindFailingNoop:                  "failing_noop",
	KindPreendorsement:               "preendorsement",
	KindEndorsement:                  "endorsement",
	KindReveal:                       "reveal",
	KindTransaction:                  "transaction",
	KindOrigination:                  "origination",
	KindDelegation:                   "delegation",
	KindRegisterGlobalConstant:       "register_global_constant",
	KindSetDepositsLimit:             "set_deposits_limit",
}

// Kinds returns every supported kind in tag order.
func Kinds() []Kind {
	return []Kind{
		KindSeedNonceRevelation,
		KindDoubleEndorsementEvidence,
		KindDoubleBakingEvidence,
		KindActivateAccount,
		KindProposals,
		KindBallot,
		KindDoublePreendorsementEvidence,
		KindFailingNoop,
		KindPreendorsement,
		KindEndorsement,
		KindReveal,
		KindTransaction,
		KindOrigination,
		KindDelegation,
		KindRegisterGlobalConstant,
		KindSetDepositsLimit,
	}
}

// ParseKind returns the kind with the given name.
func ParseKind(name string) (Kind, bool) {
	for kind, n := range kindNames {
		if n == name {
			return kind, true
		}
	}
	return 0, false
}

func (k Kind) Known() bool {
	_, ok := kindNames[k]
	return ok
}

// IsManager returns whether the kind is signed and paid for by a source
// account, and thus starts with the manager fields.
func (k Kind) IsManager() bool {
	return k >= KindReveal && k <= KindSetDepositsLimit
}

func (k Kind) String() string {
	name, ok := kindNames[k]
	if !ok {
		return fmt.Sprintf("kind(%d)", byte(k))
	}
	return name
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Vote is the choice expressed by a ballot.
type Vote byte

// Supported votes.
const (
	Yay  Vote = 0
	Nay  Vote = 1
	Pass Vote = 2
)

func (v Vote) Valid() bool {
	return v <= Pass
}

func (v Vote) String() string {
	switch v {
	case Yay:
		return "yay"
	case Nay:
		return "nay"
	case Pass:
		return "pass"
	default:
		return fmt.Sprintf("vote(%d)", byte(v))
	}
}

func (v Vote) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}
