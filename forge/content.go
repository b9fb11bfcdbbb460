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
	"github.com/optakt/tezos-forge/encoding/zarith"
	"github.com/optakt/tezos-forge/identifier"
	"github.com/optakt/tezos-forge/micheline"
)

// NonceLength is the size of a revealed seed nonce.
const NonceLength = 32

// SecretLength is the size of the activation secret of a fundraiser account.
const SecretLength = 20

// Content is one operation content. The set of implementations is closed;
// there is exactly one per kind.
type Content interface {
	Kind() Kind
	encode(c *Codec, w *wire.Writer)
}

// Preendorsement is the first round of Tenderbake consensus votes.
type Preendorsement struct {
	Slot        uint16
	Level       int32
	Round       int32
	PayloadHash identifier.PayloadHash
}

// Endorsement is the second round of Tenderbake consensus votes.
type Endorsement struct {
	Slot        uint16
	Level       int32
	Round       int32
	PayloadHash identifier.PayloadHash
}

type SeedNonceRevelation struct {
	Level int32
	Nonce [NonceLength]byte
}

// DoubleEndorsementEvidence denounces a baker who endorsed two different
// blocks at the same level and round.
type DoubleEndorsementEvidence struct {
	Op1 InlinedEndorsement
	Op2 InlinedEndorsement
}

// DoublePreendorsementEvidence denounces a baker who preendorsed two
// different blocks at the same level and round.
type DoublePreendorsementEvidence struct {
	Op1 InlinedPreendorsement
	Op2 InlinedPreendorsement
}

// DoubleBakingEvidence denounces a baker who signed two different block
// headers at the same level and round.
type DoubleBakingEvidence struct {
	Header1 BlockHeader
	Header2 BlockHeader
}

// ActivateAccount activates a fundraiser account, which is always an Ed25519
// implicit account.
type ActivateAccount struct {
	PublicKeyHash identifier.PublicKeyHash
	Secret        [SecretLength]byte
}

type Proposals struct {
	Source    identifier.PublicKeyHash
	Period    int32
	Proposals []identifier.ProtocolHash
}

type Ballot struct {
	Source   identifier.PublicKeyHash
	Period   int32
	Proposal identifier.ProtocolHash
	Vote     Vote
}

// FailingNoop carries arbitrary bytes and always fails when applied, which
// makes it suitable for signing messages off-chain.
type FailingNoop struct {
	Arbitrary []byte
}

// Manager holds the fields shared by every manager operation.
type Manager struct {
	Source       identifier.PublicKeyHash
	Fee          zarith.Natural
	Counter      zarith.Natural
	GasLimit     zarith.Natural
	StorageLimit zarith.Natural
}

type Reveal struct {
	Manager
	PublicKey identifier.PublicKey
}

type Transaction struct {
	Manager
	Amount      zarith.Natural
	Destination identifier.Address
	Parameters  *Parameters
}

// Parameters is the optional smart contract call of a transaction.
type Parameters struct {
	Entrypoint string
	Value      micheline.Node
}

type Origination struct {
	Manager
	Balance  zarith.Natural
	Delegate *identifier.PublicKeyHash
	Script   Script
}

// Script is the code and initial storage of an originated contract.
type Script struct {
	Code    micheline.Node
	Storage micheline.Node
}

type Delegation struct {
	Manager
	Delegate *identifier.PublicKeyHash
}

type RegisterGlobalConstant struct {
	Manager
	Value micheline.Node
}

type SetDepositsLimit struct {
	Manager
	Limit *zarith.Natural
}

func (Preendorsement) Kind() Kind               { return KindPreendorsement }
func (Endorsement) Kind() Kind                  { return KindEndorsement }
func (SeedNonceRevelation) Kind() Kind          { return KindSeedNonceRevelation }
func (DoubleEndorsementEvidence) Kind() Kind    { return KindDoubleEndorsementEvidence }
func (DoublePreendorsementEvidence) Kind() Kind { return KindDoublePreendorsementEvidence }
func (DoubleBakingEvidence) Kind() Kind         { return KindDoubleBakingEvidence }
func (ActivateAccount) Kind() Kind              { return KindActivateAccount }
func (Proposals) Kind() Kind                    { return KindProposals }
func (Ballot) Kind() Kind                       { return KindBallot }
func (FailingNoop) Kind() Kind                  { return KindFailingNoop }
func (Reveal) Kind() Kind                       { return KindReveal }
func (Transaction) Kind() Kind                  { return KindTransaction }
func (Origination) Kind() Kind                  { return KindOrigination }
func (Delegation) Kind() Kind                   { return KindDelegation }
func (RegisterGlobalConstant) Kind() Kind       { return KindRegisterGlobalConstant }
func (SetDepositsLimit) Kind() Kind             { return KindSetDepositsLimit }
