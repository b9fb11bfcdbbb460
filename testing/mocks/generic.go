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

package mocks

import (
	"encoding/binary"
	"errors"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/optakt/tezos-forge/encoding/zarith"
	"github.com/optakt/tezos-forge/forge"
	"github.com/optakt/tezos-forge/identifier"
	"github.com/optakt/tezos-forge/micheline"
)

// Global variables that can be used for testing. They are non-nil valid values for the types commonly needed
// to test forging and signing components.
var (
	NoopLogger = zerolog.New(io.Discard)

	GenericError = errors.New("dummy error")

	GenericBytes = []byte(`test`)

	GenericLevel = int32(2_500_000)

	// GenericSecretKey is the Ed25519 key with the seed 0x01, 0x02, ..., 0x20.
	GenericSecretKey = mustSecretKey("edsk2gM2LioC6YfkHSgkD1opuvCLS8Ao7ytPf4QXmaupPwVgF27wFW")

	GenericPublicKey = mustPublicKey("edpkuZpp81M8NmaFbueXY8bk7EP9V54XTnwsFFt77Z5FTPs2QzLU9r")

	GenericKeyHash = mustKeyHash("tz1MsZxMSJdiUV9hVs4UKAMrXtksDvxWAZe2")

	// GenericDestination is the implicit account with the hash 0x00, 0x01, ..., 0x13.
	GenericDestination = mustAddress("tz1Ke3u9SqxvnkdNkgaCmydXg3zh3iaKNDxw")

	GenericContract = identifier.OriginatedAddress(sequence20(0))

	GenericBranch = mustBlockHash("BLockGenesisGenesisGenesisGenesisGenesisf79b5d1CoW2")

	GenericChainID = identifier.ChainID{0x7a, 0x06, 0xa7, 0x70}

	GenericPayloadHash = identifier.PayloadHash(sequence32(0))

	GenericProtocol = identifier.ProtocolHash(sequence32(32))

	GenericSignature = identifier.GenericSignature(sequence64(0))

	GenericTransaction = forge.Transaction{
		Manager:     GenericManager(1),
		Amount:      zarith.NaturalFromUint64(1_000_000),
		Destination: GenericDestination,
	}

	GenericEndorsement = forge.Endorsement{
		Slot:        7,
		Level:       GenericLevel,
		Round:       1,
		PayloadHash: GenericPayloadHash,
	}

	GenericPreendorsement = forge.Preendorsement{
		Slot:        7,
		Level:       GenericLevel,
		Round:       0,
		PayloadHash: GenericPayloadHash,
	}

	GenericOperation = forge.UnsignedOperation{
		Branch:   GenericBranch,
		Contents: []forge.Content{GenericTransaction},
	}
)

// GenericManager returns the manager fields used by the generic fixtures, with
// the given counter.
func GenericManager(counter uint64) forge.Manager {
	return forge.Manager{
		Source:       GenericKeyHash,
		Fee:          zarith.NaturalFromUint64(1266),
		Counter:      zarith.NaturalFromUint64(counter),
		GasLimit:     zarith.NaturalFromUint64(1527),
		StorageLimit: zarith.NaturalFromUint64(257),
	}
}

// GenericBlockHeader returns a signed block header baked at the given level
// and round.
func GenericBlockHeader(level int32, round int32) forge.BlockHeader {
	roundBytes := make([]byte, 4)
	binary.BigEndian.PutUint32(roundBytes, uint32(round))
	levelBytes := make([]byte, 4)
	binary.BigEndian.PutUint32(levelBytes, uint32(level))
	nonce := identifier.NonceHash(sequence32(64))

	header := forge.BlockHeader{
		Level:          level,
		Proto:          2,
		Predecessor:    GenericBranch,
		Timestamp:      time.Date(2022, 4, 1, 12, 0, 30, 0, time.UTC),
		ValidationPass: 4,
		OperationsHash: identifier.OperationListListHash(sequence32(96)),
		Fitness: [][]byte{
			{0x02},
			levelBytes,
			{},
			{0xff, 0xff, 0xff, 0xff},
			roundBytes,
		},
		Context:                   identifier.ContextHash(sequence32(128)),
		PayloadHash:               GenericPayloadHash,
		PayloadRound:              round,
		ProofOfWorkNonce:          [forge.ProofOfWorkNonceLength]byte{1, 2, 3, 4, 5, 6, 7, 8},
		SeedNonceHash:             &nonce,
		LiquidityBakingEscapeVote: true,
		Signature:                 GenericSignature,
	}

	return header
}

// GenericContents returns one content of every kind, in tag order.
func GenericContents() []forge.Content {

	delegate := GenericKeyHash
	limit := zarith.NaturalFromUint64(5_000_000_000)
	nonce := sequence32(200)
	secret := sequence20(100)
	activated, _ := identifier.NewPublicKeyHash(identifier.Ed25519, sequence20(0))

	endorsement := GenericEndorsement
	conflicting := GenericEndorsement
	conflicting.PayloadHash = identifier.PayloadHash(sequence32(1))
	preendorsement := GenericPreendorsement
	conflictingPre := GenericPreendorsement
	conflictingPre.PayloadHash = identifier.PayloadHash(sequence32(1))

	header := GenericBlockHeader(GenericLevel, 0)
	other := GenericBlockHeader(GenericLevel, 0)
	other.Timestamp = other.Timestamp.Add(time.Second)
	other.SeedNonceHash = nil

	contents := []forge.Content{
		forge.SeedNonceRevelation{
			Level: 123_456,
			Nonce: nonce,
		},
		forge.DoubleEndorsementEvidence{
			Op1: forge.InlinedEndorsement{Branch: GenericBranch, Endorsement: endorsement, Signature: GenericSignature},
			Op2: forge.InlinedEndorsement{Branch: GenericBranch, Endorsement: conflicting, Signature: GenericSignature},
		},
		forge.DoubleBakingEvidence{
			Header1: header,
			Header2: other,
		},
		forge.ActivateAccount{
			PublicKeyHash: activated,
			Secret:        secret,
		},
		forge.Proposals{
			Source:    GenericKeyHash,
			Period:    70,
			Proposals: []identifier.ProtocolHash{GenericProtocol, identifier.ProtocolHash(sequence32(0))},
		},
		forge.Ballot{
			Source:   GenericKeyHash,
			Period:   71,
			Proposal: GenericProtocol,
			Vote:     forge.Nay,
		},
		forge.DoublePreendorsementEvidence{
			Op1: forge.InlinedPreendorsement{Branch: GenericBranch, Preendorsement: preendorsement, Signature: GenericSignature},
			Op2: forge.InlinedPreendorsement{Branch: GenericBranch, Preendorsement: conflictingPre, Signature: GenericSignature},
		},
		forge.FailingNoop{
			Arbitrary: []byte("hello"),
		},
		GenericPreendorsement,
		GenericEndorsement,
		forge.Reveal{
			Manager:   GenericManager(1),
			PublicKey: GenericPublicKey,
		},
		forge.Transaction{
			Manager:     GenericManager(2),
			Amount:      zarith.NaturalFromUint64(0),
			Destination: GenericContract,
			Parameters: &forge.Parameters{
				Entrypoint: "transfer",
				Value:      micheline.NewPrim(micheline.DPair, micheline.NewInt(1), micheline.NewString("a")),
			},
		},
		forge.Origination{
			Manager:  GenericManager(3),
			Balance:  zarith.NaturalFromUint64(10),
			Delegate: &delegate,
			Script: forge.Script{
				Code: micheline.NewSeq(
					micheline.NewPrim(micheline.KParameter, micheline.NewPrim(micheline.TUnit)),
					micheline.NewPrim(micheline.KStorage, micheline.NewPrim(micheline.TUnit)),
					micheline.NewPrim(micheline.KCode, micheline.NewSeq(
						micheline.NewPrim(micheline.ICdr),
						micheline.NewPrim(micheline.INil, micheline.NewPrim(micheline.TOperation)),
						micheline.NewPrim(micheline.IPair),
					)),
				),
				Storage: micheline.Unit(),
			},
		},
		forge.Delegation{
			Manager:  GenericManager(4),
			Delegate: &delegate,
		},
		forge.RegisterGlobalConstant{
			Manager: GenericManager(5),
			Value:   micheline.NewInt(42),
		},
		forge.SetDepositsLimit{
			Manager: GenericManager(6),
			Limit:   &limit,
		},
	}

	return contents
}

func sequence20(from byte) [identifier.KeyHashLength]byte {
	var out [identifier.KeyHashLength]byte
	for i := range out {
		out[i] = from + byte(i)
	}
	return out
}

func sequence32(from byte) [identifier.HashLength]byte {
	var out [identifier.HashLength]byte
	for i := range out {
		out[i] = from + byte(i)
	}
	return out
}

func sequence64(from byte) [identifier.SignatureLength]byte {
	var out [identifier.SignatureLength]byte
	for i := range out {
		out[i] = from + byte(i)
	}
	return out
}

func mustSecretKey(s string) identifier.SecretKey {
	sk, err := identifier.ParseSecretKey(s)
	if err != nil {
		panic(err)
	}
	return sk
}

func mustPublicKey(s string) identifier.PublicKey {
	pk, err := identifier.ParsePublicKey(s)
	if err != nil {
		panic(err)
	}
	return pk
}

func mustKeyHash(s string) identifier.PublicKeyHash {
	pkh, err := identifier.ParsePublicKeyHash(s)
	if err != nil {
		panic(err)
	}
	return pkh
}

func mustAddress(s string) identifier.Address {
	address, err := identifier.ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return address
}

func mustBlockHash(s string) identifier.BlockHash {
	hash, err := identifier.ParseBlockHash(s)
	if err != nil {
		panic(err)
	}
	return hash
}
