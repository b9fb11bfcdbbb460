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

package micheline

import (
	"fmt"
)

// Opcode is the one-byte code of a primitive in binary expressions. Keywords
// are prefixed with K, data constructors with D, instructions with I and
// types with T.
type Opcode byte

const (
	KParameter Opcode = iota
	KStorage
	KCode
	DFalse
	DElt
	DLeft
	DNone
	DPair
	DRight
	DSome
	DTrue
	DUnit
	IPack
	IUnpack
	IBlake2b
	ISha256
	ISha512
	IAbs
	IAdd
	IAmount
	IAnd
	IBalance
	ICar
	ICdr
	ICheckSignature
	ICompare
	IConcat
	ICons
	ICreateAccount
	ICreateContract
	IImplicitAccount
	IDip
	IDrop
	IDup
	IEdiv
	IEmptyMap
	IEmptySet
	IEq
	IExec
	IFailwith
	IGe
	IGet
	IGt
	IHashKey
	IIf
	IIfCons
	IIfLeft
	IIfNone
	IInt
	ILambda
	ILe
	ILeft
	ILoop
	ILsl
	ILsr
	ILt
	IMap
	IMem
	IMul
	INeg
	INeq
	INil
	INone
	INot
	INow
	IOr
	IPair
	IPush
	IRight
	ISize
	ISome
	ISource
	ISender
	ISelf
	IStepsToQuota
	ISub
	ISwap
	ITransferTokens
	ISetDelegate
	IUnit
	IUpdate
	IXor
	IIter
	ILoopLeft
	IAddress
	IContract
	IIsnat
	ICast
	IRename
	TBool
	TContract
	TInt
	TKey
	TKeyHash
	TLambda
	TList
	TMap
	TBigMap
	TNat
	TOption
	TOr
	TPair
	TSet
	TSignature
	TString
	TBytes
	TMutez
	TTimestamp
	TUnit
	TOperation
	TAddress
	ISlice
	IDig
	IDug
	IEmptyBigMap
	IApply
	TChainId
	IChainId
	ILevel
	ISelfAddress
	TNever
	INever
	IUnpair
	IVotingPower
	ITotalVotingPower
	IKeccak
	ISha3
	IPairingCheck
	TBls12381G1
	TBls12381G2
	TBls12381Fr
	TSaplingState
	TSaplingTransactionDeprecated
	ISaplingEmptyState
	ISaplingVerifyUpdate
	TTicket
	ITicket
	IReadTicket
	ISplitTicket
	IJoinTickets
	IGetAndUpdate
	TChest
	TChestKey
	IOpenChest
	IView
	TView
	TConstant
)

var opcodeNames = [...]string{
	"parameter",
	"storage",
	"code",
	"False",
	"Elt",
	"Left",
	"None",
	"Pair",
	"Right",
	"Some",
	"True",
	"Unit",
	"PACK",
	"UNPACK",
	"BLAKE2B",
	"SHA256",
	"SHA512",
	"ABS",
	"ADD",
	"AMOUNT",
	"AND",
	"BALANCE",
	"CAR",
	"CDR",
	"CHECK_SIGNATURE",
	"COMPARE",
	"CONCAT",
	"CONS",
	"CREATE_ACCOUNT",
	"CREATE_CONTRACT",
	"IMPLICIT_ACCOUNT",
	"DIP",
	"DROP",
	"DUP",
	"EDIV",
	"EMPTY_MAP",
	"EMPTY_SET",
	"EQ",
	"EXEC",
	"FAILWITH",
	"GE",
	"GET",
	"GT",
	"HASH_KEY",
	"IF",
	"IF_CONS",
	"IF_LEFT",
	"IF_NONE",
	"INT",
	"LAMBDA",
	"LE",
	"LEFT",
	"LOOP",
	"LSL",
	"LSR",
	"LT",
	"MAP",
	"MEM",
	"MUL",
	"NEG",
	"NEQ",
	"NIL",
	"NONE",
	"NOT",
	"NOW",
	"OR",
	"PAIR",
	"PUSH",
	"RIGHT",
	"SIZE",
	"SOME",
	"SOURCE",
	"SENDER",
	"SELF",
	"STEPS_TO_QUOTA",
	"SUB",
	"SWAP",
	"TRANSFER_TOKENS",
	"SET_DELEGATE",
	"UNIT",
	"UPDATE",
	"XOR",
	"ITER",
	"LOOP_LEFT",
	"ADDRESS",
	"CONTRACT",
	"ISNAT",
	"CAST",
	"RENAME",
	"bool",
	"contract",
	"int",
	"key",
	"key_hash",
	"lambda",
	"list",
	"map",
	"big_map",
	"nat",
	"option",
	"or",
	"pair",
	"set",
	"signature",
	"string",
	"bytes",
	"mutez",
	"timestamp",
	"unit",
	"operation",
	"address",
	"SLICE",
	"DIG",
	"DUG",
	"EMPTY_BIG_MAP",
	"APPLY",
	"chain_id",
	"CHAIN_ID",
	"LEVEL",
	"SELF_ADDRESS",
	"never",
	"NEVER",
	"UNPAIR",
	"VOTING_POWER",
	"TOTAL_VOTING_POWER",
	"KECCAK",
	"SHA3",
	"PAIRING_CHECK",
	"bls12_381_g1",
	"bls12_381_g2",
	"bls12_381_fr",
	"sapling_state",
	"sapling_transaction_deprecated",
	"SAPLING_EMPTY_STATE",
	"SAPLING_VERIFY_UPDATE",
	"ticket",
	"TICKET",
	"READ_TICKET",
	"SPLIT_TICKET",
	"JOIN_TICKETS",
	"GET_AND_UPDATE",
	"chest",
	"chest_key",
	"OPEN_CHEST",
	"VIEW",
	"view",
	"constant",
}

// ParseOpcode returns the opcode of a primitive name.
func ParseOpcode(name string) (Opcode, bool) {
	for i, n := range opcodeNames {
		if n == name {
			return Opcode(i), true
		}
	}
	return 0, false
}

// String returns the Michelson name of the opcode.
func (o Opcode) String() string {
	if int(o) < len(opcodeNames) {
		return opcodeNames[o]
	}
	return fmt.Sprintf("prim(%d)", byte(o))
}

// MarshalText implements the encoding.TextMarshaler interface.
func (o Opcode) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}
