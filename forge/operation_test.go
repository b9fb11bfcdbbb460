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

package forge_test

import (
	"encoding/hex"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optakt/tezos-forge/failure"
	"github.com/optakt/tezos-forge/forge"
	"github.com/optakt/tezos-forge/identifier"
	"github.com/optakt/tezos-forge/micheline"
	"github.com/optakt/tezos-forge/testing/mocks"
)

const (
	forgedOperation = "8fcf233671b6a04fcf679d2a381c2544ea6c1ea29ba6157776ed8424c7ccd00b6c00187fc17d77ec0e3c6ec1cf6374b04d9594c9659af20901f70b8102c0843d0000000102030405060708090a0b0c0d0e0f1011121300"
	operationSignature = "edsigtdnc8YzG5mTkSt5WRDGwBG3EekdYGHbbcjiP6hcJXYBNte5XcFsBB9FdoRRZvZMubS3gvJHhdK6trE8rYD1PifhpkULxQ3"
	operationHash      = "oorRGsVm8jTTmizm2AAt23jA3f7zY5cctH1Cx5n6YHvgvywxzvQ"
)

func TestNewUnsignedOperation(t *testing.T) {
	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		op, err := forge.NewUnsignedOperation(mocks.GenericBranch, mocks.GenericContents()...)

		require.NoError(t, err)
		assert.Equal(t, mocks.GenericBranch, op.Branch)
		assert.Len(t, op.Contents, len(forge.Kinds()))
	})

	t.Run("handles empty contents", func(t *testing.T) {
		t.Parallel()

		_, err := forge.NewUnsignedOperation(mocks.GenericBranch)

		assert.ErrorAs(t, err, &failure.InvalidLength{})
	})

	t.Run("handles invalid content", func(t *testing.T) {
		t.Parallel()

		endorsement := mocks.GenericEndorsement
		endorsement.Round = -1

		_, err := forge.NewUnsignedOperation(mocks.GenericBranch, mocks.GenericTransaction, endorsement)

		var invalid failure.InvalidValue
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "round", invalid.Field)
	})
}

func TestCodec_ForgeOperation(t *testing.T) {
	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		codec := forge.NewCodec()

		got := codec.ForgeToString(mocks.GenericOperation, false)

		assert.Equal(t, forgedOperation, got)
	})

	t.Run("signed operation appends signature", func(t *testing.T) {
		t.Parallel()

		codec := forge.NewCodec()
		sig, err := identifier.ParseSignature(operationSignature)
		require.NoError(t, err)

		signed := mocks.GenericOperation.WithSignature(sig)
		got := codec.ForgeOperation(signed)

		assert.Equal(t, forgedOperation+hex.EncodeToString(sig.Bytes()), hex.EncodeToString(got))
	})

	t.Run("contents keep their order", func(t *testing.T) {
		t.Parallel()

		codec := forge.NewCodec()
		op := forge.UnsignedOperation{
			Branch:   mocks.GenericBranch,
			Contents: []forge.Content{mocks.GenericEndorsement, mocks.GenericTransaction},
		}

		data := codec.ForgeOperation(op)

		endorsement := codec.ForgeContent(mocks.GenericEndorsement)
		assert.Equal(t, byte(forge.KindEndorsement), data[identifier.HashLength])
		assert.Equal(t, byte(forge.KindTransaction), data[identifier.HashLength+len(endorsement)])
	})
}

func TestCodec_UnforgeOperation(t *testing.T) {
	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		codec := forge.NewCodec()

		op, err := codec.UnforgeFromString(forgedOperation, false)

		require.NoError(t, err)
		_, signed := op.Signed()
		assert.False(t, signed)
		assert.Equal(t, mocks.GenericOperation, op.Unsigned())
	})

	t.Run("every kind in one operation", func(t *testing.T) {
		t.Parallel()

		codec := forge.NewCodec()
		op := forge.UnsignedOperation{
			Branch:   mocks.GenericBranch,
			Contents: mocks.GenericContents(),
		}

		decoded, err := codec.UnforgeUnsigned(codec.ForgeOperation(op))

		require.NoError(t, err)
		assert.Equal(t, op, decoded)
	})

	t.Run("signed operation", func(t *testing.T) {
		t.Parallel()

		codec := forge.NewCodec()
		sig, err := identifier.ParseSignature(operationSignature)
		require.NoError(t, err)
		signed := mocks.GenericOperation.WithSignature(sig)

		decoded, err := codec.UnforgeSigned(codec.ForgeOperation(signed))

		require.NoError(t, err)
		assert.Equal(t, signed, decoded)
		assert.Equal(t, sig.Data(), decoded.Signature.Data())
	})

	t.Run("hex prefix", func(t *testing.T) {
		t.Parallel()

		codec := forge.NewCodec()

		op, err := codec.UnforgeFromString("0x"+forgedOperation, false)

		require.NoError(t, err)
		assert.Equal(t, mocks.GenericOperation, op.Unsigned())
		assert.Equal(t, "0x"+forgedOperation, codec.ForgeToString(op, true))
	})

	t.Run("handles branch only", func(t *testing.T) {
		t.Parallel()

		codec := forge.NewCodec()

		_, err := codec.UnforgeOperation(mocks.GenericBranch.Bytes(), false)

		var invalid failure.InvalidLength
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "operation contents", invalid.Family)
	})

	t.Run("handles short signed operation", func(t *testing.T) {
		t.Parallel()

		codec := forge.NewCodec()

		_, err := codec.UnforgeOperation(make([]byte, identifier.HashLength+identifier.SignatureLength-1), true)

		assert.ErrorAs(t, err, &failure.TruncatedOperation{})
	})

	t.Run("handles short branch", func(t *testing.T) {
		t.Parallel()

		codec := forge.NewCodec()

		_, err := codec.UnforgeOperation(mocks.GenericBranch.Bytes()[:16], false)

		var truncated failure.TruncatedOperation
		require.ErrorAs(t, err, &truncated)
		assert.Equal(t, "branch", truncated.Field)
	})

	t.Run("handles unknown kind", func(t *testing.T) {
		t.Parallel()

		codec := forge.NewCodec()
		data := append(mocks.GenericBranch.Bytes(), 0x00)

		_, err := codec.UnforgeOperation(data, false)

		var unknown failure.UnknownOperationKind
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, identifier.HashLength, unknown.Offset)
	})

	t.Run("handles invalid hex", func(t *testing.T) {
		t.Parallel()

		codec := forge.NewCodec()

		_, err := codec.UnforgeFromString("8fcf2", false)

		assert.ErrorAs(t, err, &failure.InvalidEncoding{})
	})
}

func TestCodec_Hash(t *testing.T) {
	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		codec := forge.NewCodec()
		sig, err := identifier.ParseSignature(operationSignature)
		require.NoError(t, err)

		hash := codec.Hash(mocks.GenericOperation.WithSignature(sig))

		assert.Equal(t, operationHash, hash.String())
	})
}

func TestValidate(t *testing.T) {
	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		err := forge.Validate(mocks.GenericContents()...)

		assert.NoError(t, err)
	})

	t.Run("reports every problem", func(t *testing.T) {
		t.Parallel()

		long := "an_entrypoint_name_that_is_too_long"
		require.Greater(t, len(long), forge.MaxEntrypointLength)

		secp, err := identifier.NewPublicKeyHash(identifier.Secp256k1, [identifier.KeyHashLength]byte{})
		require.NoError(t, err)

		contents := []forge.Content{
			forge.Transaction{
				Manager:     mocks.GenericManager(1),
				Destination: mocks.GenericContract,
				Parameters:  &forge.Parameters{Entrypoint: long},
			},
			forge.Proposals{Source: mocks.GenericKeyHash},
			forge.Ballot{Source: mocks.GenericKeyHash, Vote: forge.Vote(3)},
			forge.ActivateAccount{PublicKeyHash: secp},
			forge.Origination{Manager: mocks.GenericManager(2)},
			forge.RegisterGlobalConstant{Manager: mocks.GenericManager(3)},
			nil,
		}

		err = forge.Validate(contents...)

		var merr *multierror.Error
		require.ErrorAs(t, err, &merr)
		assert.Len(t, merr.Errors, len(contents))

		// The transaction and the origination each carry two problems.
		var nested *multierror.Error
		assert.ErrorAs(t, merr.Errors[0], &nested)
	})

	t.Run("handles too many proposals", func(t *testing.T) {
		t.Parallel()

		proposals := make([]identifier.ProtocolHash, forge.MaxProposals+1)
		err := forge.Validate(forge.Proposals{Source: mocks.GenericKeyHash, Proposals: proposals})

		var invalid failure.InvalidValue
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "proposals", invalid.Field)
	})
	t.Run("handles nested nil node", func(t *testing.T) {
		t.Parallel()

		contents := []forge.Content{
			forge.Transaction{
				Manager:     mocks.GenericManager(1),
				Destination: mocks.GenericContract,
				Parameters:  &forge.Parameters{Entrypoint: "do", Value: micheline.NewSeq(nil)},
			},
			forge.Origination{
				Manager: mocks.GenericManager(2),
				Script: forge.Script{
					Code:    micheline.NewSeq(micheline.NewPrim(micheline.IPush, micheline.Unit(), nil)),
					Storage: micheline.Unit(),
				},
			},
			forge.RegisterGlobalConstant{
				Manager: mocks.GenericManager(3),
				Value:   micheline.NewPrim(micheline.DPair, micheline.NewInt(1), micheline.NewSeq(micheline.NewSeq(nil))),
			},
		}

		for _, content := range contents {
			err := forge.Validate(content)

			var invalid failure.InvalidValue
			assert.ErrorAs(t, err, &invalid)
		}

		_, err := forge.NewUnsignedOperation(mocks.GenericBranch, contents[0])
		assert.Error(t, err)
	})

	t.Run("handles unknown node type", func(t *testing.T) {
		t.Parallel()

		literal := micheline.NewInt(7)
		err := forge.Validate(forge.RegisterGlobalConstant{
			Manager: mocks.GenericManager(1),
			Value:   micheline.NewSeq(&literal),
		})

		var invalid failure.InvalidValue
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "value", invalid.Field)
	})
}
