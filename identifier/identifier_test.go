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

package identifier_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optakt/tezos-forge/encoding/wire"
	"github.com/optakt/tezos-forge/failure"
	"github.com/optakt/tezos-forge/identifier"
)

func sequence(from byte, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = from + byte(i)
	}
	return out
}

func TestPublicKeyHash(t *testing.T) {
	var hash [identifier.KeyHashLength]byte
	copy(hash[:], sequence(0, identifier.KeyHashLength))

	vectors := map[identifier.Curve]string{
		identifier.Ed25519:   "tz1Ke3u9SqxvnkdNkgaCmydXg3zh3iaKNDxw",
		identifier.Secp256k1: "tz28KFsN3RPHiWGF2rd3ScbnDdFhZc4eQm3K",
		identifier.P256:      "tz3LL4pgwHWq78iYT7hJSa4A2z9DLSBZKozx",
	}

	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		for curve, encoded := range vectors {
			pkh, err := identifier.NewPublicKeyHash(curve, hash)
			require.NoError(t, err)

			assert.Equal(t, encoded, pkh.String())
			assert.Equal(t, append([]byte{byte(curve)}, hash[:]...), pkh.Bytes())

			decoded, err := identifier.DecodePublicKeyHash(pkh.Bytes())
			require.NoError(t, err)
			assert.Equal(t, pkh, decoded)

			parsed, err := identifier.ParsePublicKeyHash(encoded)
			require.NoError(t, err)
			assert.Equal(t, pkh, parsed)
		}
	})

	t.Run("handles unknown tag", func(t *testing.T) {
		t.Parallel()

		data := append([]byte{0x03}, hash[:]...)

		_, err := identifier.DecodePublicKeyHash(data)

		var unknown failure.UnknownTag
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, byte(0x03), unknown.Tag)
	})

	t.Run("handles wrong length", func(t *testing.T) {
		t.Parallel()

		_, err := identifier.DecodePublicKeyHash(hash[:])

		var invalid failure.InvalidLength
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, 20, invalid.Have)
		assert.Equal(t, 21, invalid.Want)
	})

	t.Run("handles bad checksum", func(t *testing.T) {
		t.Parallel()

		_, err := identifier.ParsePublicKeyHash("tz1Ke3u9SqxvnkdNkgaCmydXg3zh3iaKNDxx")

		assert.ErrorAs(t, err, &failure.InvalidEncoding{})
	})

	t.Run("handles unknown prefix", func(t *testing.T) {
		t.Parallel()

		_, err := identifier.ParsePublicKeyHash("KT18anmnvhqTsgqTwasxpLKYWcLJnGRX3m2D")

		assert.ErrorAs(t, err, &failure.InvalidEncoding{})
	})
}

func TestPublicKey(t *testing.T) {
	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		key, err := hex.DecodeString("79b5562e8fe654f94078b112e8a98ba7901f853ae695bed7e0e3910bad049664")
		require.NoError(t, err)

		pk, err := identifier.NewPublicKey(identifier.Ed25519, key)
		require.NoError(t, err)

		assert.Equal(t, "edpkuZpp81M8NmaFbueXY8bk7EP9V54XTnwsFFt77Z5FTPs2QzLU9r", pk.String())
		assert.Equal(t, "tz1MsZxMSJdiUV9hVs4UKAMrXtksDvxWAZe2", pk.Hash().String())
		assert.Equal(t, append([]byte{0x00}, key...), pk.Bytes())

		decoded, err := identifier.DecodePublicKey(pk.Bytes())
		require.NoError(t, err)
		assert.Equal(t, pk, decoded)
	})

	t.Run("compressed curves", func(t *testing.T) {
		t.Parallel()

		vectors := map[identifier.Curve]struct {
			key     []byte
			encoded string
		}{
			identifier.Secp256k1: {key: append([]byte{0x02}, sequence(0, 32)...), encoded: "sppk7ZJdxQMLkMtGP9JxXF5fZvBvkiR4uHq3TQZyHQByCxMLkryjzvN"},
			identifier.P256:      {key: append([]byte{0x03}, sequence(0, 32)...), encoded: "p2pk66WufSQfhPyfZMHAX7fWd3Ezx3o45PcpdZ4mEF9yM7d7wTZVQ8e"},
		}

		for curve, vector := range vectors {
			pk, err := identifier.NewPublicKey(curve, vector.key)
			require.NoError(t, err)
			assert.Equal(t, vector.encoded, pk.String())
			assert.Len(t, pk.Bytes(), 34)

			parsed, err := identifier.ParsePublicKey(vector.encoded)
			require.NoError(t, err)
			assert.Equal(t, pk, parsed)
			assert.Equal(t, curve, parsed.Hash().Curve())
		}
	})

	t.Run("handles size mismatch", func(t *testing.T) {
		t.Parallel()

		_, err := identifier.NewPublicKey(identifier.Secp256k1, sequence(0, 32))
		assert.ErrorAs(t, err, &failure.InvalidLength{})

		_, err = identifier.DecodePublicKey(append([]byte{0x00}, sequence(0, 33)...))
		assert.ErrorAs(t, err, &failure.InvalidLength{})
	})

	t.Run("handles unknown tag", func(t *testing.T) {
		t.Parallel()

		_, err := identifier.DecodePublicKey(append([]byte{0x09}, sequence(0, 32)...))

		assert.ErrorAs(t, err, &failure.UnknownTag{})
	})
}

func TestAddress(t *testing.T) {
	var hash [identifier.KeyHashLength]byte
	copy(hash[:], sequence(0, identifier.KeyHashLength))

	t.Run("implicit address", func(t *testing.T) {
		t.Parallel()

		pkh, err := identifier.NewPublicKeyHash(identifier.Secp256k1, hash)
		require.NoError(t, err)
		address := identifier.ImplicitAddress(pkh)

		data := address.Bytes()
		assert.Len(t, data, identifier.AddressLength)
		assert.Equal(t, []byte{0x00, 0x01}, data[:2])
		assert.Equal(t, "tz28KFsN3RPHiWGF2rd3ScbnDdFhZc4eQm3K", address.String())

		decoded, err := identifier.DecodeAddress(data)
		require.NoError(t, err)
		assert.Equal(t, address, decoded)

		got, ok := decoded.KeyHash()
		assert.True(t, ok)
		assert.Equal(t, pkh, got)
	})

	t.Run("originated address", func(t *testing.T) {
		t.Parallel()

		address := identifier.OriginatedAddress(hash)

		data := address.Bytes()
		assert.Len(t, data, identifier.AddressLength)
		assert.Equal(t, byte(0x01), data[0])
		assert.Equal(t, byte(0x00), data[21])
		assert.Equal(t, "KT18anmnvhqTsgqTwasxpLKYWcLJnGRX3m2D", address.String())

		decoded, err := identifier.DecodeAddress(data)
		require.NoError(t, err)
		assert.Equal(t, address, decoded)

		parsed, err := identifier.ParseAddress("KT18anmnvhqTsgqTwasxpLKYWcLJnGRX3m2D")
		require.NoError(t, err)
		assert.True(t, parsed.IsOriginated())
		assert.Equal(t, address, parsed)
	})

	t.Run("handles bad padding", func(t *testing.T) {
		t.Parallel()

		data := identifier.OriginatedAddress(hash).Bytes()
		data[21] = 0x01

		_, err := identifier.DecodeAddress(data)

		assert.ErrorAs(t, err, &failure.UnknownTag{})
	})

	t.Run("handles unknown tag", func(t *testing.T) {
		t.Parallel()

		data := identifier.OriginatedAddress(hash).Bytes()
		data[0] = 0x02

		_, err := identifier.DecodeAddress(data)

		assert.ErrorAs(t, err, &failure.UnknownTag{})
	})
}

func TestSignature(t *testing.T) {
	var data [identifier.SignatureLength]byte
	copy(data[:], sequence(0, identifier.SignatureLength))

	vectors := map[identifier.Curve]string{
		identifier.Ed25519:   "edsigtXonupSLnfUbvqBFnJf7wkV3o2WixC4r1Tn7a33n72JnPfn74sgxBPgPaCJ57PZvYhSckZ7yw8S3HmzC7Rh3QhvBxtjZDT",
		identifier.Secp256k1: "spsig15p17ppgz5FiFpBicRN5eMsuw2DN3cpx7M9hcVD6uaDYWuVKkYrF3TvLDyFN5KTSBsi9a1CFXeczeGf6yA2a8sPCY69Nto",
		identifier.P256:      "p2sigMJYdrJzcCDcLaSitzQTmxfKQb62EecfrDoEE6WEPtk7dP7HtMpxKcctpncoFMb9RmzWr7aZS1RavNdvBsoGevYRw5HBZX",
	}

	t.Run("tagged forms", func(t *testing.T) {
		t.Parallel()

		for curve, encoded := range vectors {
			sig, err := identifier.NewSignature(curve, data)
			require.NoError(t, err)
			assert.Equal(t, encoded, sig.String())

			parsed, err := identifier.ParseSignature(encoded)
			require.NoError(t, err)
			assert.Equal(t, sig, parsed)

			got, ok := parsed.Curve()
			assert.True(t, ok)
			assert.Equal(t, curve, got)
		}
	})

	t.Run("generic form shares bytes", func(t *testing.T) {
		t.Parallel()

		sig, err := identifier.NewSignature(identifier.Ed25519, data)
		require.NoError(t, err)

		generic := sig.Generic()
		_, ok := generic.Curve()
		assert.False(t, ok)
		assert.Equal(t, sig.Bytes(), generic.Bytes())
		assert.Equal(t, "sigMzKnmDSWjHZseBxeGovzTCY2CRnyZCFdn2Nqh3o6gHq5qqWZyms6LSUXbgH1vPa79xzq3Ld6WUGYywzTHM5Der5zh2iez", generic.String())

		decoded, err := identifier.DecodeSignature(sig.Bytes())
		require.NoError(t, err)
		assert.Equal(t, generic, decoded)

		tagged, err := decoded.WithCurve(identifier.Ed25519)
		require.NoError(t, err)
		assert.Equal(t, sig, tagged)
	})

	t.Run("handles wrong length", func(t *testing.T) {
		t.Parallel()

		_, err := identifier.DecodeSignature(data[:63])

		assert.ErrorAs(t, err, &failure.InvalidLength{})
	})
}

func TestSecretKey(t *testing.T) {
	seed := sequence(1, identifier.SecretKeyLength)

	t.Run("seed form", func(t *testing.T) {
		t.Parallel()

		sk, err := identifier.ParseSecretKey("edsk2gM2LioC6YfkHSgkD1opuvCLS8Ao7ytPf4QXmaupPwVgF27wFW")
		require.NoError(t, err)

		assert.Equal(t, identifier.Ed25519, sk.Curve())
		assert.Equal(t, seed, sk.Key())
		assert.Equal(t, "edsk2gM2LioC6YfkHSgkD1opuvCLS8Ao7ytPf4QXmaupPwVgF27wFW", sk.Encode())
		assert.NotContains(t, sk.String(), "edsk")
	})

	t.Run("expanded form", func(t *testing.T) {
		t.Parallel()

		sk, err := identifier.ParseSecretKey("edskRc9RaW6b4iCtwxcev9kvd2EdTA7soz8SQ8x47jV6bk1AN7NdJBr3ZZSiP3tXKAkTwghvNjXsLqHnSCubWfZQen5JZpV732")
		require.NoError(t, err)

		assert.Equal(t, seed, sk.Key())
	})

	t.Run("other curves", func(t *testing.T) {
		t.Parallel()

		spsk, err := identifier.ParseSecretKey("spsk1S1Ree7gaspotLbU2WkEvqCHZ1R6Gh5raPeJhJzH5KAxvEEuSB")
		require.NoError(t, err)
		assert.Equal(t, identifier.Secp256k1, spsk.Curve())
		assert.Equal(t, seed, spsk.Key())

		p2sk, err := identifier.ParseSecretKey("p2sk2MEYt93H37wHdnpkPYQ2hipLmSX4bnhocvAjxnnvnzvH7W76T2")
		require.NoError(t, err)
		assert.Equal(t, identifier.P256, p2sk.Curve())
		assert.Equal(t, "p2sk2MEYt93H37wHdnpkPYQ2hipLmSX4bnhocvAjxnnvnzvH7W76T2", p2sk.Encode())
	})

	t.Run("handles unknown prefix", func(t *testing.T) {
		t.Parallel()

		_, err := identifier.ParseSecretKey("tz1Ke3u9SqxvnkdNkgaCmydXg3zh3iaKNDxw")

		assert.ErrorAs(t, err, &failure.InvalidEncoding{})
	})
	t.Run("error does not reveal the key", func(t *testing.T) {
		t.Parallel()

		keys := []string{
			"edsk2gM2LioC6YfkHSgkD1opuvCLS8Ao7ytPf4QXmaupPwVgF27wFX",
			"spsk1S1Ree7gaspotLbU2WkEvqCHZ1R6Gh5raPeJhJzH5KAxvEEuSC",
			"p2sk2MEYt93H37wHdnpkPYQ2hipLmSX4bnhocvAjxnnvnzvH7W76T3",
		}

		for _, key := range keys {
			_, err := identifier.ParseSecretKey(key)

			var invalid failure.InvalidEncoding
			require.ErrorAs(t, err, &invalid)
			assert.NotContains(t, err.Error(), key)
			assert.NotContains(t, err.Error(), key[4:20])
		}
	})
}

func TestHashes(t *testing.T) {
	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		var data [identifier.HashLength]byte
		copy(data[:], sequence(0, identifier.HashLength))

		assert.Equal(t, "BKiHSFY5yPf2ne3BSAWXhFKVfA7GUk484ACE9Rk2PNhS9BEYg2w", identifier.BlockHash(data).String())
		assert.Equal(t, "oneDNXrq8HVRVCJXkqofS9e41G8ZkttpBZFMaQ9MvKyP3nYiP97", identifier.OperationHash(data).String())
		assert.Equal(t, "PrihQyQ2gWbjDTNxUxeERBZ89pRqc7DcMCgVPT1JATCUhpv2P7m", identifier.ProtocolHash(data).String())
		assert.Equal(t, "vh1g8DPZMNxnqDHkq2npmkL4UWMc54RbG3UhgUxcbzwumQ8nioVd", identifier.PayloadHash(data).String())
		assert.Equal(t, "LLoZKi7YfF6zf8vpKTbstYfpJaDu8fMmnJShSvApkx7uaQ2rsAa4T", identifier.OperationListListHash(data).String())
		assert.Equal(t, "CoUeJxSgSEPoKyGNzcAQWUmSkAbWwgQdYBhmhSUF6qVCQW6AZRyT", identifier.ContextHash(data).String())
		assert.Equal(t, "nceUDx8J4VmvXRUTxYWYJAjaNewEg31BbjNvJN2hFcuaj7SD8kwsb", identifier.NonceHash(data).String())
		assert.Equal(t, "exprtWszwfPPEToSfV3LhkLweivz7tziDfMLSrTCku4t2n486CmP2o", identifier.ScriptExprHash(data).String())
	})

	t.Run("known chain and block", func(t *testing.T) {
		t.Parallel()

		chain, err := identifier.ParseChainID("NetXdQprcVkpaWU")
		require.NoError(t, err)
		assert.Equal(t, identifier.ChainID{0x7a, 0x06, 0xa7, 0x70}, chain)

		genesis, err := identifier.ParseBlockHash("BLockGenesisGenesisGenesisGenesisGenesisf79b5d1CoW2")
		require.NoError(t, err)
		assert.Equal(t, "8fcf233671b6a04fcf679d2a381c2544ea6c1ea29ba6157776ed8424c7ccd00b", hex.EncodeToString(genesis.Bytes()))
	})

	t.Run("handles wrong family", func(t *testing.T) {
		t.Parallel()

		_, err := identifier.ParseBlockHash("oneDNXrq8HVRVCJXkqofS9e41G8ZkttpBZFMaQ9MvKyP3nYiP97")

		assert.ErrorAs(t, err, &failure.InvalidEncoding{})
	})

	t.Run("handles wrong length", func(t *testing.T) {
		t.Parallel()

		_, err := identifier.DecodeBlockHash(sequence(0, 31))

		assert.ErrorAs(t, err, &failure.InvalidLength{})
	})
}

func TestReaders(t *testing.T) {
	t.Run("identifiers back to back", func(t *testing.T) {
		t.Parallel()

		pk, err := identifier.NewPublicKey(identifier.P256, append([]byte{0x02}, sequence(0, 32)...))
		require.NoError(t, err)
		pkh := pk.Hash()
		address := identifier.ImplicitAddress(pkh)

		w := wire.NewWriter()
		w.Bytes(pk.Bytes())
		w.Bytes(pkh.Bytes())
		w.Bytes(address.Bytes())

		r := wire.NewReader(w.Data())

		gotKey, err := identifier.ReadPublicKey(r, "public_key")
		require.NoError(t, err)
		gotHash, err := identifier.ReadPublicKeyHash(r, "source")
		require.NoError(t, err)
		gotAddress, err := identifier.ReadAddress(r, "destination")
		require.NoError(t, err)

		assert.Equal(t, pk, gotKey)
		assert.Equal(t, pkh, gotHash)
		assert.Equal(t, address, gotAddress)
		assert.Equal(t, 0, r.Len())
	})

	t.Run("handles unknown public key tag before truncation", func(t *testing.T) {
		t.Parallel()

		r := wire.NewReader([]byte{0x05})

		_, err := identifier.ReadPublicKey(r, "public_key")

		assert.ErrorAs(t, err, &failure.UnknownTag{})
	})

	t.Run("handles truncated hash", func(t *testing.T) {
		t.Parallel()

		r := wire.NewReader(sequence(0, 10))

		_, err := identifier.ReadBlockHash(r, "branch")

		assert.ErrorAs(t, err, &failure.TruncatedOperation{})
	})
}
