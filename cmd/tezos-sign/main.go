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

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/optakt/tezos-forge/forge"
	"github.com/optakt/tezos-forge/identifier"
	"github.com/optakt/tezos-forge/signer"
)

const (
	success = 0
	failure = 1
)

func main() {
	os.Exit(run())
}

func run() int {

	// Command line parameter initialization.
	var (
		flagKey       string
		flagLevel     string
		flagOperation string
		flagPrefix    bool
	)

	pflag.StringVarP(&flagKey, "key", "k", "", "base58 secret key to sign with")
	pflag.StringVarP(&flagLevel, "level", "l", "info", "log output level")
	pflag.StringVarP(&flagOperation, "operation", "o", "", "forged unsigned operation in hexadecimal")
	pflag.BoolVarP(&flagPrefix, "prefix", "p", false, "prefix the signed operation with 0x")

	pflag.Parse()

	// Logger initialization.
	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }
	log := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.DebugLevel)
	level, err := zerolog.ParseLevel(flagLevel)
	if err != nil {
		log.Error().Str("level", flagLevel).Err(err).Msg("could not parse log level")
		return failure
	}
	log = log.Level(level)

	if flagKey == "" || flagOperation == "" {
		log.Error().Msg("both a secret key and an operation are required")
		pflag.Usage()
		return failure
	}

	sk, err := identifier.ParseSecretKey(flagKey)
	if err != nil {
		log.Error().Err(err).Msg("could not parse secret key")
		return failure
	}

	codec := forge.NewCodec()
	op, err := codec.UnforgeFromString(flagOperation, false)
	if err != nil {
		log.Error().Err(err).Msg("could not decode operation")
		return failure
	}
	err = forge.Validate(op.Unsigned().Contents...)
	if err != nil {
		log.Error().Err(err).Msg("invalid operation")
		return failure
	}

	sign := signer.New(codec)
	pk, err := sign.PublicKey(sk)
	if err != nil {
		log.Error().Err(err).Msg("could not derive public key")
		return failure
	}
	signed, err := sign.SignOperation(op.Unsigned(), sk)
	if err != nil {
		log.Error().Err(err).Msg("could not sign operation")
		return failure
	}
	sig, err := signed.Signature.WithCurve(sk.Curve())
	if err != nil {
		log.Error().Err(err).Msg("could not tag signature")
		return failure
	}

	log.Info().
		Str("signer", pk.Hash().String()).
		Int("contents", len(signed.Contents)).
		Str("signature", sig.String()).
		Str("hash", codec.Hash(signed).String()).
		Msg("operation signed")

	fmt.Println(codec.ForgeToString(signed, flagPrefix))

	return success
}
