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
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/optakt/tezos-forge/forge"
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
		flagLevel  string
		flagSigned bool
	)

	pflag.StringVarP(&flagLevel, "level", "l", "info", "log output level")
	pflag.BoolVarP(&flagSigned, "signed", "s", false, "operations end with a signature")

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

	if pflag.NArg() == 0 {
		log.Error().Msg("no operation given, pass forged operations in hexadecimal as arguments")
		return failure
	}

	codec := forge.NewCodec()
	result := success
	for _, arg := range pflag.Args() {
		op, err := codec.UnforgeFromString(arg, flagSigned)
		if err != nil {
			log.Error().Err(err).Msg("could not decode operation")
			result = failure
			continue
		}

		unsigned := op.Unsigned()
		opLog := log.With().Str("branch", unsigned.Branch.String()).Logger()
		signed, ok := op.Signed()
		if ok {
			opLog = opLog.With().
				Str("signature", signed.Signature.String()).
				Str("hash", codec.Hash(signed).String()).
				Logger()
		}

		for index, content := range unsigned.Contents {
			opLog.Info().
				Int("index", index).
				Str("kind", content.Kind().String()).
				Interface("content", content).
				Msg("operation content")
		}

		err = forge.Validate(unsigned.Contents...)
		if err != nil {
			opLog.Warn().Err(err).Msg("operation contents are not valid")
		}
	}

	return result
}
