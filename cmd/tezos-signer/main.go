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
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/dgraph-io/badger/v2"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/ziflex/lecho/v2"
	"golang.org/x/sync/errgroup"

	api "github.com/optakt/tezos-forge/api/signer"
	"github.com/optakt/tezos-forge/codec/zbor"
	"github.com/optakt/tezos-forge/forge"
	"github.com/optakt/tezos-forge/metrics/output"
	"github.com/optakt/tezos-forge/metrics/rcrowley"
	"github.com/optakt/tezos-forge/service/guard"
	"github.com/optakt/tezos-forge/service/metrics"
	"github.com/optakt/tezos-forge/service/profiler"
	"github.com/optakt/tezos-forge/service/signatory"
	"github.com/optakt/tezos-forge/service/storage"
	"github.com/optakt/tezos-forge/service/vault"
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

	// Signal catching for clean shutdown.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)

	// Command line parameter initialization.
	var (
		flagAddress         string
		flagCacheSize       uint64
		flagData            string
		flagKeys            string
		flagKinds           []string
		flagLevel           string
		flagMetrics         string
		flagMetricsInterval time.Duration
		flagNoBlocks        bool
		flagProfiler        string
		flagStats           bool
	)

	defaultKinds := make([]string, 0, len(signatory.DefaultConfig.Kinds))
	for _, kind := range signatory.DefaultConfig.Kinds {
		defaultKinds = append(defaultKinds, kind.String())
	}

	pflag.StringVarP(&flagAddress, "address", "a", "127.0.0.1:6732", "address to serve the signer API on")
	pflag.Uint64Var(&flagCacheSize, "cache-size", guard.DefaultConfig.CacheSize, "maximum number of cached watermarks")
	pflag.StringVarP(&flagData, "data", "d", "data", "database directory for high watermarks")
	pflag.StringVarP(&flagKeys, "keys", "k", "keys.txt", "file with one base58 secret key per line")
	pflag.StringSliceVarP(&flagKinds, "kinds", "o", defaultKinds, "operation kinds allowed under the generic watermark")
	pflag.StringVarP(&flagLevel, "level", "l", "info", "log output level")
	pflag.StringVarP(&flagMetrics, "metrics", "m", "", "address to serve prometheus metrics on, disabled when empty")
	pflag.DurationVar(&flagMetricsInterval, "metrics-interval", 5*time.Minute, "interval of storage and guard metrics output to log")
	pflag.BoolVar(&flagNoBlocks, "no-blocks", false, "refuse to sign block headers")
	pflag.StringVarP(&flagProfiler, "profiler", "p", "", "address to serve runtime profiles on, disabled when empty")
	pflag.BoolVarP(&flagStats, "stats", "s", false, "enable storage and guard metrics output to log")

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
	elog := lecho.From(log)

	kinds := make([]forge.Kind, 0, len(flagKinds))
	for _, name := range flagKinds {
		kind, ok := forge.ParseKind(name)
		if !ok {
			log.Error().Str("kind", name).Msg("unknown operation kind")
			return failure
		}
		kinds = append(kinds, kind)
	}

	// The signer derives public keys for the vault and signs the requests the
	// signatory lets through.
	codec := forge.NewCodec()
	sign := signer.New(codec)

	file, err := os.Open(flagKeys)
	if err != nil {
		log.Error().Str("keys", flagKeys).Err(err).Msg("could not open keys file")
		return failure
	}
	keys, err := vault.Load(sign, file)
	_ = file.Close()
	if err != nil {
		log.Error().Str("keys", flagKeys).Err(err).Msg("could not load keys")
		return failure
	}
	for _, pkh := range keys.Keys() {
		log.Info().Str("key", pkh.String()).Msg("key loaded")
	}

	// Open the watermark database.
	db, err := badger.Open(badger.DefaultOptions(flagData).WithLogger(nil))
	if err != nil {
		log.Error().Str("data", flagData).Err(err).Msg("could not open watermark database")
		return failure
	}
	defer db.Close()

	// We initialize a metrics logger regardless of whether metrics are enabled;
	// it will just do nothing if there are no registered metrics.
	mout := output.New(log, flagMetricsInterval)

	var lib storage.Codec = zbor.NewCodec()
	if flagStats {
		size := rcrowley.NewSize("store")
		mout.Register(size)
		lib = metrics.NewCodec(zbor.NewCodec(), size)
	}

	var protect signatory.Guard
	protect, err = guard.New(log, db, storage.New(lib), guard.WithCacheSize(flagCacheSize))
	if err != nil {
		log.Error().Err(err).Msg("could not initialize guard")
		return failure
	}
	if flagStats {
		timer := rcrowley.NewTime("guard")
		mout.Register(timer)
		protect = metrics.NewGuard(protect, timer)
	}

	var sigs metrics.Signer
	sigs, err = signatory.New(log, keys, codec, sign, protect,
		signatory.WithKinds(kinds...),
		signatory.WithBlocks(!flagNoBlocks),
	)
	if err != nil {
		log.Error().Err(err).Msg("could not initialize signatory")
		return failure
	}

	reg := prometheus.NewRegistry()
	if flagMetrics != "" {
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		sigs = metrics.NewSignatory(sigs, reg)
	}

	controller, err := api.NewController(sigs)
	if err != nil {
		log.Error().Err(err).Msg("could not initialize controller")
		return failure
	}

	server := echo.New()
	server.HideBanner = true
	server.HidePort = true
	server.Logger = elog
	server.Use(lecho.Middleware(lecho.Config{Logger: elog}))
	controller.Register(server)

	mserver := metrics.NewServer(log, flagMetrics, reg)
	pserver := profiler.NewServer(log, flagProfiler)

	// This section launches the servers in their own goroutines, so they can
	// run concurrently. Afterwards, we wait for an interrupt signal or the
	// failure of one of them in order to proceed with the shutdown.
	group, ctx := errgroup.WithContext(context.Background())
	group.Go(func() error {
		log.Info().Str("address", flagAddress).Msg("Tezos signer starting")
		err := server.Start(flagAddress)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if flagMetrics != "" {
		group.Go(mserver.Start)
	}
	if flagProfiler != "" {
		group.Go(pserver.Start)
	}
	if flagStats {
		mout.Run()
	}

	select {
	case <-sig:
		log.Info().Msg("Tezos signer stopping")
	case <-ctx.Done():
		log.Warn().Msg("Tezos signer aborted")
	}
	go func() {
		<-sig
		log.Warn().Msg("forcing exit")
		os.Exit(1)
	}()

	if flagStats {
		mout.Stop()
	}

	// The following code starts a shut down with a certain timeout and makes
	// sure that the servers are shutting down within the allocated time.
	shutdown, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	err = server.Shutdown(shutdown)
	if err != nil {
		log.Error().Err(err).Msg("could not stop signer API")
	}
	if flagMetrics != "" {
		err = mserver.Stop(shutdown)
		if err != nil {
			log.Error().Err(err).Msg("could not stop metrics server")
		}
	}
	if flagProfiler != "" {
		err = pserver.Stop(shutdown)
		if err != nil {
			log.Error().Err(err).Msg("could not stop profiler")
		}
	}

	err = group.Wait()
	if err != nil {
		log.Error().Err(err).Msg("Tezos signer failed")
		return failure
	}

	log.Info().Msg("Tezos signer stopped")

	return success
}
