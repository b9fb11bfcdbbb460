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

package guard

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"github.com/OneOfOne/xxhash"
	"github.com/dgraph-io/badger/v2"
	"github.com/dgraph-io/ristretto"
	"github.com/rs/zerolog"

	"github.com/optakt/tezos-forge/failure"
	"github.com/optakt/tezos-forge/identifier"
	"github.com/optakt/tezos-forge/service/storage"
)

// Library is the part of the storage library the guard persists watermarks
// with.
type Library interface {
	SaveWatermark(pkh identifier.PublicKeyHash, chain identifier.ChainID, class uint8, mark storage.Watermark) func(*badger.Txn) error
	RetrieveWatermark(pkh identifier.PublicKeyHash, chain identifier.ChainID, class uint8, mark *storage.Watermark) func(*badger.Txn) error
}

// Guard prevents a key from signing two different consensus messages at the
// same level and round, or from signing below a message it already signed.
// Watermarks are persisted before a signature is released.
type Guard struct {
	log   zerolog.Logger
	db    *badger.DB
	lib   Library
	cache *ristretto.Cache
	mutex *sync.Mutex
}

type entry struct {
	key  []byte
	mark storage.Watermark
}

// New creates a guard that keeps its watermarks in the given database.
func New(log zerolog.Logger, db *badger.DB, lib Library, options ...func(*Config)) (*Guard, error) {

	cfg := DefaultConfig
	for _, option := range options {
		option(&cfg)
	}

	// Every entry has a cost of one, so the maximum cost is the number of
	// entries. Ristretto recommends ten counters per entry.
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: int64(cfg.CacheSize) * 10,
		MaxCost:     int64(cfg.CacheSize),
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("could not initialize cache: %w", err)
	}

	g := Guard{
		log:   log.With().Str("component", "guard").Logger(),
		db:    db,
		lib:   lib,
		cache: cache,
		mutex: &sync.Mutex{},
	}

	return &g, nil
}

// Sign calls sign if the request is above the high watermark of its key,
// chain and class, and moves the watermark up to it. A request identical to
// the last signed one returns the stored signature without signing again.
func (g *Guard) Sign(req Request, sign func() (identifier.Signature, error)) (identifier.Signature, error) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	key := storage.WatermarkKey(req.Key, req.Chain, uint8(req.Class))
	hash := xxhash.Checksum64(key)

	log := g.log.With().
		Str("key", req.Key.String()).
		Str("class", req.Class.String()).
		Int32("level", req.Level).
		Int32("round", req.Round).
		Logger()

	// Cached watermarks can lag behind the database, but never lead it, so
	// they are enough to answer identical and stale requests.
	cached, ok := g.cache.Get(hash)
	if ok && bytes.Equal(cached.(entry).key, key) {
		sig, done, err := g.check(req, cached.(entry).mark)
		if done {
			log.Debug().Err(err).Msg("answered from cached watermark")
			return sig, err
		}
	}

	var last storage.Watermark
	err := g.db.View(g.lib.RetrieveWatermark(req.Key, req.Chain, uint8(req.Class), &last))
	if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		return identifier.Signature{}, fmt.Errorf("could not retrieve watermark: %w", err)
	}
	if err == nil {
		g.cache.Set(hash, entry{key: key, mark: last}, 1)
		sig, done, err := g.check(req, last)
		if done {
			log.Debug().Err(err).Msg("answered from stored watermark")
			return sig, err
		}
	}

	sig, err := sign()
	if err != nil {
		return identifier.Signature{}, err
	}

	mark := storage.Watermark{
		Level:     req.Level,
		Round:     req.Round,
		Digest:    req.Digest,
		Signature: sig.Data(),
	}
	// The watermark is checked again inside the write transaction, so that a
	// signature is never released when the stored watermark moved past the
	// request in the meantime.
	var current storage.Watermark
	err = g.db.Update(storage.Combine(
		storage.Fallback(
			storage.Absent(key),
			storage.Combine(
				g.lib.RetrieveWatermark(req.Key, req.Chain, uint8(req.Class), &current),
				below(req, &current),
			),
		),
		g.lib.SaveWatermark(req.Key, req.Chain, uint8(req.Class), mark),
	))
	if err != nil {
		return identifier.Signature{}, fmt.Errorf("could not save watermark: %w", err)
	}
	g.cache.Set(hash, entry{key: key, mark: mark}, 1)

	log.Debug().Msg("watermark moved up")

	return sig, nil
}

// check compares a request with the last signed message. It is done when the
// request is identical, in which case the stored signature is returned, or
// when the request is not above the watermark.
func (g *Guard) check(req Request, last storage.Watermark) (identifier.Signature, bool, error) {

	if req.Level == last.Level && req.Round == last.Round && req.Digest == last.Digest {
		sig, err := identifier.NewSignature(req.Key.Curve(), last.Signature)
		return sig, true, err
	}

	if above(req, last) {
		return identifier.Signature{}, false, nil
	}

	return identifier.Signature{}, true, stale(req, last)
}

// below is an operation that fails unless the request is above the given
// watermark, once the transaction has loaded it.
func below(req Request, current *storage.Watermark) func(*badger.Txn) error {
	return func(*badger.Txn) error {
		if above(req, *current) {
			return nil
		}
		return stale(req, *current)
	}
}

func stale(req Request, last storage.Watermark) error {
	return failure.StaleWatermark{
		Description: failure.NewDescription("request is not above the last signed message",
			failure.WithString("class", req.Class.String()),
			failure.WithInt("level", int(req.Level)),
			failure.WithInt("round", int(req.Round)),
		),
		Key:   req.Key.String(),
		Level: last.Level,
		Round: last.Round,
	}
}

func above(req Request, last storage.Watermark) bool {
	if req.Level != last.Level {
		return req.Level > last.Level
	}
	return req.Round > last.Round
}
