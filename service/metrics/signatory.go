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

package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/optakt/tezos-forge/failure"
	"github.com/optakt/tezos-forge/identifier"
	"github.com/optakt/tezos-forge/signer"
)

// Signer is the signatory of the remote signer.
type Signer interface {
	PublicKey(pkh identifier.PublicKeyHash) (identifier.PublicKey, error)
	Keys() []identifier.PublicKeyHash
	Sign(pkh identifier.PublicKeyHash, message []byte) (identifier.Signature, error)
}

// Signatory counts signing requests by watermark and result, and observes
// how long they take.
type Signatory struct {
	signatory Signer
	requests  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

// NewSignatory registers the signing metrics with the given registerer.
func NewSignatory(signatory Signer, reg prometheus.Registerer) *Signatory {

	requestsOpts := prometheus.CounterOpts{
		Name:      "signing_requests_total",
		Namespace: namespace,
		Help:      "number of signing requests by watermark and result",
	}
	requests := promauto.With(reg).NewCounterVec(requestsOpts, []string{"watermark", "result"})

	durationOpts := prometheus.HistogramOpts{
		Name:      "signing_duration_seconds",
		Namespace: namespace,
		Help:      "duration of signing requests by watermark",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
	}
	duration := promauto.With(reg).NewHistogramVec(durationOpts, []string{"watermark"})

	s := Signatory{
		signatory: signatory,
		requests:  requests,
		duration:  duration,
	}

	return &s
}

func (s *Signatory) PublicKey(pkh identifier.PublicKeyHash) (identifier.PublicKey, error) {
	return s.signatory.PublicKey(pkh)
}

func (s *Signatory) Keys() []identifier.PublicKeyHash {
	return s.signatory.Keys()
}

func (s *Signatory) Sign(pkh identifier.PublicKeyHash, message []byte) (identifier.Signature, error) {
	watermark := watermarkLabel(message)
	start := time.Now()
	sig, err := s.signatory.Sign(pkh, message)
	s.duration.WithLabelValues(watermark).Observe(time.Since(start).Seconds())
	s.requests.WithLabelValues(watermark, resultLabel(err)).Inc()
	return sig, err
}

func watermarkLabel(message []byte) string {
	if len(message) == 0 {
		return "none"
	}
	switch message[0] {
	case signer.TagBlockHeader:
		return "block"
	case signer.TagEndorsement:
		return "endorsement"
	case signer.TagGenericOperation:
		return "operation"
	case signer.TagTenderbakeBlock:
		return "tenderbake_block"
	case signer.TagPreendorsement:
		return "preendorsement"
	case signer.TagTenderbakeEndorsement:
		return "tenderbake_endorsement"
	default:
		return "unknown"
	}
}

func resultLabel(err error) string {
	var unknown failure.UnknownKey
	var forbidden failure.ForbiddenOperation
	var stale failure.StaleWatermark
	switch {
	case err == nil:
		return "signed"
	case errors.As(err, &unknown):
		return "unknown_key"
	case errors.As(err, &forbidden):
		return "forbidden"
	case errors.As(err, &stale):
		return "stale"
	default:
		return "failed"
	}
}
