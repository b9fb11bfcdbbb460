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
)

func (p Preendorsement) encode(_ *Codec, w *wire.Writer) {
	w.Byte(byte(KindPreendorsement))
	w.Uint16(p.Slot)
	w.Int32(p.Level)
	w.Int32(p.Round)
	w.Bytes(p.PayloadHash[:])
}

func (e Endorsement) encode(_ *Codec, w *wire.Writer) {
	w.Byte(byte(KindEndorsement))
	w.Uint16(e.Slot)
	w.Int32(e.Level)
	w.Int32(e.Round)
	w.Bytes(e.PayloadHash[:])
}

func (s SeedNonceRevelation) encode(_ *Codec, w *wire.Writer) {
	w.Byte(byte(KindSeedNonceRevelation))
	w.Int32(s.Level)
	w.Bytes(s.Nonce[:])
}

func (d DoubleEndorsementEvidence) encode(c *Codec, w *wire.Writer) {
	w.Byte(byte(KindDoubleEndorsementEvidence))
	w.Nested(func(inner *wire.Writer) { d.Op1.encode(c, inner) })
	w.Nested(func(inner *wire.Writer) { d.Op2.encode(c, inner) })
}

func (d DoublePreendorsementEvidence) encode(c *Codec, w *wire.Writer) {
	w.Byte(byte(KindDoublePreendorsementEvidence))
	w.Nested(func(inner *wire.Writer) { d.Op1.encode(c, inner) })
	w.Nested(func(inner *wire.Writer) { d.Op2.encode(c, inner) })
}

func (d DoubleBakingEvidence) encode(_ *Codec, w *wire.Writer) {
	w.Byte(byte(KindDoubleBakingEvidence))
	w.Nested(func(inner *wire.Writer) { d.Header1.encode(inner, true) })
	w.Nested(func(inner *wire.Writer) { d.Header2.encode(inner, true) })
}

// The activation hash is always an Ed25519 hash, so it is written without its
// curve tag.
func (a ActivateAccount) encode(_ *Codec, w *wire.Writer) {
	w.Byte(byte(KindActivateAccount))
	hash := a.PublicKeyHash.Hash()
	w.Bytes(hash[:])
	w.Bytes(a.Secret[:])
}

func (p Proposals) encode(_ *Codec, w *wire.Writer) {
	w.Byte(byte(KindProposals))
	w.Bytes(p.Source.Bytes())
	w.Int32(p.Period)
	w.Nested(func(inner *wire.Writer) {
		for _, proposal := range p.Proposals {
			inner.Bytes(proposal[:])
		}
	})
}

func (b Ballot) encode(_ *Codec, w *wire.Writer) {
	w.Byte(byte(KindBallot))
	w.Bytes(b.Source.Bytes())
	w.Int32(b.Period)
	w.Bytes(b.Proposal[:])
	w.Byte(byte(b.Vote))
}

func (f FailingNoop) encode(_ *Codec, w *wire.Writer) {
	w.Byte(byte(KindFailingNoop))
	w.Sized(f.Arbitrary)
}

func (r Reveal) encode(_ *Codec, w *wire.Writer) {
	w.Byte(byte(KindReveal))
	r.Manager.encode(w)
	w.Bytes(r.PublicKey.Bytes())
}

func (t Transaction) encode(c *Codec, w *wire.Writer) {
	w.Byte(byte(KindTransaction))
	t.Manager.encode(w)
	w.Bytes(zarith.EncodeNatural(t.Amount))
	w.Bytes(t.Destination.Bytes())
	if t.Parameters == nil {
		w.Bool(false)
		return
	}
	w.Bool(true)
	writeEntrypoint(w, t.Parameters.Entrypoint)
	w.Bytes(c.script.EncodeExpression(t.Parameters.Value))
}

func (o Origination) encode(c *Codec, w *wire.Writer) {
	w.Byte(byte(KindOrigination))
	o.Manager.encode(w)
	w.Bytes(zarith.EncodeNatural(o.Balance))
	writeOptionalKeyHash(w, o.Delegate)
	w.Bytes(c.script.EncodeExpression(o.Script.Code))
	w.Bytes(c.script.EncodeExpression(o.Script.Storage))
}

func (d Delegation) encode(_ *Codec, w *wire.Writer) {
	w.Byte(byte(KindDelegation))
	d.Manager.encode(w)
	writeOptionalKeyHash(w, d.Delegate)
}

func (r RegisterGlobalConstant) encode(c *Codec, w *wire.Writer) {
	w.Byte(byte(KindRegisterGlobalConstant))
	r.Manager.encode(w)
	w.Bytes(c.script.EncodeExpression(r.Value))
}

func (s SetDepositsLimit) encode(_ *Codec, w *wire.Writer) {
	w.Byte(byte(KindSetDepositsLimit))
	s.Manager.encode(w)
	if s.Limit == nil {
		w.Bool(false)
		return
	}
	w.Bool(true)
	w.Bytes(zarith.EncodeNatural(*s.Limit))
}
