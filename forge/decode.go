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
	"fmt"

	"github.com/optakt/tezos-forge/encoding/wire"
	"github.com/optakt/tezos-forge/failure"
	"github.com/optakt/tezos-forge/identifier"
	"github.com/optakt/tezos-forge/micheline"
)

// decodeContent reads the kind tag and dispatches to the decoder of that
// kind.
func (c *Codec) decodeContent(r *wire.Reader) (Content, error) {

	offset := r.Offset()
	tag, err := r.Byte("kind")
	if err != nil {
		return nil, err
	}

	kind := Kind(tag)
	var content Content
	switch kind {
	case KindPreendorsement:
		content, err = decodePreendorsement(r)
	case KindEndorsement:
		content, err = decodeEndorsement(r)
	case KindSeedNonceRevelation:
		content, err = decodeSeedNonceRevelation(r)
	case KindDoubleEndorsementEvidence:
		content, err = c.decodeDoubleEndorsementEvidence(r)
	case KindDoublePreendorsementEvidence:
		content, err = c.decodeDoublePreendorsementEvidence(r)
	case KindDoubleBakingEvidence:
		content, err = decodeDoubleBakingEvidence(r)
	case KindActivateAccount:
		content, err = decodeActivateAccount(r)
	case KindProposals:
		content, err = decodeProposals(r)
	case KindBallot:
		content, err = decodeBallot(r)
	case KindFailingNoop:
		content, err = decodeFailingNoop(r)
	case KindReveal:
		content, err = decodeReveal(r)
	case KindTransaction:
		content, err = c.decodeTransaction(r)
	case KindOrigination:
		content, err = c.decodeOrigination(r)
	case KindDelegation:
		content, err = decodeDelegation(r)
	case KindRegisterGlobalConstant:
		content, err = c.decodeRegisterGlobalConstant(r)
	case KindSetDepositsLimit:
		content, err = decodeSetDepositsLimit(r)
	default:
		return nil, failure.UnknownOperationKind{
			Description: failure.NewDescription("tag does not match any operation kind"),
			Kind:        tag,
			Offset:      offset,
		}
	}
	if err != nil {
		return nil, fmt.Errorf("could not decode %s content (offset: %d): %w", kind, offset, err)
	}

	return content, nil
}

func decodeConsensus(r *wire.Reader) (uint16, int32, int32, identifier.PayloadHash, error) {
	slot, err := r.Uint16("slot")
	if err != nil {
		return 0, 0, 0, identifier.PayloadHash{}, err
	}
	level, err := r.Int32("level")
	if err != nil {
		return 0, 0, 0, identifier.PayloadHash{}, err
	}
	round, err := r.Int32("round")
	if err != nil {
		return 0, 0, 0, identifier.PayloadHash{}, err
	}
	payload, err := identifier.ReadPayloadHash(r, "block_payload_hash")
	if err != nil {
		return 0, 0, 0, identifier.PayloadHash{}, err
	}
	return slot, level, round, payload, nil
}

func decodePreendorsement(r *wire.Reader) (Content, error) {
	slot, level, round, payload, err := decodeConsensus(r)
	if err != nil {
		return nil, err
	}
	p := Preendorsement{
		Slot:        slot,
		Level:       level,
		Round:       round,
		PayloadHash: payload,
	}
	return p, nil
}

func decodeEndorsement(r *wire.Reader) (Content, error) {
	slot, level, round, payload, err := decodeConsensus(r)
	if err != nil {
		return nil, err
	}
	e := Endorsement{
		Slot:        slot,
		Level:       level,
		Round:       round,
		PayloadHash: payload,
	}
	return e, nil
}

func decodeSeedNonceRevelation(r *wire.Reader) (Content, error) {
	var s SeedNonceRevelation
	var err error
	s.Level, err = r.Int32("level")
	if err != nil {
		return nil, err
	}
	err = r.Fixed("nonce", s.Nonce[:])
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (c *Codec) decodeDoubleEndorsementEvidence(r *wire.Reader) (Content, error) {
	var evidence DoubleEndorsementEvidence
	for i, op := range []*InlinedEndorsement{&evidence.Op1, &evidence.Op2} {
		field := fmt.Sprintf("op%d", i+1)
		branch, content, sig, err := c.decodeInlined(r, field, KindEndorsement)
		if err != nil {
			return nil, err
		}
		op.Branch = branch
		op.Endorsement = content.(Endorsement)
		op.Signature = sig
	}
	return evidence, nil
}

func (c *Codec) decodeDoublePreendorsementEvidence(r *wire.Reader) (Content, error) {
	var evidence DoublePreendorsementEvidence
	for i, op := range []*InlinedPreendorsement{&evidence.Op1, &evidence.Op2} {
		field := fmt.Sprintf("op%d", i+1)
		branch, content, sig, err := c.decodeInlined(r, field, KindPreendorsement)
		if err != nil {
			return nil, err
		}
		op.Branch = branch
		op.Preendorsement = content.(Preendorsement)
		op.Signature = sig
	}
	return evidence, nil
}

func decodeDoubleBakingEvidence(r *wire.Reader) (Content, error) {
	var evidence DoubleBakingEvidence
	for i, header := range []*BlockHeader{&evidence.Header1, &evidence.Header2} {
		field := fmt.Sprintf("bh%d", i+1)
		sub, err := r.Sized(field)
		if err != nil {
			return nil, err
		}
		*header, err = decodeBlockHeader(sub, true)
		if err != nil {
			return nil, err
		}
		if sub.Len() != 0 {
			return nil, trailingBytes(field, sub)
		}
	}
	return evidence, nil
}

func decodeActivateAccount(r *wire.Reader) (Content, error) {
	var hash [identifier.KeyHashLength]byte
	err := r.Fixed("pkh", hash[:])
	if err != nil {
		return nil, err
	}
	pkh, _ := identifier.NewPublicKeyHash(identifier.Ed25519, hash)
	a := ActivateAccount{
		PublicKeyHash: pkh,
	}
	err = r.Fixed("secret", a.Secret[:])
	if err != nil {
		return nil, err
	}
	return a, nil
}

func decodeProposals(r *wire.Reader) (Content, error) {
	var p Proposals
	var err error
	p.Source, err = identifier.ReadPublicKeyHash(r, "source")
	if err != nil {
		return nil, err
	}
	p.Period, err = r.Int32("period")
	if err != nil {
		return nil, err
	}
	list, err := r.Sized("proposals")
	if err != nil {
		return nil, err
	}
	if list.Len()%identifier.HashLength != 0 {
		return nil, failure.InvalidLength{
			Description: failure.NewDescription("proposal list must hold whole protocol hashes",
				failure.WithInt("offset", list.Offset()),
			),
			Family: "proposals",
			Have:   list.Len(),
			Want:   list.Len() - list.Len()%identifier.HashLength,
		}
	}
	for list.Len() > 0 {
		proposal, _ := identifier.ReadProtocolHash(list, "proposals")
		p.Proposals = append(p.Proposals, proposal)
	}
	return p, nil
}

func decodeBallot(r *wire.Reader) (Content, error) {
	var b Ballot
	var err error
	b.Source, err = identifier.ReadPublicKeyHash(r, "source")
	if err != nil {
		return nil, err
	}
	b.Period, err = r.Int32("period")
	if err != nil {
		return nil, err
	}
	b.Proposal, err = identifier.ReadProtocolHash(r, "proposal")
	if err != nil {
		return nil, err
	}
	offset := r.Offset()
	vote, err := r.Byte("ballot")
	if err != nil {
		return nil, err
	}
	b.Vote = Vote(vote)
	if !b.Vote.Valid() {
		return nil, failure.UnknownTag{
			Description: failure.NewDescription("vote must be yay, nay or pass",
				failure.WithInt("offset", offset),
			),
			Family: "ballot",
			Tag:    vote,
		}
	}
	return b, nil
}

func decodeFailingNoop(r *wire.Reader) (Content, error) {
	sub, err := r.Sized("arbitrary")
	if err != nil {
		return nil, err
	}
	arbitrary, _ := sub.Bytes("arbitrary", sub.Len())
	f := FailingNoop{
		Arbitrary: arbitrary,
	}
	return f, nil
}

func decodeReveal(r *wire.Reader) (Content, error) {
	manager, err := decodeManager(r)
	if err != nil {
		return nil, err
	}
	pk, err := identifier.ReadPublicKey(r, "public_key")
	if err != nil {
		return nil, err
	}
	reveal := Reveal{
		Manager:   manager,
		PublicKey: pk,
	}
	return reveal, nil
}

func (c *Codec) decodeTransaction(r *wire.Reader) (Content, error) {
	manager, err := decodeManager(r)
	if err != nil {
		return nil, err
	}
	amount, err := readNatural(r, "amount")
	if err != nil {
		return nil, err
	}
	destination, err := identifier.ReadAddress(r, "destination")
	if err != nil {
		return nil, err
	}
	tx := Transaction{
		Manager:     manager,
		Amount:      amount,
		Destination: destination,
	}

	present, err := r.Bool("parameters")
	if err != nil {
		return nil, err
	}
	if !present {
		return tx, nil
	}
	entrypoint, err := readEntrypoint(r)
	if err != nil {
		return nil, err
	}
	value, err := c.readExpression(r, "parameters")
	if err != nil {
		return nil, err
	}
	tx.Parameters = &Parameters{
		Entrypoint: entrypoint,
		Value:      value,
	}

	return tx, nil
}

func (c *Codec) decodeOrigination(r *wire.Reader) (Content, error) {
	manager, err := decodeManager(r)
	if err != nil {
		return nil, err
	}
	balance, err := readNatural(r, "balance")
	if err != nil {
		return nil, err
	}
	delegate, err := readOptionalKeyHash(r, "delegate")
	if err != nil {
		return nil, err
	}
	code, err := c.readExpression(r, "code")
	if err != nil {
		return nil, err
	}
	storage, err := c.readExpression(r, "storage")
	if err != nil {
		return nil, err
	}
	origination := Origination{
		Manager:  manager,
		Balance:  balance,
		Delegate: delegate,
		Script: Script{
			Code:    code,
			Storage: storage,
		},
	}
	return origination, nil
}

func decodeDelegation(r *wire.Reader) (Content, error) {
	manager, err := decodeManager(r)
	if err != nil {
		return nil, err
	}
	delegate, err := readOptionalKeyHash(r, "delegate")
	if err != nil {
		return nil, err
	}
	delegation := Delegation{
		Manager:  manager,
		Delegate: delegate,
	}
	return delegation, nil
}

func (c *Codec) decodeRegisterGlobalConstant(r *wire.Reader) (Content, error) {
	manager, err := decodeManager(r)
	if err != nil {
		return nil, err
	}
	value, err := c.readExpression(r, "value")
	if err != nil {
		return nil, err
	}
	register := RegisterGlobalConstant{
		Manager: manager,
		Value:   value,
	}
	return register, nil
}

func decodeSetDepositsLimit(r *wire.Reader) (Content, error) {
	manager, err := decodeManager(r)
	if err != nil {
		return nil, err
	}
	set := SetDepositsLimit{
		Manager: manager,
	}
	present, err := r.Bool("limit")
	if err != nil {
		return nil, err
	}
	if !present {
		return set, nil
	}
	limit, err := readNatural(r, "limit")
	if err != nil {
		return nil, err
	}
	set.Limit = &limit
	return set, nil
}

// readExpression hands the rest of the buffer to the script codec and skips
// whatever it consumed.
func (c *Codec) readExpression(r *wire.Reader, field string) (micheline.Node, error) {
	offset := r.Offset()
	node, rest, err := c.script.DecodeExpression(r.Rest())
	if err != nil {
		return nil, fmt.Errorf("could not decode %s expression (offset: %d): %w", field, offset, err)
	}
	_ = r.Skip(field, r.Len()-len(rest))
	return node, nil
}

func unexpectedKind(have Kind, want Kind, offset int) error {
	return failure.UnknownOperationKind{
		Description: failure.NewDescription("inlined operation holds the wrong kind",
			failure.WithString("want", want.String()),
		),
		Kind:   byte(have),
		Offset: offset,
	}
}

func trailingBytes(field string, r *wire.Reader) error {
	return failure.InvalidLength{
		Description: failure.NewDescription("trailing bytes after nested structure",
			failure.WithString("field", field),
			failure.WithInt("offset", r.Offset()),
		),
		Family: field,
		Have:   r.Offset() + r.Len(),
		Want:   r.Offset(),
	}
}
