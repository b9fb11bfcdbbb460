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

	"github.com/hashicorp/go-multierror"

	"github.com/optakt/tezos-forge/failure"
	"github.com/optakt/tezos-forge/identifier"
	"github.com/optakt/tezos-forge/micheline"
)

// MaxProposals is the largest number of protocols a single proposals
// operation may name.
const MaxProposals = 20

// Validate checks the contents of an operation and reports every problem at
// once. Forging never fails, so this is where invalid values get rejected.
func Validate(contents ...Content) error {

	if len(contents) == 0 {
		return failure.InvalidLength{
			Description: failure.NewDescription("operation must hold at least one content"),
			Family:      "operation contents",
			Have:        0,
			Want:        1,
		}
	}

	var merr *multierror.Error
	for i, content := range contents {
		err := validateContent(content)
		if err != nil {
			merr = multierror.Append(merr, fmt.Errorf("invalid content %d: %w", i, err))
		}
	}

	return merr.ErrorOrNil()
}

func validateContent(content Content) error {
	switch c := content.(type) {

	case nil:
		return invalid("content", "content must not be nil")

	case Preendorsement:
		return validateConsensus(c.Level, c.Round)

	case Endorsement:
		return validateConsensus(c.Level, c.Round)

	case ActivateAccount:
		if c.PublicKeyHash.Curve() != identifier.Ed25519 {
			return invalid("pkh", "activated account must be an ed25519 account")
		}

	case Proposals:
		if len(c.Proposals) == 0 || len(c.Proposals) > MaxProposals {
			return invalid("proposals", fmt.Sprintf("proposal count must be between 1 and %d", MaxProposals))
		}

	case Ballot:
		if !c.Vote.Valid() {
			return invalid("ballot", "vote must be yay, nay or pass")
		}

	case Transaction:
		if c.Parameters == nil {
			return nil
		}
		var merr *multierror.Error
		if len(c.Parameters.Entrypoint) == 0 || len(c.Parameters.Entrypoint) > MaxEntrypointLength {
			merr = multierror.Append(merr, invalid("entrypoint", fmt.Sprintf("entrypoint must have between 1 and %d bytes", MaxEntrypointLength)))
		}
		if c.Parameters.Value == nil {
			merr = multierror.Append(merr, invalid("parameters", "parameters must hold a value"))
		} else if err := validateNode("parameters", c.Parameters.Value); err != nil {
			merr = multierror.Append(merr, err)
		}
		return merr.ErrorOrNil()

	case Origination:
		var merr *multierror.Error
		if c.Script.Code == nil {
			merr = multierror.Append(merr, invalid("code", "script must hold code"))
		} else if err := validateNode("code", c.Script.Code); err != nil {
			merr = multierror.Append(merr, err)
		}
		if c.Script.Storage == nil {
			merr = multierror.Append(merr, invalid("storage", "script must hold storage"))
		} else if err := validateNode("storage", c.Script.Storage); err != nil {
			merr = multierror.Append(merr, err)
		}
		return merr.ErrorOrNil()

	case RegisterGlobalConstant:
		if c.Value == nil {
			return invalid("value", "global constant must hold a value")
		}
		return validateNode("value", c.Value)

	case DoubleEndorsementEvidence:
		return multierror.Append(nil,
			validateConsensus(c.Op1.Endorsement.Level, c.Op1.Endorsement.Round),
			validateConsensus(c.Op2.Endorsement.Level, c.Op2.Endorsement.Round),
		).ErrorOrNil()

	case DoublePreendorsementEvidence:
		return multierror.Append(nil,
			validateConsensus(c.Op1.Preendorsement.Level, c.Op1.Preendorsement.Round),
			validateConsensus(c.Op2.Preendorsement.Level, c.Op2.Preendorsement.Round),
		).ErrorOrNil()
	}

	return nil
}

// validateNode walks a script expression and rejects the nodes the binary
// encoding has no form for.
func validateNode(field string, node micheline.Node) error {
	switch n := node.(type) {

	case micheline.Int, micheline.String, micheline.Bytes:
		return nil

	case micheline.Seq:
		for _, child := range n.Nodes {
			err := validateNode(field, child)
			if err != nil {
				return err
			}
		}
		return nil

	case micheline.Prim:
		for _, arg := range n.Args {
			err := validateNode(field, arg)
			if err != nil {
				return err
			}
		}
		return nil

	case nil:
		return invalid(field, "expression must not contain nil nodes")

	default:
		return invalid(field, fmt.Sprintf("unknown expression node type (%T)", node))
	}
}

func validateConsensus(level int32, round int32) error {
	if level < 0 {
		return invalid("level", "level must not be negative")
	}
	if round < 0 {
		return invalid("round", "round must not be negative")
	}
	return nil
}

func invalid(field string, text string) error {
	return failure.InvalidValue{
		Description: failure.NewDescription(text),
		Field:       field,
	}
}
