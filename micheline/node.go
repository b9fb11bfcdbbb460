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

package micheline

import (
	"github.com/optakt/tezos-forge/encoding/zarith"
)

// Node is one node of a script expression.
type Node interface {
	isNode()
}

// Int is an arbitrary-precision integer literal.
type Int struct {
	Value zarith.Integer
}

// String is a string literal.
type String struct {
	Value string
}

// Bytes is a byte sequence literal.
type Bytes struct {
	Value []byte
}

// Seq is a sequence of nodes, such as a code block or a list.
type Seq struct {
	Nodes []Node
}

// Prim is a primitive application with its arguments and annotations.
type Prim struct {
	Op     Opcode
	Args   []Node
	Annots []string
}

func (Int) isNode()    {}
func (String) isNode() {}
func (Bytes) isNode()  {}
func (Seq) isNode()    {}
func (Prim) isNode()   {}

// NewInt creates an integer literal.
func NewInt(v int64) Int {
	return Int{Value: zarith.IntegerFromInt64(v)}
}

// NewString creates a string literal.
func NewString(s string) String {
	return String{Value: s}
}

// NewBytes creates a byte sequence literal.
func NewBytes(b []byte) Bytes {
	return Bytes{Value: b}
}

// NewSeq creates a sequence of the given nodes.
func NewSeq(nodes ...Node) Seq {
	return Seq{Nodes: nodes}
}

// NewPrim creates a primitive application without annotations.
func NewPrim(op Opcode, args ...Node) Prim {
	if len(args) == 0 {
		args = nil
	}
	return Prim{Op: op, Args: args}
}

// Unit is the value of the unit type, which is the parameter of plain
// transfers to contracts.
func Unit() Prim {
	return Prim{Op: DUnit}
}
