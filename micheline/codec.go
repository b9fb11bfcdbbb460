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
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"

	"github.com/optakt/tezos-forge/encoding/wire"
	"github.com/optakt/tezos-forge/encoding/zarith"
	"github.com/optakt/tezos-forge/failure"
	"github.com/optakt/tezos-forge/identifier"
)

// Node tags of the binary encoding.
const (
	tagInt              = 0x00
	tagString           = 0x01
	tagSeq              = 0x02
	tagPrim             = 0x03
	tagPrimAnnots       = 0x04
	tagPrimArg          = 0x05
	tagPrimArgAnnots    = 0x06
	tagPrimArgs         = 0x07
	tagPrimArgsAnnots   = 0x08
	tagPrimGeneric      = 0x09
	tagBytes            = 0x0a
	packedDataWatermark = 0x05
)

// DefaultMaxDepth bounds the nesting of decoded expressions.
const DefaultMaxDepth = 1024

// Codec encodes script expressions to and from their binary form. The
// expression form used inside operations carries a four-byte length prefix.
type Codec struct {
	maxDepth int
}

// NewCodec creates a new codec.
func NewCodec(options ...func(*Codec)) *Codec {

	c := Codec{
		maxDepth: DefaultMaxDepth,
	}

	for _, option := range options {
		option(&c)
	}

	return &c
}

// WithMaxDepth sets how deeply nested a decoded expression may be.
func WithMaxDepth(depth int) func(*Codec) {
	return func(c *Codec) {
		c.maxDepth = depth
	}
}

// EncodeExpression encodes a node with a four-byte length prefix.
func (c *Codec) EncodeExpression(node Node) []byte {
	w := wire.NewWriter()
	w.Sized(Encode(node))
	return w.Data()
}

// DecodeExpression decodes one length-prefixed expression from the start of
// the data and returns the remaining bytes. The length must cover exactly one
// node.
func (c *Codec) DecodeExpression(data []byte) (Node, []byte, error) {
	r := wire.NewReader(data)
	sub, err := r.Sized("expression")
	if err != nil {
		return nil, nil, err
	}
	node, err := c.decode(sub, 0)
	if err != nil {
		return nil, nil, err
	}
	if sub.Len() != 0 {
		return nil, nil, failure.MalformedExpression{
			Description: failure.NewDescription("trailing bytes after expression",
				failure.WithInt("remaining", sub.Len()),
			),
			Offset: sub.Offset(),
		}
	}
	return node, r.Rest(), nil
}

// Decode decodes one node from the start of the data, without length prefix,
// and returns the remaining bytes.
func (c *Codec) Decode(data []byte) (Node, []byte, error) {
	r := wire.NewReader(data)
	node, err := c.decode(r, 0)
	if err != nil {
		return nil, nil, err
	}
	return node, r.Rest(), nil
}

// Encode encodes a node without length prefix.
func Encode(node Node) []byte {
	w := wire.NewWriter()
	encode(w, node)
	return w.Data()
}

// Hash returns the hash of the packed form of an expression, which is how
// global constants are identified.
func Hash(node Node) identifier.ScriptExprHash {
	packed := append([]byte{packedDataWatermark}, Encode(node)...)
	return blake2b.Sum256(packed)
}

func encode(w *wire.Writer, node Node) {
	switch n := node.(type) {

	case Int:
		w.Byte(tagInt)
		w.Bytes(zarith.EncodeInteger(n.Value))

	case String:
		w.Byte(tagString)
		w.Sized([]byte(n.Value))

	case Bytes:
		w.Byte(tagBytes)
		w.Sized(n.Value)

	case Seq:
		w.Byte(tagSeq)
		w.Nested(func(inner *wire.Writer) {
			for _, child := range n.Nodes {
				encode(inner, child)
			}
		})

	case Prim:
		annotated := len(n.Annots) > 0
		switch {
		case len(n.Args) <= 2:
			tag := byte(tagPrim + 2*len(n.Args))
			if annotated {
				tag++
			}
			w.Byte(tag)
			w.Byte(byte(n.Op))
			for _, arg := range n.Args {
				encode(w, arg)
			}
			if annotated {
				w.Sized([]byte(strings.Join(n.Annots, " ")))
			}
		default:
			w.Byte(tagPrimGeneric)
			w.Byte(byte(n.Op))
			w.Nested(func(inner *wire.Writer) {
				for _, arg := range n.Args {
					encode(inner, arg)
				}
			})
			w.Sized([]byte(strings.Join(n.Annots, " ")))
		}

	default:
		panic(fmt.Sprintf("unknown expression node type (%T)", node))
	}
}

func (c *Codec) decode(r *wire.Reader, depth int) (Node, error) {
	if depth > c.maxDepth {
		return nil, failure.MalformedExpression{
			Description: failure.NewDescription("expression is nested too deeply",
				failure.WithInt("max_depth", c.maxDepth),
			),
			Offset: r.Offset(),
		}
	}

	offset := r.Offset()
	tag, err := r.Byte("node tag")
	if err != nil {
		return nil, err
	}

	switch tag {

	case tagInt:
		value, rest, err := zarith.DecodeInteger(r.Rest())
		if err != nil {
			return nil, fmt.Errorf("could not decode integer literal: %w", err)
		}
		_ = r.Skip("int", r.Len()-len(rest))
		return Int{Value: value}, nil

	case tagString:
		sub, err := r.Sized("string")
		if err != nil {
			return nil, err
		}
		return String{Value: string(sub.Rest())}, nil

	case tagBytes:
		sub, err := r.Sized("bytes")
		if err != nil {
			return nil, err
		}
		value := make([]byte, sub.Len())
		copy(value, sub.Rest())
		return Bytes{Value: value}, nil

	case tagSeq:
		sub, err := r.Sized("sequence")
		if err != nil {
			return nil, err
		}
		nodes, err := c.decodeAll(sub, depth+1)
		if err != nil {
			return nil, err
		}
		return Seq{Nodes: nodes}, nil

	case tagPrim, tagPrimAnnots, tagPrimArg, tagPrimArgAnnots, tagPrimArgs, tagPrimArgsAnnots:
		op, err := r.Byte("opcode")
		if err != nil {
			return nil, err
		}
		prim := Prim{Op: Opcode(op)}
		count := int(tag-tagPrim) / 2
		for i := 0; i < count; i++ {
			arg, err := c.decode(r, depth+1)
			if err != nil {
				return nil, err
			}
			prim.Args = append(prim.Args, arg)
		}
		if (tag-tagPrim)%2 == 1 {
			prim.Annots, err = decodeAnnots(r)
			if err != nil {
				return nil, err
			}
		}
		return prim, nil

	case tagPrimGeneric:
		op, err := r.Byte("opcode")
		if err != nil {
			return nil, err
		}
		sub, err := r.Sized("arguments")
		if err != nil {
			return nil, err
		}
		args, err := c.decodeAll(sub, depth+1)
		if err != nil {
			return nil, err
		}
		annots, err := decodeAnnots(r)
		if err != nil {
			return nil, err
		}
		prim := Prim{
			Op:     Opcode(op),
			Args:   args,
			Annots: annots,
		}
		return prim, nil

	default:
		return nil, failure.MalformedExpression{
			Description: failure.NewDescription("unknown node tag",
				failure.WithInt("tag", int(tag)),
			),
			Offset: offset,
		}
	}
}

func (c *Codec) decodeAll(r *wire.Reader, depth int) ([]Node, error) {
	var nodes []Node
	for r.Len() > 0 {
		node, err := c.decode(r, depth)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

func decodeAnnots(r *wire.Reader) ([]string, error) {
	sub, err := r.Sized("annotations")
	if err != nil {
		return nil, err
	}
	if sub.Len() == 0 {
		return nil, nil
	}
	return strings.Split(string(sub.Rest()), " "), nil
}
