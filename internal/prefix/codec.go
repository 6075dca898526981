// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package prefix

import (
	"fmt"

	"github.com/dsnet/huffman/internal/errors"
)

// Token is a single entry of a serialized tree. Sym is only meaningful when
// Leaf is set.
type Token struct {
	Leaf bool
	Sym  Symbol
}

// Tokens is a tree flattened in pre-order.
type Tokens []Token

// Serialize flattens t in pre-order. A leaf emits a leaf token holding its
// symbol, while an internal node emits a non-leaf token followed by the
// tokens of its left subtree and then those of its right subtree.
func Serialize(t *Tree) Tokens {
	if t == nil || len(t.Nodes) == 0 {
		return nil
	}
	toks := make(Tokens, 0, len(t.Nodes))
	stack := []int32{t.Root}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch n := &t.Nodes[idx]; n.Kind {
		case Leaf:
			toks = append(toks, Token{Leaf: true, Sym: n.Sym})
		case Internal:
			toks = append(toks, Token{Leaf: false})
			stack = append(stack, n.Right, n.Left)
		}
	}
	return toks
}

// Deserialize reconstructs exactly one subtree from the start of toks and
// returns it along with the tokens that were not consumed.
// Restored leaves have a weight of zero.
//
// An empty sequence produces a nil tree and no error. A sequence that ends
// before every internal node has two children, or that repeats a symbol,
// is reported as an InvalidFormat error.
func Deserialize(toks Tokens) (*Tree, Tokens, error) {
	if len(toks) == 0 {
		return nil, nil, nil
	}

	type frame struct {
		idx    int32
		filled int // Number of children attached so far
	}
	var seen [maxSyms]bool
	var stack []frame
	t := new(Tree)
	for i := 0; ; i++ {
		if i >= len(toks) {
			return nil, nil, errorf(errors.InvalidFormat, fmt.Sprintf(
				"truncated tree: %d internal nodes missing children after %d tokens", len(stack), i))
		}
		if len(t.Nodes) >= 2*maxSyms-1 {
			return nil, nil, errorf(errors.InvalidFormat, fmt.Sprintf("tree exceeds %d nodes", 2*maxSyms-1))
		}

		tok := toks[i]
		idx := int32(len(t.Nodes))
		if tok.Leaf {
			if seen[tok.Sym] {
				return nil, nil, errorf(errors.InvalidFormat, fmt.Sprintf("duplicate leaf for symbol %q at token %d", tok.Sym, i))
			}
			seen[tok.Sym] = true
			t.Nodes = append(t.Nodes, Node{Kind: Leaf, Sym: tok.Sym})
		} else {
			t.Nodes = append(t.Nodes, Node{Kind: Internal, Left: -1, Right: -1})
		}

		if len(stack) == 0 {
			t.Root = idx
		} else {
			top := &stack[len(stack)-1]
			if top.filled == 0 {
				t.Nodes[top.idx].Left = idx
			} else {
				t.Nodes[top.idx].Right = idx
			}
			top.filled++
		}

		if !tok.Leaf {
			stack = append(stack, frame{idx: idx})
			continue
		}
		for len(stack) > 0 && stack[len(stack)-1].filled == 2 {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			return t, toks[i+1:], nil
		}
	}
}
