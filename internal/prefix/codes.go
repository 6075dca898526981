// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package prefix

import (
	"fmt"

	"github.com/dsnet/huffman/internal/errors"
)

// Code is a bit-string of Len bits. The first bit of the code is bit Len-1
// of Val, so codes compare and print most-significant-bit first.
type Code struct {
	Val uint64
	Len uint8
}

// append returns c extended by a single bit.
func (c Code) append(bit uint64) Code {
	return Code{Val: c.Val<<1 | bit, Len: c.Len + 1}
}

// HasPrefix reports whether p is a prefix of c.
func (c Code) HasPrefix(p Code) bool {
	if p.Len > c.Len {
		return false
	}
	return c.Val>>(c.Len-p.Len) == p.Val
}

// String renders the code as a string of '0' and '1' characters.
func (c Code) String() string {
	b := make([]byte, c.Len)
	for i := range b {
		b[i] = '0' + byte(c.Val>>(int(c.Len)-1-i)&1)
	}
	return string(b)
}

// CodeTable maps each symbol of a tree to its code.
type CodeTable struct {
	codes [maxSyms]Code // Len of zero means the symbol is absent
	num   int
}

// Lookup returns the code for sym and whether it exists.
func (ct *CodeTable) Lookup(sym Symbol) (Code, bool) {
	c := ct.codes[sym]
	return c, c.Len > 0
}

// Len reports the number of symbols in the table.
func (ct *CodeTable) Len() int { return ct.num }

// Strings returns the table as a map from symbol to bit-string.
func (ct *CodeTable) Strings() map[Symbol]string {
	m := make(map[Symbol]string, ct.num)
	for i, c := range ct.codes {
		if c.Len > 0 {
			m[Symbol(i)] = c.String()
		}
	}
	return m
}

// GenerateCodes walks t and assigns every leaf the bit-string of its path,
// where a left edge contributes a 0 and a right edge contributes a 1.
// The only leaf of a root-only tree receives the code "0".
func GenerateCodes(t *Tree) (*CodeTable, error) {
	if t == nil || len(t.Nodes) == 0 {
		return nil, errorf(errors.InvalidState, "no tree available")
	}

	type item struct {
		idx  int32
		code Code
	}
	ct := new(CodeTable)
	stack := []item{{idx: t.Root}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch n := &t.Nodes[it.idx]; n.Kind {
		case Leaf:
			if it.code.Len == 0 {
				it.code = Code{Val: 0, Len: 1}
			}
			if ct.codes[n.Sym].Len == 0 {
				ct.num++
			}
			ct.codes[n.Sym] = it.code
		case Internal:
			if it.code.Len >= MaxCodeBits {
				return nil, errorf(errors.InvalidState, fmt.Sprintf("code exceeds %d bits", MaxCodeBits))
			}
			stack = append(stack,
				item{n.Right, it.code.append(1)},
				item{n.Left, it.code.append(0)},
			)
		default:
			return nil, errorf(errors.Internal, fmt.Sprintf("node %d has invalid kind %d", it.idx, n.Kind))
		}
	}
	return ct, nil
}
