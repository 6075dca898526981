// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

import (
	"github.com/dsnet/huffman/internal/bits"
	"github.com/dsnet/huffman/internal/errors"
	"github.com/dsnet/huffman/internal/prefix"
)

// Decode expands p back into the symbols it encodes by walking t from the
// root, taking the left child on a 0 bit and the right child on a 1 bit, and
// emitting a symbol each time a leaf is reached.
//
// It is an error for the bits to end partway through a code, and for the
// padding to be inconsistent with the payload.
func Decode(p Payload, t *prefix.Tree) ([]byte, error) {
	switch {
	case p.Padding > 7:
		return nil, errorf(errors.Decoding, "padding of %d bits exceeds 7", p.Padding)
	case len(p.Data) == 0 && p.Padding > 0:
		return nil, errorf(errors.Decoding, "padding of %d bits with empty payload", p.Padding)
	case len(p.Data) == 0:
		return []byte{}, nil
	case t == nil || len(t.Nodes) == 0:
		return nil, errorf(errors.InvalidState, "no tree available")
	}
	if last := p.Data[len(p.Data)-1]; last&(1<<p.Padding-1) != 0 {
		return nil, errorf(errors.Decoding, "padding bits of final byte %#02x are not zero", last)
	}

	br := bits.NewReader(p.Data, p.Bits())
	root := t.Root
	if n := &t.Nodes[root]; n.Kind == prefix.Leaf {
		// The only symbol of a root-only tree is encoded as a single 0 bit.
		out := make([]byte, 0, br.Remaining())
		for {
			bit, err := br.ReadBit()
			if err != nil {
				return out, nil
			}
			if bit {
				return nil, errorf(errors.Decoding, "unexpected 1 bit at offset %d for single symbol tree", br.BitsRead()-1)
			}
			out = append(out, n.Sym)
		}
	}

	out := make([]byte, 0, 2*len(p.Data))
	idx := root
	for {
		bit, err := br.ReadBit()
		if err != nil {
			break
		}
		n := &t.Nodes[idx]
		if bit {
			idx = n.Right
		} else {
			idx = n.Left
		}
		if n := &t.Nodes[idx]; n.Kind == prefix.Leaf {
			out = append(out, n.Sym)
			idx = root
		}
	}
	if idx != root {
		return nil, errorf(errors.Decoding, "bit stream ends in the middle of a code at offset %d", br.BitsRead())
	}
	return out, nil
}
