// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

import (
	"github.com/dsnet/huffman/internal/bits"
	"github.com/dsnet/huffman/internal/errors"
	"github.com/dsnet/huffman/internal/prefix"
)

// Payload is a bit-packed sequence of codes.
// The last Padding bits of Data are zero bits that carry no information.
type Payload struct {
	Data    []byte
	Padding uint8 // 0..7
}

// Bits reports the number of meaningful bits in the payload.
func (p Payload) Bits() int64 {
	return 8*int64(len(p.Data)) - int64(p.Padding)
}

// Encode concatenates the code of every byte of data in order, packing the
// bits most-significant-bit first and padding the final byte with zeros.
func Encode(data []byte, codes *prefix.CodeTable) (Payload, error) {
	if len(data) == 0 {
		return Payload{}, nil
	}
	if codes == nil {
		return Payload{}, errorf(errors.InvalidState, "no code table available")
	}

	w := bits.NewWriter(make([]byte, 0, len(data)))
	for i, c := range data {
		code, ok := codes.Lookup(c)
		if !ok {
			return Payload{}, errorf(errors.Encoding, "symbol %q at offset %d has no code", c, i)
		}
		w.WriteBits(code.Val, uint(code.Len))
	}
	pads := w.Flush()
	return Payload{Data: w.Bytes(), Padding: uint8(pads)}, nil
}
