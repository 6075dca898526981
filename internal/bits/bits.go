// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bits implements a bit-level writer and reader over byte slices.
//
// Bits are packed most-significant-bit first: the first bit written to a byte
// lands in bit 7 and the eighth lands in bit 0.
package bits

import "io"

// Writer accumulates bits into a byte slice.
// The zero value is ready for use.
type Writer struct {
	buf     []byte
	cur     byte // Partially filled byte
	numBits uint // Number of valid bits in cur; always < 8
}

// NewWriter creates a Writer that appends to buf.
func NewWriter(buf []byte) *Writer {
	return &Writer{buf: buf[:0]}
}

// WriteBits writes the lower n bits of v, starting with bit n-1.
// The value n must be no more than 64.
func (w *Writer) WriteBits(v uint64, n uint) {
	for n > 0 {
		m := 8 - w.numBits
		if m > n {
			m = n
		}
		w.cur = w.cur<<m | byte(v>>(n-m))&byte(0xff>>(8-m))
		w.numBits += m
		n -= m
		if w.numBits == 8 {
			w.buf = append(w.buf, w.cur)
			w.cur, w.numBits = 0, 0
		}
	}
}

// WriteBit writes a single bit.
func (w *Writer) WriteBit(b bool) {
	var v uint64
	if b {
		v = 1
	}
	w.WriteBits(v, 1)
}

// BitsWritten reports the total number of bits written.
func (w *Writer) BitsWritten() int64 {
	return 8*int64(len(w.buf)) + int64(w.numBits)
}

// Flush pads the final byte with zero bits up to a byte boundary and reports
// the number of padding bits added, which is in the range 0..7.
func (w *Writer) Flush() (pads uint) {
	if w.numBits == 0 {
		return 0
	}
	pads = 8 - w.numBits
	w.WriteBits(0, pads)
	return pads
}

// Bytes returns the bytes written so far. A partially filled final byte is
// only included after Flush.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Reader reads bits from a byte slice.
type Reader struct {
	buf []byte
	pos int64 // Bit offset of the next bit to read
	end int64 // Bit offset after the last readable bit
}

// NewReader creates a Reader over the first n bits of buf.
// If n is negative or exceeds the slice, then all bits are readable.
func NewReader(buf []byte, n int64) *Reader {
	if lim := 8 * int64(len(buf)); n < 0 || n > lim {
		n = lim
	}
	return &Reader{buf: buf, end: n}
}

// ReadBit reads a single bit. It returns io.EOF when no bits remain.
func (r *Reader) ReadBit() (bool, error) {
	if r.pos >= r.end {
		return false, io.EOF
	}
	b := r.buf[r.pos>>3] >> (7 - uint(r.pos&7)) & 1
	r.pos++
	return b == 1, nil
}

// ReadBits reads n bits, where n is no more than 64, and returns them with the
// first bit read in position n-1. It returns io.ErrUnexpectedEOF if fewer than
// n bits remain, and io.EOF if no bits remain at all.
func (r *Reader) ReadBits(n uint) (uint64, error) {
	if n > 0 && r.pos >= r.end {
		return 0, io.EOF
	}
	if int64(n) > r.end-r.pos {
		r.pos = r.end
		return 0, io.ErrUnexpectedEOF
	}
	var v uint64
	for i := uint(0); i < n; i++ {
		b := r.buf[r.pos>>3] >> (7 - uint(r.pos&7)) & 1
		v = v<<1 | uint64(b)
		r.pos++
	}
	return v, nil
}

// BitsRead reports the number of bits consumed.
func (r *Reader) BitsRead() int64 { return r.pos }

// Remaining reports the number of bits left to read.
func (r *Reader) Remaining() int64 { return r.end - r.pos }
