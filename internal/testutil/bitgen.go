// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package testutil

import (
	"bytes"
	"encoding/hex"
	"errors"
	"regexp"
	"strconv"
	"strings"
)

var (
	reBin = regexp.MustCompile("^[01]{1,64}$")
	reDec = regexp.MustCompile("^D[0-9]+:[0-9]+$")
	reRaw = regexp.MustCompile("^X:[0-9a-fA-F]+$")
	reQnt = regexp.MustCompile("[*][0-9]+$")
)

// DecodeBitGen decodes a BitGen formatted string into the packed bytes and
// the number of zero bits that were appended to reach a byte boundary.
//
// The BitGen format allows bit-streams to be generated from a series of tokens
// describing bits in the resulting string. It is designed for testing purposes
// by aiding a human in the manual scripting of a packed payload from
// individual codes. Bits are always packed most-significant-bit first.
//
// The format consists of a series of tokens separated by white space of any
// kind. The '#' character is used for commenting. Thus, any bytes on a given
// line that appear after the '#' character is ignored.
//
// A token of the pattern "[01]{1,64}" forms a bit-string (e.g. 11010), whose
// left-most bit is written first.
//
// A token of the pattern "D[0-9]+:[0-9]+" represents a decimal value. The
// first number indicates the bit-length and must be between 0 and 64 bits.
// The second number is written as an unsigned binary number of that length,
// most-significant bit first.
//
// A token that is of the pattern "X:[0-9a-fA-F]+" represents literal bytes in
// hexadecimal format. It may only be used when the bit-stream is already
// byte-aligned.
//
// A token decorator of the pattern "[*][0-9]+" may trail any token. This is
// a quantifier decorator which indicates that the current token is to be
// repeated some number of times.
//
// If the total bit-stream does not end on a byte-aligned edge, then the stream
// is padded up to the nearest byte with 0 bits.
//
// Example BitGen string:
//
//	0 10 110 111   # codes for symbols a, b, c, d
//	0*4            # four more a's
//	D3:5           # the bits 101
func DecodeBitGen(str string) ([]byte, uint, error) {
	var toks []string
	for _, s := range strings.Split(str, "\n") {
		if i := strings.IndexByte(s, '#'); i >= 0 {
			s = s[:i]
		}
		toks = append(toks, strings.Fields(s)...)
	}

	var bb bitBuffer
	for _, t := range toks {
		rep := 1
		if reQnt.MatchString(t) {
			i := strings.LastIndexByte(t, '*')
			tt, tn := t[:i], t[i+1:]
			n, err := strconv.Atoi(tn)
			if err != nil {
				return nil, 0, errors.New("testutil: invalid quantified token: " + t)
			}
			t, rep = tt, n
		}

		switch {
		case reBin.MatchString(t):
			var v uint64
			for _, b := range t {
				v = v<<1 | uint64(b-'0')
			}
			for i := 0; i < rep; i++ {
				bb.WriteBits64(v, uint(len(t)))
			}
		case reDec.MatchString(t):
			i := strings.IndexByte(t, ':')
			n, err1 := strconv.Atoi(t[1:i])
			v, err2 := strconv.ParseUint(t[i+1:], 10, 64)
			if err1 != nil || err2 != nil || n > 64 {
				return nil, 0, errors.New("testutil: invalid numeric token: " + t)
			}
			if n < 64 && v>>uint(n) != 0 {
				return nil, 0, errors.New("testutil: integer overflow on token: " + t)
			}
			for i := 0; i < rep; i++ {
				bb.WriteBits64(v, uint(n))
			}
		case reRaw.MatchString(t):
			b, err := hex.DecodeString(t[2:])
			if err != nil {
				return nil, 0, errors.New("testutil: invalid raw bytes token: " + t)
			}
			if _, err := bb.Write(bytes.Repeat(b, rep)); err != nil {
				return nil, 0, err
			}
		default:
			return nil, 0, errors.New("testutil: invalid token: " + t)
		}
	}

	var pads uint
	if bb.n > 0 {
		pads = 8 - bb.n
	}
	return bb.b, pads, nil
}

// MustDecodeBitGen must decode a BitGen formatted string or else panics.
func MustDecodeBitGen(s string) ([]byte, uint) {
	b, pads, err := DecodeBitGen(s)
	if err != nil {
		panic(err)
	}
	return b, pads
}

// bitBuffer is a minified MSB-first bit writer.
// This is implemented here to avoid depending on the package under test.
type bitBuffer struct {
	b []byte
	n uint // Number of bits used in the last byte; 0 means aligned
}

func (b *bitBuffer) Write(buf []byte) (int, error) {
	if b.n != 0 {
		return 0, errors.New("testutil: unaligned write")
	}
	b.b = append(b.b, buf...)
	return len(buf), nil
}

func (b *bitBuffer) WriteBits64(v uint64, n uint) {
	for i := n; i > 0; i-- {
		if b.n == 0 {
			b.b = append(b.b, 0x00)
		}
		if v&(1<<(i-1)) != 0 {
			b.b[len(b.b)-1] |= 0x80 >> b.n
		}
		b.n = (b.n + 1) % 8
	}
}
