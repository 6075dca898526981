// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package testutil

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"
)

// Rand implements a deterministic pseudo-random number generator.
// This differs from the math.Rand in that the exact output will be consistent
// across different versions of Go.
type Rand struct {
	cipher.Block
	blk [aes.BlockSize]byte
}

func NewRand(seed int) *Rand {
	var key [aes.BlockSize]byte
	binary.LittleEndian.PutUint64(key[:], uint64(seed))
	r, _ := aes.NewCipher(key[:])
	return &Rand{Block: r}
}

func (r *Rand) Int() (x int) {
	r.Encrypt(r.blk[:], r.blk[:])
	x |= int(r.blk[0]) << 0
	x |= int(r.blk[1]) << 8
	x |= int(r.blk[2]) << 16
	x |= int(r.blk[3]) << 24
	x |= int(r.blk[4]) << 32
	x |= int(r.blk[5]) << 40
	x |= int(r.blk[6]) << 48
	x |= int(r.blk[7]&0x3f) << 56
	return x
}

func (r *Rand) Intn(n int) int {
	return r.Int() % n
}

func (r *Rand) Bytes(n int) []byte {
	b := make([]byte, n)
	bb := b
	for len(bb) > 0 {
		r.Encrypt(r.blk[:], r.blk[:])
		cnt := copy(bb, r.blk[:])
		bb = bb[cnt:]
	}
	return b
}

func (r *Rand) Perm(n int) []int {
	m := make([]int, n)
	for i := 0; i < n; i++ {
		j := r.Intn(i + 1)
		m[i] = m[j]
		m[j] = i
	}
	return m
}

// Approximate frequencies of English letters and the space character,
// scaled to parts per thousand.
var textWeights = []struct {
	c byte
	w int
}{
	{' ', 180}, {'e', 102}, {'t', 75}, {'a', 65}, {'o', 62}, {'i', 57},
	{'n', 57}, {'s', 53}, {'h', 50}, {'r', 49}, {'d', 35}, {'l', 33},
	{'u', 23}, {'c', 22}, {'m', 20}, {'w', 19}, {'f', 18}, {'g', 16},
	{'y', 16}, {'p', 15}, {'b', 12}, {'v', 8}, {'k', 6}, {'\n', 6},
	{'j', 1}, {'x', 1}, {'q', 1}, {'z', 1},
}

// Text returns n bytes of text whose letters follow an English-like
// distribution. Such input is skewed enough for prefix coding to compress it.
func (r *Rand) Text(n int) []byte {
	var total int
	for _, tw := range textWeights {
		total += tw.w
	}
	b := make([]byte, n)
	for i := range b {
		x := r.Intn(total)
		for _, tw := range textWeights {
			if x < tw.w {
				b[i] = tw.c
				break
			}
			x -= tw.w
		}
	}
	return b
}

// Repeats returns n bytes made mostly of copies of earlier data at some
// distance back, with the occasional run of fresh random bytes. Such input
// favors LZ77 based compressors, while prefix coding alone gains little.
func (r *Rand) Repeats(n int) []byte {
	// span returns a value in [lo, 2*lo) for the first bucket whose
	// cumulative percentage exceeds p.
	span := func(p int, buckets []struct{ pct, lo int }) int {
		for _, bk := range buckets {
			if p < bk.pct {
				return bk.lo + r.Intn(bk.lo)
			}
		}
		return 1
	}
	lens := []struct{ pct, lo int }{
		{15, 4}, {30, 8}, {45, 16}, {60, 32}, {75, 64}, {90, 128}, {100, 256},
	}
	dists := []struct{ pct, lo int }{
		{10, 1}, {20, 2}, {30, 4}, {40, 8}, {50, 16}, {55, 32}, {60, 64},
		{65, 128}, {70, 256}, {75, 512}, {80, 1024}, {85, 2048}, {90, 4096},
		{95, 8192}, {100, 16384},
	}
	randLen := func() int { return span(r.Intn(100), lens) }
	randDist := func(lim int) int {
		for {
			if d := span(r.Intn(100), dists); d <= lim {
				return d
			}
		}
	}

	b := make([]byte, 0, n+512)
	writeRand := func(l int) {
		for i := 0; i < l; i++ {
			b = append(b, byte(r.Int()))
		}
	}
	writeCopy := func(d, l int) {
		for i := 0; i < l; i++ {
			b = append(b, b[len(b)-d])
		}
	}

	writeRand(randLen())
	for len(b) < n {
		if r.Intn(10) == 0 {
			writeRand(randLen())
		} else {
			writeCopy(randDist(len(b)), randLen())
		}
	}
	return b[:n]
}
