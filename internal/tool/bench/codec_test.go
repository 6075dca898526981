// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"bytes"
	"fmt"
	"hash/crc32"
	"io"
	"testing"
)

var testInputs = []string{"gen:text", "gen:random", "gen:repeats", "gen:zeros"}

// TestCodecs tests that the output of each registered encoder is a valid
// input for the decoder of the same name.
func TestCodecs(t *testing.T) {
	for _, in := range testInputs {
		dd, err := LoadInput(in, 1<<16)
		if err != nil {
			t.Fatalf("unexpected LoadInput error: %v", err)
		}
		t.Run(fmt.Sprintf("Input:%v", in), func(t *testing.T) { testCodecs(t, dd) })
	}
}

func testCodecs(t *testing.T, dd []byte) {
	t.Parallel()
	const level = 6 // Default compression on all encoders
	for name := range Decoders {
		name := name
		t.Run(fmt.Sprintf("Codec:%v", name), func(t *testing.T) {
			testRoundTrip(t, Encoders[name], Decoders[name], dd, level)
		})
	}
}

func testRoundTrip(t *testing.T, enc Encoder, dec Decoder, input []byte, level int) {
	buf := new(bytes.Buffer)
	wr := enc(buf, level)
	_, cpErr := io.Copy(wr, bytes.NewReader(input))
	if err := wr.Close(); err != nil {
		t.Fatalf("unexpected Close error: %v", err)
	}
	if cpErr != nil {
		t.Fatalf("unexpected Write error: %v", cpErr)
	}

	hash := crc32.NewIEEE()
	rd := dec(buf)
	cnt, cpErr := io.Copy(hash, rd)
	if err := rd.Close(); err != nil {
		t.Fatalf("unexpected Close error: %v", err)
	}
	if cpErr != nil {
		t.Fatalf("unexpected Read error: %v", cpErr)
	}

	sum := crc32.ChecksumIEEE(input)
	if int(cnt) != len(input) {
		t.Errorf("mismatching count: got %d, want %d", cnt, len(input))
	}
	if hash.Sum32() != sum {
		t.Errorf("mismatching checksum: got 0x%08x, want 0x%08x", hash.Sum32(), sum)
	}
}

func TestHuff0Encoder(t *testing.T) {
	for _, in := range testInputs {
		dd, err := LoadInput(in, 3*huff0BlockSize/2)
		if err != nil {
			t.Fatalf("unexpected LoadInput error: %v", err)
		}
		buf := new(bytes.Buffer)
		wr := Encoders["huff0"](buf, 6)
		if _, err := wr.Write(dd); err != nil {
			t.Fatalf("%s: unexpected Write error: %v", in, err)
		}
		if err := wr.Close(); err != nil {
			t.Fatalf("%s: unexpected Close error: %v", in, err)
		}
		if buf.Len() == 0 {
			t.Errorf("%s: no output", in)
		}
	}
}

func TestHuffReaderCorrupt(t *testing.T) {
	for i, input := range [][]byte{
		nil,
		{0x80},       // Truncated uvarint
		{0x10, 0x00}, // Metadata longer than the input
	} {
		rd := newHuffReader(bytes.NewReader(input))
		if _, err := io.ReadAll(rd); err == nil {
			t.Errorf("test %d, unexpected success", i)
		}
	}
}
