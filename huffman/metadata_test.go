// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsnet/huffman/internal/prefix"
	"github.com/dsnet/huffman/internal/testutil"
)

func TestMetadataLayout(t *testing.T) {
	m := Metadata{
		Tree:     prefix.Tokens{{}, {Leaf: true, Sym: 'b'}, {Leaf: true, Sym: 'a'}},
		Padding:  5,
		Checksum: 0xdeadbeef,
	}
	tree, _ := testutil.MustDecodeBitGen("0 1 D8:98 1 D8:97")
	want := append(testutil.MustDecodeHex("48554654"+"01"+"05"+"deadbeef"+"03"), tree...)

	got, err := m.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	var m2 Metadata
	require.NoError(t, m2.UnmarshalBinary(got))
	if diff := cmp.Diff(m, m2); diff != "" {
		t.Errorf("UnmarshalBinary() mismatch (-want +got):\n%s", diff)
	}
}

func TestMetadataRoundTrip(t *testing.T) {
	r := testutil.NewRand(1)
	for _, input := range [][]byte{
		nil,
		[]byte("aaaa"),
		[]byte(testSentence),
		r.Bytes(1 << 10),
	} {
		res, err := Compress(input)
		require.NoError(t, err)

		var bb bytes.Buffer
		n, err := res.Metadata.WriteTo(&bb)
		require.NoError(t, err)
		assert.Equal(t, int64(bb.Len()), n)

		m, err := ReadMetadata(&bb)
		require.NoError(t, err)
		if diff := cmp.Diff(res.Metadata, m); diff != "" {
			t.Errorf("ReadMetadata() mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestMetadataErrors(t *testing.T) {
	res, err := Compress([]byte(testSentence))
	require.NoError(t, err)
	valid, err := res.Metadata.MarshalBinary()
	require.NoError(t, err)

	// modify returns a copy of valid with f applied to it.
	modify := func(f func(b []byte) []byte) []byte {
		return f(append([]byte(nil), valid...))
	}
	var vectors = []struct {
		desc  string
		input []byte
	}{{
		desc:  "empty",
		input: nil,
	}, {
		desc:  "truncated header",
		input: valid[:metaHdrSize-1],
	}, {
		desc:  "missing token count",
		input: valid[:metaHdrSize],
	}, {
		desc:  "bad magic",
		input: modify(func(b []byte) []byte { b[0] = 'X'; return b }),
	}, {
		desc:  "bad version",
		input: modify(func(b []byte) []byte { b[4] = 2; return b }),
	}, {
		desc:  "bad padding",
		input: modify(func(b []byte) []byte { b[5] = 8; return b }),
	}, {
		desc: "overlong token count",
		input: modify(func(b []byte) []byte {
			return append(append(b[:metaHdrSize:metaHdrSize], 0x80|b[metaHdrSize], 0x00), b[metaHdrSize+1:]...)
		}),
	}, {
		desc: "too many tokens",
		input: modify(func(b []byte) []byte {
			return binary.AppendUvarint(b[:metaHdrSize], 2*256)
		}),
	}, {
		desc:  "truncated tree",
		input: valid[:len(valid)-1],
	}, {
		desc:  "trailing bytes",
		input: append(append([]byte(nil), valid...), 0),
	}}

	for _, v := range vectors {
		t.Run(v.desc, func(t *testing.T) {
			var m Metadata
			err := m.UnmarshalBinary(v.input)
			assert.True(t, IsInvalidFormat(err), "unexpected error: %v", err)
		})
	}

	// The tree of "aab" has 19 bits, leaving 5 bits of padding.
	res, err = Compress([]byte("aab"))
	require.NoError(t, err)
	b, err := res.Metadata.MarshalBinary()
	require.NoError(t, err)
	b[len(b)-1] |= 0x01
	var m Metadata
	err = m.UnmarshalBinary(b)
	assert.True(t, IsInvalidFormat(err), "unexpected error: %v", err)

	_, err = Metadata{Padding: 8}.MarshalBinary()
	assert.True(t, IsInvalidFormat(err), "unexpected error: %v", err)
}

func TestMetadataIO(t *testing.T) {
	res, err := Compress([]byte(testSentence))
	require.NoError(t, err)
	b, err := res.Metadata.MarshalBinary()
	require.NoError(t, err)

	_, err = res.Metadata.WriteTo(&testutil.BuggyWriter{W: io.Discard, N: 4, Err: io.ErrShortWrite})
	assert.True(t, IsIO(err), "unexpected error: %v", err)
	assert.ErrorIs(t, err, io.ErrShortWrite)

	_, err = ReadMetadata(&testutil.BuggyReader{R: bytes.NewReader(b), N: 4, Err: io.ErrClosedPipe})
	assert.True(t, IsIO(err), "unexpected error: %v", err)
	assert.ErrorIs(t, err, io.ErrClosedPipe)
}
